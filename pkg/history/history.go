package history

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	dataio "github.com/geniass/price-tracker/pkg/io"
)

// DateLayout is how record dates are stored.
const DateLayout = "2006-01-02"

// Header is the first row of a history file. The unnamed first column holds
// the row key; the remaining names are kept from existing prices.csv files.
var Header = []string{"", "product", "datum", "winkel", "prijs"}

var ErrMalformedHistory = errors.New("malformed price history")

// Record is one observed price of a product on a given day.
type Record struct {
	ID      string
	Product string
	Date    time.Time
	Site    string
	Price   float64
}

func (r Record) Day() string {
	return r.Date.Format(DateLayout)
}

func (r Record) row() []string {
	return []string{r.ID, r.Product, r.Day(), r.Site, FormatPrice(r.Price)}
}

// FormatPrice always keeps a decimal point: 299 is written as "299.0".
func FormatPrice(price float64) string {
	s := strconv.FormatFloat(price, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Store is an append-only price history kept in a CSV file.
type Store struct {
	Path string
	// LegacyEmptyHistory makes Seen report every product as recorded when the
	// file exists but is empty, blocking all updates until it is removed.
	LegacyEmptyHistory bool
}

func NewStore(path string, legacyEmptyHistory bool) *Store {
	return &Store{Path: path, LegacyEmptyHistory: legacyEmptyHistory}
}

type columns struct {
	id, product, date, site, price int
}

func columnsOf(t dataio.Table) columns {
	return columns{
		id:      0,
		product: t.Column(Header[1], 1),
		date:    t.Column(Header[2], 2),
		site:    t.Column(Header[3], 3),
		price:   t.Column(Header[4], 4),
	}
}

// Seen reports whether product already has a price recorded on day. The file
// is read again on every call so records appended by an earlier run are seen.
func (s *Store) Seen(product string, day time.Time) (bool, error) {
	info, err := os.Stat(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return s.LegacyEmptyHistory, nil
	}

	t, err := dataio.LoadTable(s.Path)
	if err != nil {
		return false, err
	}

	cols := columnsOf(t)
	today := day.Format(DateLayout)
	for _, row := range t.Rows {
		if cols.product >= len(row) || cols.date >= len(row) {
			continue
		}
		if row[cols.product] == product && row[cols.date] == today {
			return true, nil
		}
	}
	return false, nil
}

// Records returns every record in file order. A missing file has no records.
func (s *Store) Records() ([]Record, error) {
	t, err := dataio.LoadTable(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	cols := columnsOf(t)
	records := make([]Record, 0, len(t.Rows))
	for i, row := range t.Rows {
		// +2 for the header and 1-based line numbers
		line := i + 2
		if len(row) < len(Header) {
			return nil, fmt.Errorf("%s line %d has %d columns: %w", s.Path, line, len(row), ErrMalformedHistory)
		}

		date, err := time.Parse(DateLayout, row[cols.date])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %v: %w", s.Path, line, err, ErrMalformedHistory)
		}
		price, err := strconv.ParseFloat(row[cols.price], 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %v: %w", s.Path, line, err, ErrMalformedHistory)
		}

		records = append(records, Record{
			ID:      row[cols.id],
			Product: row[cols.product],
			Date:    date,
			Site:    row[cols.site],
			Price:   price,
		})
	}
	return records, nil
}

// Append writes records after everything already in the file, in the given
// order. Records without an ID get a random one. The header is written when
// the file is created.
func (s *Store) Append(records []Record) ([]Record, error) {
	if len(records) == 0 {
		return nil, nil
	}

	written := make([]Record, len(records))
	rows := make([][]string, len(records))
	for i, r := range records {
		if r.ID == "" {
			r.ID = uuid.New().String()
		}
		written[i] = r
		rows[i] = r.row()
	}

	if err := dataio.AppendRows(s.Path, Header, rows); err != nil {
		return nil, fmt.Errorf("failed to append %d records to %s: %w", len(rows), s.Path, err)
	}
	return written, nil
}
