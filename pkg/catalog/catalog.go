package catalog

import (
	"errors"
	"fmt"
	"strings"

	dataio "github.com/geniass/price-tracker/pkg/io"
)

var ErrMalformedCatalog = errors.New("malformed catalog")

// Entry is one product to track and the page its price is read from.
type Entry struct {
	Product string
	URL     string
}

// Load reads a comma separated catalog with a header row. Columns are looked
// up by the names "product" and "url", defaulting to the first two columns.
func Load(path string) ([]Entry, error) {
	t, err := dataio.LoadTable(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	if t.Header == nil {
		return nil, fmt.Errorf("catalog %s has no header: %w", path, ErrMalformedCatalog)
	}

	productCol := t.Column("product", 0)
	urlCol := t.Column("url", 1)

	entries := make([]Entry, 0, len(t.Rows))
	for i, row := range t.Rows {
		if productCol >= len(row) || urlCol >= len(row) {
			// +2 for the header and 1-based line numbers
			return nil, fmt.Errorf("catalog %s line %d has %d columns: %w", path, i+2, len(row), ErrMalformedCatalog)
		}
		entries = append(entries, Entry{
			Product: strings.TrimSpace(row[productCol]),
			URL:     strings.TrimSpace(row[urlCol]),
		})
	}
	return entries, nil
}
