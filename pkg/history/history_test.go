package history

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

var today = time.Date(2024, 5, 1, 9, 30, 0, 0, time.Local)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "prices.csv"), false)
}

func TestSeen(t *testing.T) {
	s := newTestStore(t)

	seen, err := s.Seen("X", today)
	if err != nil {
		t.Fatal(err)
	}
	if seen {
		t.Error("absent history: expected not seen")
	}

	if _, err := s.Append([]Record{{Product: "X", Date: today, Site: "bol", Price: 49.99}}); err != nil {
		t.Fatal(err)
	}

	seen, err = s.Seen("X", today)
	if err != nil {
		t.Fatal(err)
	}
	if !seen {
		t.Error("expected X to be seen today")
	}

	seen, err = s.Seen("X", today.AddDate(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if seen {
		t.Error("a record from yesterday must not count as a duplicate")
	}

	seen, err = s.Seen("Y", today)
	if err != nil {
		t.Fatal(err)
	}
	if seen {
		t.Error("expected Y to not be seen")
	}
}

func TestSeenEmptyFile(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.Path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	seen, err := s.Seen("X", today)
	if err != nil {
		t.Fatal(err)
	}
	if seen {
		t.Error("empty history is treated like a missing one")
	}

	s.LegacyEmptyHistory = true
	seen, err = s.Seen("X", today)
	if err != nil {
		t.Fatal(err)
	}
	if !seen {
		t.Error("legacy mode: empty history blocks every product")
	}
}

func TestAppendToNewFile(t *testing.T) {
	s := newTestStore(t)

	records := []Record{
		{Product: "Koptelefoon", Date: today, Site: "coolblue", Price: 299},
		{Product: "Stofzuiger", Date: today, Site: "bol", Price: 49.99},
		{Product: "Kast", Date: today, Site: "ikea", Price: 79.5},
	}
	written, err := s.Append(records)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range written {
		if _, err := uuid.Parse(r.ID); err != nil {
			t.Errorf("record %q has no uuid: %q", r.Product, r.ID)
		}
	}
	if written[0].ID == written[1].ID {
		t.Error("record ids are not unique")
	}

	b, err := os.ReadFile(s.Path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
	if len(lines) != len(records)+1 {
		t.Fatalf("expected %d lines, got %d:\n%s", len(records)+1, len(lines), b)
	}
	if lines[0] != ",product,datum,winkel,prijs" {
		t.Errorf("wrong header: %q", lines[0])
	}
	if expected := written[0].ID + ",Koptelefoon,2024-05-01,coolblue,299.0"; lines[1] != expected {
		t.Errorf("got %q expected %q", lines[1], expected)
	}

	read, err := s.Records()
	if err != nil {
		t.Fatal(err)
	}
	if len(read) != len(records) {
		t.Fatalf("wrong number of records: got %d expected %d", len(read), len(records))
	}
	for i, r := range read {
		if r.Day() != "2024-05-01" {
			t.Errorf("record %d has date %s", i, r.Day())
		}
		if r.Product != records[i].Product || r.Site != records[i].Site || r.Price != records[i].Price {
			t.Errorf("record %d: got %+v expected %+v", i, r, records[i])
		}
	}
}

func TestAppendKeepsExistingRows(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Append([]Record{{Product: "A", Date: today.AddDate(0, 0, -1), Site: "krefel", Price: 1}}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Append([]Record{{Product: "B", Date: today, Site: "krefel", Price: 2}, {Product: "A", Date: today, Site: "krefel", Price: 3}}); err != nil {
		t.Fatal(err)
	}

	read, err := s.Records()
	if err != nil {
		t.Fatal(err)
	}
	products := []string{}
	for _, r := range read {
		products = append(products, r.Product)
	}
	if strings.Join(products, ",") != "A,B,A" {
		t.Errorf("wrong record order: %v", products)
	}

	b, err := os.ReadFile(s.Path)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(b), "product,datum"); n != 1 {
		t.Errorf("expected exactly one header, found %d", n)
	}
}

func TestRecordsMalformed(t *testing.T) {
	s := newTestStore(t)
	content := ",product,datum,winkel,prijs\nabc,TV,gisteren,bol,10.0\n"
	if err := os.WriteFile(s.Path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Records(); !errors.Is(err, ErrMalformedHistory) {
		t.Errorf("expected ErrMalformedHistory, got %v", err)
	}
}

func TestRecordsMissingFile(t *testing.T) {
	records, err := newTestStore(t).Records()
	if err != nil || len(records) != 0 {
		t.Errorf("got (%v, %v) expected no records", records, err)
	}
}

func TestFormatPrice(t *testing.T) {
	cases := map[float64]string{
		299:     "299.0",
		49.99:   "49.99",
		1299.95: "1299.95",
		0.5:     "0.5",
	}
	for price, expected := range cases {
		if got := FormatPrice(price); got != expected {
			t.Errorf("FormatPrice(%v) = %q, expected %q", price, got, expected)
		}
	}
}
