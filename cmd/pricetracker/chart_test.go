package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/geniass/price-tracker/pkg/history"
)

func newTestStore(t *testing.T) *history.Store {
	t.Helper()
	store := history.NewStore(filepath.Join(t.TempDir(), "prices.csv"), false)
	_, err := store.Append([]history.Record{
		{Product: "TV", Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Site: "krefel", Price: 500},
		{Product: "TV", Date: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), Site: "krefel", Price: 450},
	})
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestWriteChart(t *testing.T) {
	store := newTestStore(t)
	path := filepath.Join(t.TempDir(), "prices.html")

	if err := writeChart(store, path, time.Now()); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "TV - krefel") {
		t.Errorf("chart does not contain the series label:\n%s", b)
	}
}

func TestChartHandler(t *testing.T) {
	ts := httptest.NewServer(chartHandler(newTestStore(t)))
	defer ts.Close()

	resp, err := http.Get(ts.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("unexpected content type: %s", ct)
	}
}

func TestChartHandlerBrokenHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	if err := os.WriteFile(path, []byte(",product,datum,winkel,prijs\nx,TV,not-a-date,krefel,1.0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	chartHandler(history.NewStore(path, false))(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}
