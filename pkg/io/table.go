package io

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Table is a comma-separated file read in full. Header is nil for an empty file.
type Table struct {
	Path   string
	Header []string
	Rows   [][]string
}

// Column returns the index of the named header column, or fallback when the
// header does not carry that name.
func (t Table) Column(name string, fallback int) int {
	for i, h := range t.Header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return fallback
}

// LoadTable reads every record in path. The first record is the header.
// A missing file is reported as an error satisfying errors.Is(err, fs.ErrNotExist).
func LoadTable(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	t := Table{Path: path}
	if len(records) > 0 {
		t.Header = records[0]
		t.Rows = records[1:]
	}
	return t, nil
}

// AppendRows appends rows to path, creating it if needed. header is written
// first only when the file is new or empty, so an existing table never gets a
// second header row. A last line without a trailing newline is terminated
// before the new rows are written.
func AppendRows(path string, header []string, rows [][]string) (err error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	if info.Size() > 0 {
		last := make([]byte, 1)
		if _, err := f.ReadAt(last, info.Size()-1); err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if last[0] != '\n' {
			if _, err := f.Write([]byte{'\n'}); err != nil {
				return err
			}
		}
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 && header != nil {
		if err := w.Write(header); err != nil {
			return err
		}
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
