// Package csvstore persists the canonical dataset as a single CSV file with the
// columns sales, date and region.
package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/morsel/internal/dataset"
	"github.com/MrJamesThe3rd/morsel/internal/sales"
)

const (
	colSales  = "sales"
	colDate   = "date"
	colRegion = "region"
)

var header = []string{colSales, colDate, colRegion}

type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Save replaces the file with records. The new content is written to a temporary file
// in the same directory and renamed over the old one.
func (s *Store) Save(_ context.Context, records []sales.Record) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, records); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}

	slog.Info("canonical dataset written", "path", s.path, "records", len(records))

	return nil
}

// Load reads the canonical file. A missing file is dataset.ErrNotFound.
func (s *Store) Load(_ context.Context) ([]sales.Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, dataset.ErrNotFound
		}

		return nil, fmt.Errorf("opening %s: %w", s.path, err)
	}
	defer f.Close()

	return Read(f)
}

// Write encodes records as canonical CSV with a header row.
func Write(w io.Writer, records []sales.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, r := range records {
		row := []string{r.Revenue.String(), r.Date.Format(time.DateOnly), r.Region}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// Read decodes canonical CSV. Columns are located by header name.
func Read(r io.Reader) ([]sales.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	records := make([]sales.Record, 0, max(len(rows)-1, 0))
	if len(rows) == 0 {
		return records, nil
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, name := range header {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	for i, row := range rows[1:] {
		rowNum := i + 2

		if len(row) < len(rows[0]) {
			return nil, fmt.Errorf("row %d: expected %d fields, got %d", rowNum, len(rows[0]), len(row))
		}

		revenue, err := decimal.NewFromString(strings.TrimSpace(row[cols[colSales]]))
		if err != nil {
			return nil, fmt.Errorf("row %d: sales: %w", rowNum, err)
		}

		date, err := time.Parse(time.DateOnly, strings.TrimSpace(row[cols[colDate]]))
		if err != nil {
			return nil, fmt.Errorf("row %d: date: %w", rowNum, err)
		}

		records = append(records, sales.Record{
			Revenue: revenue,
			Date:    date,
			Region:  row[cols[colRegion]],
		})
	}

	return records, nil
}
