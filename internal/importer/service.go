package importer

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/MrJamesThe3rd/morsel/internal/importer/csvsource"
	"github.com/MrJamesThe3rd/morsel/internal/importer/xlsxsource"
	"github.com/MrJamesThe3rd/morsel/internal/sales"
)

type Service struct {
	importers map[Format]Importer
}

func NewService() *Service {
	return &Service{
		importers: map[Format]Importer{
			FormatCSV:  csvsource.New(),
			FormatXLSX: xlsxsource.New(),
		},
	}
}

func (s *Service) Import(format Format, source string, r io.Reader) (sales.Table, error) {
	importer, ok := s.importers[format]
	if !ok {
		return sales.Table{}, fmt.Errorf("unknown format: %s", format)
	}

	return importer.Parse(source, r)
}

// ReadDir parses every supported source file in dir, ordered by file name.
// Subdirectories and files with other extensions are ignored.
func (s *Service) ReadDir(dir string) ([]sales.Table, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	// os.ReadDir already sorts by name; keep the order explicit since concatenation depends on it.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var tables []sales.Table

	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}

		format, ok := FormatOf(e.Name())
		if !ok {
			continue
		}

		t, err := s.importFile(format, filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}

		slog.Debug("source read", "source", t.Source, "format", format, "rows", len(t.Rows))

		tables = append(tables, t)
	}

	return tables, nil
}

func (s *Service) importFile(format Format, path string) (sales.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return sales.Table{}, fmt.Errorf("opening source: %w", err)
	}
	defer f.Close()

	t, err := s.Import(format, filepath.Base(path), f)
	if err != nil {
		return sales.Table{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	return t, nil
}
