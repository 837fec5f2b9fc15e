// Package export renders a region's revenue series as a downloadable document.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/morsel/internal/query"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const sheetName = "Revenue"

var contentTypes = map[Format]string{
	FormatCSV:  "text/csv; charset=utf-8",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Querier computes the series for a region selector.
type Querier interface {
	Series(selector string) (*query.Result, error)
}

// Document is a rendered export.
type Document struct {
	Name        string
	ContentType string
	Body        []byte
}

type Service struct {
	queries Querier
}

func NewService(q Querier) *Service {
	return &Service{queries: q}
}

// ParseFormat resolves a format name; empty means CSV.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatCSV, nil
	}

	if _, ok := contentTypes[f]; !ok {
		return "", fmt.Errorf("unsupported export format %q", s)
	}

	return f, nil
}

// Export renders the series for selector. Query errors are returned unchanged.
func (s *Service) Export(selector string, format Format) (*Document, error) {
	contentType, ok := contentTypes[format]
	if !ok {
		return nil, fmt.Errorf("unsupported export format %q", format)
	}

	res, err := s.queries.Series(selector)
	if err != nil {
		return nil, err
	}

	var body []byte

	switch format {
	case FormatXLSX:
		body, err = writeXLSX(res)
	default:
		body, err = writeCSV(res)
	}

	if err != nil {
		return nil, fmt.Errorf("rendering %s export: %w", format, err)
	}

	return &Document{
		Name:        filename(res.Selector, format),
		ContentType: contentType,
		Body:        body,
	}, nil
}

func writeCSV(res *query.Result) ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"date", "revenue"}); err != nil {
		return nil, err
	}

	for _, p := range res.Series {
		if err := w.Write([]string{p.Date.Format(time.DateOnly), p.Revenue.String()}); err != nil {
			return nil, err
		}
	}

	w.Flush()

	return buf.Bytes(), w.Error()
}

func writeXLSX(res *query.Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(sheetName, "A1", &[]any{"date", "revenue"}); err != nil {
		return nil, err
	}

	for i, p := range res.Series {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}

		// Revenue goes in as text so the exact decimal survives.
		row := []any{p.Date.Format(time.DateOnly), p.Revenue.String()}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// filename builds pink_morsel_<selector>.<ext> with the selector reduced to safe characters.
func filename(selector string, format Format) string {
	safe := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}

		return '_'
	}, selector)

	return fmt.Sprintf("pink_morsel_%s.%s", safe, format)
}
