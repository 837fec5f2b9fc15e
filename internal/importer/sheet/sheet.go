// Package sheet maps header-named tabular rows onto raw sales records.
package sheet

import (
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/morsel/internal/sales"
)

// Required column names, matched case-insensitively in any order.
const (
	ColProduct  = "product"
	ColPrice    = "price"
	ColQuantity = "quantity"
	ColDate     = "date"
	ColRegion   = "region"
)

var required = []string{ColProduct, ColPrice, ColQuantity, ColDate, ColRegion}

// Row is a row of cells with its 1-based position in the source.
type Row struct {
	Num   int
	Cells []string
}

// Columns maps a required column name to its index in a row.
type Columns map[string]int

// MissingColumnsError is returned when a header lacks required columns.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return "missing columns: " + strings.Join(e.Missing, ", ")
}

// ShortRowError is returned when a data row has fewer cells than the header needs.
type ShortRowError struct {
	Row  int
	Want int
	Got  int
}

func (e *ShortRowError) Error() string {
	return fmt.Sprintf("row %d: expected at least %d fields, got %d", e.Row, e.Want, e.Got)
}

// DetectColumns indexes the required columns in a header row.
func DetectColumns(header []string) (Columns, error) {
	found := make(map[string]int, len(header))

	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if _, dup := found[name]; name != "" && !dup {
			found[name] = i
		}
	}

	cols := make(Columns, len(required))

	var missing []string

	for _, name := range required {
		idx, ok := found[name]
		if !ok {
			missing = append(missing, name)
			continue
		}

		cols[name] = idx
	}

	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}

	return cols, nil
}

// HasColumns reports whether header contains every required column.
func HasColumns(header []string) bool {
	_, err := DetectColumns(header)
	return err == nil
}

// Parse locates the header row and maps every following non-blank row onto a
// RawRecord. Rows above the header are ignored. An empty source yields an empty table.
func Parse(source string, rows []Row) (sales.Table, error) {
	t := sales.Table{Source: source}

	start, cols, err := findHeader(rows)
	if err != nil {
		return t, err
	}

	if start < 0 {
		return t, nil
	}

	width := 0
	for _, idx := range cols {
		width = max(width, idx+1)
	}

	for _, row := range rows[start+1:] {
		if blank(row.Cells) {
			continue
		}

		if len(row.Cells) < width {
			return t, &ShortRowError{Row: row.Num, Want: width, Got: len(row.Cells)}
		}

		t.Rows = append(t.Rows, sales.RawRecord{
			Source:   source,
			Row:      row.Num,
			Product:  cellValue(row.Cells, cols[ColProduct]),
			Price:    cellValue(row.Cells, cols[ColPrice]),
			Quantity: cellValue(row.Cells, cols[ColQuantity]),
			Date:     cellValue(row.Cells, cols[ColDate]),
			Region:   cellValue(row.Cells, cols[ColRegion]),
		})
	}

	return t, nil
}

// findHeader returns the index of the first row carrying every required column.
// When no row qualifies, the error describes the first non-blank row.
func findHeader(rows []Row) (int, Columns, error) {
	first := -1

	for i, row := range rows {
		if blank(row.Cells) {
			continue
		}

		if first < 0 {
			first = i
		}

		if cols, err := DetectColumns(row.Cells); err == nil {
			return i, cols, nil
		}
	}

	if first < 0 {
		return -1, nil, nil
	}

	_, err := DetectColumns(rows[first].Cells)

	return -1, nil, fmt.Errorf("row %d: %w", rows[first].Num, err)
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}

	return strings.TrimSpace(cells[idx])
}
