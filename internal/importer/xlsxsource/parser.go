// Package xlsxsource reads Excel workbooks exported from the sales system.
package xlsxsource

import (
	"fmt"
	"io"
	"slices"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/morsel/internal/importer/sheet"
	"github.com/MrJamesThe3rd/morsel/internal/sales"
)

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// Parse reads the first worksheet that carries a sales header. When no sheet
// does, the first sheet is parsed so the missing columns are reported.
func (p *Parser) Parse(source string, r io.Reader) (sales.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return sales.Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return sales.Table{Source: source}, nil
	}

	var first []sheet.Row

	for i, name := range sheets {
		cells, err := f.GetRows(name)
		if err != nil {
			return sales.Table{}, fmt.Errorf("read sheet %q: %w", name, err)
		}

		rows := numbered(cells)
		if i == 0 {
			first = rows
		}

		if slices.ContainsFunc(rows, func(r sheet.Row) bool { return sheet.HasColumns(r.Cells) }) {
			return sheet.Parse(source, rows)
		}
	}

	return sheet.Parse(source, first)
}

func numbered(cells [][]string) []sheet.Row {
	rows := make([]sheet.Row, len(cells))
	for i, c := range cells {
		rows[i] = sheet.Row{Num: i + 1, Cells: c}
	}

	return rows
}
