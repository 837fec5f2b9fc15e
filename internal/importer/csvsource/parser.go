// Package csvsource reads comma-separated sales source files.
package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"

	enc "github.com/MrJamesThe3rd/morsel/internal/encoding"
	"github.com/MrJamesThe3rd/morsel/internal/importer/sheet"
	"github.com/MrJamesThe3rd/morsel/internal/sales"
)

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// Parse reads a CSV source with a product, price, quantity, date, region header in any column order.
func (p *Parser) Parse(source string, r io.Reader) (sales.Table, error) {
	utf8r, charset, err := enc.Decode(r)
	if err != nil {
		return sales.Table{}, fmt.Errorf("detect encoding: %w", err)
	}

	if charset != enc.UTF8 {
		slog.Debug("decoding source", "source", source, "charset", charset)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []sheet.Row

	for {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return sales.Table{}, fmt.Errorf("read csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		rows = append(rows, sheet.Row{Num: line, Cells: cells})
	}

	return sheet.Parse(source, rows)
}
