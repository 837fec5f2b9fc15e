// Package normalize turns raw source tables into the canonical sales dataset.
package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/morsel/internal/sales"
)

// Normalize keeps the target product rows of every table, derives their revenue and
// concatenates the projections in table order. The first malformed kept row aborts the run.
func Normalize(tables []sales.Table) ([]sales.Record, error) {
	records := make([]sales.Record, 0)

	for _, t := range tables {
		recs, err := NormalizeTable(t)
		if err != nil {
			return nil, err
		}

		records = append(records, recs...)
	}

	return records, nil
}

// NormalizeTable normalizes a single source table.
func NormalizeTable(t sales.Table) ([]sales.Record, error) {
	var records []sales.Record

	for _, row := range t.Rows {
		if !MatchesProduct(row.Product) {
			continue
		}

		rec, err := normalizeRow(row)
		if err != nil {
			return nil, withLocation(err, t.Source, row.Row)
		}

		records = append(records, rec)
	}

	return records, nil
}

func normalizeRow(row sales.RawRecord) (sales.Record, error) {
	price, err := ParsePrice(row.Price)
	if err != nil {
		return sales.Record{}, err
	}

	qty, err := ParseQuantity(row.Quantity)
	if err != nil {
		return sales.Record{}, err
	}

	date, err := ParseDate(row.Date)
	if err != nil {
		return sales.Record{}, err
	}

	return sales.Record{
		Revenue: price.Mul(decimal.NewFromInt(qty)),
		Date:    date,
		Region:  strings.TrimSpace(row.Region),
	}, nil
}

// withLocation stamps the source and row onto a field error.
func withLocation(err error, source string, row int) error {
	var (
		priceErr *sales.MalformedPriceError
		qtyErr   *sales.MalformedQuantityError
		dateErr  *sales.MalformedDateError
	)

	switch {
	case errors.As(err, &priceErr):
		priceErr.Source, priceErr.Row = source, row
	case errors.As(err, &qtyErr):
		qtyErr.Source, qtyErr.Row = source, row
	case errors.As(err, &dateErr):
		dateErr.Source, dateErr.Row = source, row
	default:
		return fmt.Errorf("%s row %d: %w", source, row, err)
	}

	return err
}
