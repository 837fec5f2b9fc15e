// Package query computes region-filtered, date-ordered revenue series over the canonical dataset.
package query

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/morsel/internal/sales"
)

// ParseSelector validates a region selector: "all" or one of the known regions, matched exactly.
func ParseSelector(selector string) (string, error) {
	if selector == sales.SelectorAll || sales.Region(selector).IsKnown() {
		return selector, nil
	}

	return "", &sales.UnknownRegionError{Region: selector}
}

// Query filters records by selector, sums revenue per calendar date and returns the
// totals in ascending date order. Dates without matching records are omitted.
// The records slice is never modified.
func Query(records []sales.Record, selector string) (sales.Series, error) {
	selector, err := ParseSelector(selector)
	if err != nil {
		return nil, err
	}

	totals := make(map[time.Time]decimal.Decimal)

	for _, r := range records {
		if selector != sales.SelectorAll && r.Region != selector {
			continue
		}

		day := calendarDate(r.Date)
		totals[day] = totals[day].Add(r.Revenue)
	}

	series := make(sales.Series, 0, len(totals))
	for day, revenue := range totals {
		series = append(series, sales.Point{Date: day, Revenue: revenue})
	}

	slices.SortFunc(series, func(a, b sales.Point) int {
		return a.Date.Compare(b.Date)
	})

	return series, nil
}

// calendarDate drops any time-of-day and location so equal calendar dates share a map key.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
