package view

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/morsel/internal/sales"
)

const (
	ingestTimeout = time.Minute

	defaultBarWidth = 30
	minBarWidth     = 10
	maxBarWidth     = 80

	// chrome is the table and view padding around the fixed date and revenue columns.
	dateWidth    = 12
	revenueWidth = 14
	chrome       = 12

	// MarkerLabel annotates the reference-date row in the series table.
	MarkerLabel = "Price Increase"
)

// FormatRevenue formats a revenue value with two decimals and a dollar sign.
func FormatRevenue(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// IngestCtx returns a context with a standard timeout for ingestion runs.
func IngestCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), ingestTimeout)
}

// Bar renders v as a bar scaled against top.
func Bar(v, top decimal.Decimal, width int) string {
	if !top.IsPositive() || !v.IsPositive() {
		return ""
	}

	n := v.Div(top).Mul(decimal.NewFromInt(int64(width))).Round(0).IntPart()
	if n < 1 {
		n = 1
	}

	return strings.Repeat("█", int(n))
}

// BarWidth returns the bar column width for a terminal width; 0 means unknown.
func BarWidth(termWidth int) int {
	if termWidth <= 0 {
		return defaultBarWidth
	}

	return min(max(termWidth-dateWidth-revenueWidth-chrome, minBarWidth), maxBarWidth)
}

// SeriesRows renders series as table rows with a marker row at marker. The marker sits
// before the first point on or after marker, or at the end when every point precedes it.
// Bars are scaled to barWidth cells.
func SeriesRows(series sales.Series, marker time.Time, barWidth int) []table.Row {
	maxRevenue := decimal.Zero
	for _, p := range series {
		maxRevenue = decimal.Max(maxRevenue, p.Revenue)
	}

	markerRow := table.Row{FormatDate(marker), "", "── " + MarkerLabel + " ──"}

	rows := make([]table.Row, 0, len(series)+1)
	placed := false

	for _, p := range series {
		if !placed && !p.Date.Before(marker) {
			rows = append(rows, markerRow)
			placed = true
		}

		rows = append(rows, table.Row{
			FormatDate(p.Date),
			FormatRevenue(p.Revenue),
			Bar(p.Revenue, maxRevenue, barWidth),
		})
	}

	if !placed {
		rows = append(rows, markerRow)
	}

	return rows
}
