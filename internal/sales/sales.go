package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// TargetProduct is the only product line kept during ingestion, compared case-insensitively.
const TargetProduct = "pink morsel"

// ReferenceDate marks the Pink Morsel price increase. It is a fixed annotation for charts
// and is never derived from data.
var ReferenceDate = time.Date(2021, time.January, 15, 0, 0, 0, 0, time.UTC)

// RawRecord holds the raw cell values of one source row.
type RawRecord struct {
	Source   string
	Row      int // 1-based line in the source file
	Product  string
	Price    string
	Quantity string
	Date     string
	Region   string
}

// Table is one parsed source file.
type Table struct {
	Source string
	Rows   []RawRecord
}

// Record is a canonical sales record: the revenue of one source row on a calendar date in a region.
type Record struct {
	Revenue decimal.Decimal
	Date    time.Time // calendar date at UTC midnight
	Region  string
}

// Point is the total revenue for one date.
type Point struct {
	Date    time.Time
	Revenue decimal.Decimal
}

// Series is a sequence of points strictly increasing by date.
type Series []Point

// Total returns the revenue summed over every point.
func (s Series) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s {
		total = total.Add(p.Revenue)
	}

	return total
}
