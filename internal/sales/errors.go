package sales

import (
	"fmt"
)

// MalformedPriceError is returned when a kept row's price is not a number after
// currency and grouping characters are removed.
type MalformedPriceError struct {
	Source string
	Row    int
	Value  string
	Err    error
}

func (e *MalformedPriceError) Error() string {
	return fmt.Sprintf("%s: malformed price %q", location(e.Source, e.Row), e.Value)
}

func (e *MalformedPriceError) Unwrap() error { return e.Err }

// MalformedQuantityError is returned when a kept row's quantity is not a non-negative integer.
type MalformedQuantityError struct {
	Source string
	Row    int
	Value  string
	Err    error
}

func (e *MalformedQuantityError) Error() string {
	return fmt.Sprintf("%s: malformed quantity %q", location(e.Source, e.Row), e.Value)
}

func (e *MalformedQuantityError) Unwrap() error { return e.Err }

// MalformedDateError is returned when a kept row's date is not a calendar date.
type MalformedDateError struct {
	Source string
	Row    int
	Value  string
	Err    error
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("%s: malformed date %q", location(e.Source, e.Row), e.Value)
}

func (e *MalformedDateError) Unwrap() error { return e.Err }

// UnknownRegionError is returned for a region selector outside the known set.
type UnknownRegionError struct {
	Region string
}

func (e *UnknownRegionError) Error() string {
	return fmt.Sprintf("unknown region %q", e.Region)
}

func location(source string, row int) string {
	switch {
	case source == "" && row == 0:
		return "input"
	case source == "":
		return fmt.Sprintf("row %d", row)
	case row == 0:
		return source
	}

	return fmt.Sprintf("%s row %d", source, row)
}
