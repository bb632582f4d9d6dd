package domain

import "time"

// Category identifies an NSE exchange segment whose end-of-day files
// this application downloads and normalizes.
type Category string

const (
	CategoryIndices  Category = "indices"
	CategoryEquities Category = "equities"
	CategoryFutures  Category = "futures"
)

// Categories lists every supported segment in processing order.
var Categories = []Category{CategoryIndices, CategoryEquities, CategoryFutures}

// Valid reports whether c names a supported segment.
func (c Category) Valid() bool {
	switch c {
	case CategoryIndices, CategoryEquities, CategoryFutures:
		return true
	}
	return false
}

// Title returns the segment name as used in output filenames,
// e.g. "Indices" in "NSE-Indices-2014-01-01.csv".
func (c Category) Title() string {
	switch c {
	case CategoryIndices:
		return "Indices"
	case CategoryEquities:
		return "Equities"
	case CategoryFutures:
		return "Futures"
	}
	return ""
}

// Record is one normalized end-of-day row, the unit of output for every
// category. All fields are kept as decimal-formatted text so a processed
// file round-trips byte for byte.
//
// Invariants after normalization: no field is empty, Date is ISO-8601,
// Open/High/Low/Close carry exactly two fractional digits, and a missing
// source value has been coerced to "0".
type Record struct {
	Symbol string `json:"symbol" validate:"required"`
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Open   string `json:"open" validate:"required"`
	High   string `json:"high" validate:"required"`
	Low    string `json:"low" validate:"required"`
	Close  string `json:"close" validate:"required"`
	Volume string `json:"volume" validate:"required"`
	OI     string `json:"oi" validate:"required"`
}

// Header is the literal header line written to every output file.
func Header() []string {
	return []string{"Symbol", "Date", "Open", "High", "Low", "Close", "Volume", "OI"}
}

// Row serializes the record in the fixed output field order, which is
// index-aligned with Header.
func (r Record) Row() []string {
	return []string{r.Symbol, r.Date, r.Open, r.High, r.Low, r.Close, r.Volume, r.OI}
}

// DateRange is an inclusive span of calendar dates handed to the
// date-range driver.
type DateRange struct {
	From time.Time `json:"from" validate:"required"`
	To   time.Time `json:"to" validate:"required"`
}

// Days returns every date in the range in ascending order.
func (dr DateRange) Days() []time.Time {
	var days []time.Time
	for d := dr.From; !d.After(dr.To); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// IsWeekend reports whether t falls on a Saturday or Sunday. Trading on
// these days is exceptional (e.g. Muhurat sessions), so the driver skips
// them unless explicitly told otherwise.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
