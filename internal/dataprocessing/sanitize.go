package dataprocessing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MalformedNumberError indicates a price field that cannot be parsed as a
// decimal number. It aborts normalization of the single record carrying
// it, never the batch.
type MalformedNumberError struct {
	Field string
	Value string
}

func (e *MalformedNumberError) Error() string {
	return fmt.Sprintf("malformed number in field %s: %q", e.Field, e.Value)
}

// MalformedDateError indicates a source date that does not match any of
// the category's layouts. The most common cause is a header or label row
// read as data, so carriers of this error are silently skipped.
type MalformedDateError struct {
	Value string
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("malformed date: %q", e.Value)
}

// canonicalKeys are the record fields subject to trimming and placeholder
// coercion, matching the output field order.
var canonicalKeys = []string{"Symbol", "Open", "High", "Low", "Close", "Volume", "OI"}

// priceKeys are the fields re-rendered with exactly two fractional digits.
var priceKeys = []string{"Open", "High", "Low", "Close"}

// trimFields strips leading/trailing whitespace from the canonical fields
// and the date. Runs before every other rule.
func trimFields(rec RawRecord) {
	for _, key := range canonicalKeys {
		rec[key] = strings.TrimSpace(rec[key])
	}
	rec["Date"] = strings.TrimSpace(rec["Date"])
}

// coercePlaceholders replaces the dash placeholder and the empty string
// with "0" in every canonical field, ahead of numeric interpretation.
func coercePlaceholders(rec RawRecord) {
	for _, key := range canonicalKeys {
		if rec[key] == "-" || rec[key] == "" {
			rec[key] = "0"
		}
	}
}

// fillZeroOHLC forces Open/High/Low to Close when all three are zero and
// Close is not. Sources omit the intraday range for instruments that only
// printed a settlement/closing price; without this rule those rows would
// chart as zero-price candles.
func fillZeroOHLC(rec RawRecord) {
	if rec["Close"] == "0" {
		return
	}
	if rec["Open"] == "0" && rec["High"] == "0" && rec["Low"] == "0" {
		rec["Open"] = rec["Close"]
		rec["High"] = rec["Close"]
		rec["Low"] = rec["Close"]
	}
}

// formatPrices re-renders the price fields with exactly two fractional
// digits, e.g. "123.5" becomes "123.50".
func formatPrices(rec RawRecord) error {
	for _, key := range priceKeys {
		value, err := strconv.ParseFloat(rec[key], 64)
		if err != nil {
			return &MalformedNumberError{Field: key, Value: rec[key]}
		}
		rec[key] = fmt.Sprintf("%.2f", value)
	}
	return nil
}

// parseSourceDate parses value against the given layouts in order and
// returns the date re-rendered as ISO-8601.
func parseSourceDate(value string, layouts []string) (string, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", &MalformedDateError{Value: value}
}
