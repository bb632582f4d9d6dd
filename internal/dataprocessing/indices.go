package dataprocessing

import (
	"fmt"
	"strconv"
	"strings"
)

// vixSymbol is assigned to rows of the secondary volatility-index file,
// which carries no symbol column of its own.
const vixSymbol = "INDIAVIX"

// mergeIndices produces normalization candidates from the indices
// bhavcopy and, for dates before the INDIAVIX cutover, the separate
// volatility-index file.
//
// Indices have no share count worth reporting, so Turnover (in crore) is
// converted to lakh and used as Volume: currency traded is the meaningful
// activity proxy when every constituent trades in different units.
// Open interest does not exist for indices and is always "0".
func mergeIndices(primary, secondary []RawRecord) []RawRecord {
	var out []RawRecord
	for _, raw := range append(append([]RawRecord{}, primary...), secondary...) {
		rec := raw.clone()
		rec["OI"] = "0"

		if symbol, ok := rec["Symbol"]; ok {
			rec["Symbol"] = strings.ReplaceAll(strings.ToUpper(symbol), " ", "")
			if turnover, err := strconv.ParseFloat(strings.TrimSpace(rec["Turnover"]), 64); err == nil {
				rec["Volume"] = fmt.Sprintf("%.0f", turnover*100)
			}
			// A non-numeric Turnover is the header line; the row is
			// dropped later by date-parse failure.
		} else {
			rec["Symbol"] = vixSymbol
			rec["Volume"] = "0"
		}

		out = append(out, rec)
	}
	return out
}
