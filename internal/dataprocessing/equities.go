package dataprocessing

// Equity series eligible for output. Everything else (IL, BL, trade-for-
// trade variants and so on) is silently excluded.
const (
	seriesRegular   = "EQ"
	seriesBookEntry = "BE"
)

// deliveryKey identifies a delivery-file row by its (Symbol, Series) pair.
type deliveryKey struct {
	Symbol string
	Series string
}

// mergeEquities produces normalization candidates from the equities
// bhavcopy and the optional delivery file.
//
// BE-series instruments settle fully by delivery, so their OI is set to
// the traded volume. EQ-series OI comes from the delivery file; when that
// file is unavailable (secondaryOK false) or has no matching row, OI is
// left empty and the placeholder rule turns it into "0".
func mergeEquities(primary, secondary []RawRecord, secondaryOK bool) []RawRecord {
	// Index the delivery data once; a nested scan would be quadratic in
	// the record count.
	var deliveredQty map[deliveryKey]string
	if secondaryOK {
		deliveredQty = make(map[deliveryKey]string, len(secondary))
		for _, row := range secondary {
			deliveredQty[deliveryKey{row["Symbol"], row["Series"]}] = row["OI"]
		}
	}

	var out []RawRecord
	for _, raw := range primary {
		switch raw["Series"] {
		case seriesBookEntry:
			rec := raw.clone()
			rec["OI"] = rec["Volume"]
			out = append(out, rec)
		case seriesRegular:
			rec := raw.clone()
			if secondaryOK {
				rec["OI"] = deliveredQty[deliveryKey{raw["Symbol"], raw["Series"]}]
			} else {
				rec["OI"] = "0"
			}
			out = append(out, rec)
		}
	}
	return out
}
