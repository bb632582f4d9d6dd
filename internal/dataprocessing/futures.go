package dataprocessing

// futuresInstruments are the instrument codes emitted from the
// derivatives bhavcopy. Options and every other instrument type are
// excluded.
var futuresInstruments = map[string]bool{
	"FUTIDX": true,
	"FUTIVX": true,
	"FUTSTK": true,
}

// contractSuffixes disambiguate multiple contract months of one
// underlying traded on the same date, in source order.
var contractSuffixes = []string{
	"-I", "-II", "-III", "-IV", "-V", "-VI", "-VII", "-VIII",
	"-IX", "-X", "-XI", "-XII", "-XIII", "-XIV", "-XV", "-XVI",
}

// mergeFutures produces normalization candidates from the derivatives
// bhavcopy.
//
// The settlement price, not the last-traded price, is the authoritative
// close for a derivatives contract, and Volume reports contracts traded.
// Contract months of the same symbol arrive expiry-ordered in the source
// file, so an ordinal suffix is assigned with a single forward pass and
// one-element lookback, resetting whenever the symbol changes.
func mergeFutures(primary []RawRecord) []RawRecord {
	var out []RawRecord
	pos := 0
	previousSymbol := ""
	for _, raw := range primary {
		if !futuresInstruments[raw["Instrument"]] {
			continue
		}
		currentSymbol := raw["Symbol"]
		if previousSymbol != "" && currentSymbol == previousSymbol {
			pos++
		} else {
			pos = 0
		}
		if pos >= len(contractSuffixes) {
			// More contract months than suffixes should not happen; the
			// farthest months are dropped rather than mislabeled.
			continue
		}

		rec := raw.clone()
		rec["Symbol"] = currentSymbol + contractSuffixes[pos]
		rec["Volume"] = rec["Contracts"]
		rec["Close"] = rec["Settlement_Price"]
		out = append(out, rec)
		previousSymbol = currentSymbol
	}
	return out
}
