package dataprocessing

// Source date layouts per category. The indices bhavcopy renders dates as
// DD-MM-YYYY while the historical volatility-index file and the
// equities/derivatives bhavcopies use DD-MMM-YYYY.
var (
	indicesDateLayouts  = []string{"02-01-2006", "02-Jan-2006"}
	equitiesDateLayouts = []string{"02-Jan-2006"}
	futuresDateLayouts  = []string{"02-Jan-2006"}
)

// Column layouts of the source files. The files are parsed positionally;
// their own header lines are dropped by date-parse failure.
var (
	indicesBhavFields = []string{
		"Symbol", "Date", "Open", "High", "Low", "Close",
		"Change", "Change_pct", "Volume", "Turnover", "PE", "PB", "Div_yield",
	}
	// The volatility-index file has no Symbol column; its absence is how
	// the indices merge recognizes the INDIAVIX series.
	vixFields = []string{
		"Date", "Open", "High", "Low", "Close", "Prev_Close", "Change", "Change_pct",
	}

	equitiesBhavFields = []string{
		"Symbol", "Series", "Open", "High", "Low", "Close",
		"LTP", "Prev_Close", "Volume", "Turnover", "Date", "Total_Trades", "ISIN",
	}
	deliveryFields = []string{
		"Type", "Sl_No", "Symbol", "Series", "Volume", "OI", "OI_pct",
	}

	futuresBhavFields = []string{
		"Instrument", "Symbol", "Expiry_Date", "Strike_Price", "Option_Type",
		"Open", "High", "Low", "Close", "Settlement_Price", "Contracts",
		"Turnover_lakh", "OI", "OI_Change", "Date",
	}
)
