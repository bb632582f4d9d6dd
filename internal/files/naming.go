// Package files knows the filename conventions of the NSE published
// archives and of the normalized output this application generates.
// Every other package goes through these builders so a date renders the
// same way everywhere.
package files

import (
	"fmt"
	"strings"
	"time"

	"nsecli/pkg/contracts/domain"
)

// VixCutoverDate is the day NSE started including INDIAVIX in the indices
// bhavcopy itself. Before this date the volatility index is published as a
// separate historical file.
var VixCutoverDate = time.Date(2014, time.May, 14, 0, 0, 0, 0, time.UTC)

// NeedsVixFile reports whether the separate volatility-index file must be
// fetched and parsed for the given date.
func NeedsVixFile(date time.Time) bool {
	return date.Before(VixCutoverDate)
}

// IndicesBhavcopyName returns the indices bhavcopy filename,
// e.g. "ind_close_all_01012014.csv".
func IndicesBhavcopyName(date time.Time) string {
	return fmt.Sprintf("ind_close_all_%s.csv", date.Format("02012006"))
}

// VixName returns the historical volatility-index filename,
// e.g. "hist_india_vix_01-Jan-2014_01-Jan-2014.csv".
func VixName(date time.Time) string {
	d := date.Format("02-Jan-2006")
	return fmt.Sprintf("hist_india_vix_%s_%s.csv", d, d)
}

// EquitiesBhavcopyZipName returns the zipped equities bhavcopy filename,
// e.g. "cm01JAN2014bhav.csv.zip".
func EquitiesBhavcopyZipName(date time.Time) string {
	return fmt.Sprintf("cm%sbhav.csv.zip", strings.ToUpper(date.Format("02Jan2006")))
}

// EquitiesBhavcopyName returns the csv filename inside the equities zip.
func EquitiesBhavcopyName(date time.Time) string {
	return strings.TrimSuffix(EquitiesBhavcopyZipName(date), ".zip")
}

// DeliveryName returns the equities delivery ("MTO") filename,
// e.g. "MTO_01012014.DAT".
func DeliveryName(date time.Time) string {
	return fmt.Sprintf("MTO_%s.DAT", date.Format("02012006"))
}

// FuturesBhavcopyZipName returns the zipped derivatives bhavcopy filename,
// e.g. "fo01JAN2014bhav.csv.zip".
func FuturesBhavcopyZipName(date time.Time) string {
	return fmt.Sprintf("fo%sbhav.csv.zip", strings.ToUpper(date.Format("02Jan2006")))
}

// FuturesBhavcopyName returns the csv filename inside the futures zip.
func FuturesBhavcopyName(date time.Time) string {
	return strings.TrimSuffix(FuturesBhavcopyZipName(date), ".zip")
}

// OutputName returns the normalized output filename for a category and
// date, e.g. "NSE-Indices-2014-01-01.csv".
func OutputName(category domain.Category, date time.Time) string {
	return fmt.Sprintf("NSE-%s-%s.csv", category.Title(), date.Format("2006-01-02"))
}

// ExtractDirName returns a per-category, per-date scratch directory name
// for zip extraction. Keeping the extraction path unique per invocation
// means concurrent outer drivers can never collide on extracted files.
func ExtractDirName(category domain.Category, date time.Time) string {
	return fmt.Sprintf("%s-%s", category, date.Format("2006-01-02"))
}
