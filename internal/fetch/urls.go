package fetch

import (
	"fmt"
	"strings"
	"time"

	"nsecli/internal/files"
	"nsecli/pkg/contracts/domain"
)

// SourceURLs holds the download URLs for one category and date. Secondary
// is empty when the category has no secondary file for that date.
type SourceURLs struct {
	Primary   string
	Secondary string
}

// URLsFor returns the NSE archive URLs for a category and date.
//
// Indices carry a secondary volatility-index URL only for dates before
// the INDIAVIX cutover; equities always carry the delivery-file URL;
// futures have a single zipped bhavcopy.
func URLsFor(category domain.Category, date time.Time) SourceURLs {
	switch category {
	case domain.CategoryIndices:
		urls := SourceURLs{
			Primary: fmt.Sprintf("http://www.nseindia.com/content/indices/%s",
				files.IndicesBhavcopyName(date)),
		}
		if files.NeedsVixFile(date) {
			urls.Secondary = fmt.Sprintf("http://nseindia.com/content/vix/histdata/%s",
				files.VixName(date))
		}
		return urls
	case domain.CategoryEquities:
		return SourceURLs{
			Primary: fmt.Sprintf("http://nseindia.com/content/historical/EQUITIES/%s/%s/%s",
				date.Format("2006"),
				strings.ToUpper(date.Format("Jan")),
				files.EquitiesBhavcopyZipName(date)),
			Secondary: fmt.Sprintf("http://www.nseindia.com/archives/equities/mto/%s",
				files.DeliveryName(date)),
		}
	case domain.CategoryFutures:
		return SourceURLs{
			Primary: fmt.Sprintf("http://nseindia.com/content/historical/DERIVATIVES/%s/%s/%s",
				date.Format("2006"),
				strings.ToUpper(date.Format("Jan")),
				files.FuturesBhavcopyZipName(date)),
		}
	}
	return SourceURLs{}
}
