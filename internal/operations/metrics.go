package operations

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Download outcome labels.
const (
	DownloadOK       = "ok"
	DownloadNotFound = "not_found"
	DownloadSkipped  = "skipped"
	DownloadError    = "error"
)

// Metrics counts pipeline activity for the /metrics endpoint.
type Metrics struct {
	DownloadsTotal *prometheus.CounterVec
	RecordsEmitted *prometheus.CounterVec
	DatesProcessed *prometheus.CounterVec
	DatesSkipped   prometheus.Counter
}

// NewMetrics registers the pipeline counters on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DownloadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nsecli_downloads_total",
			Help: "Raw file download attempts by outcome.",
		}, []string{"status"}),
		RecordsEmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nsecli_records_emitted_total",
			Help: "Canonical records written by category.",
		}, []string{"category"}),
		DatesProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nsecli_dates_processed_total",
			Help: "Calendar dates processed by category and result.",
		}, []string{"category", "result"}),
		DatesSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "nsecli_dates_skipped_total",
			Help: "Calendar dates skipped as weekends.",
		}),
	}
}
