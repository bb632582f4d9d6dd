// Package operations orchestrates the per-date pipeline: download the
// published files, normalize them and write the output, one calendar
// date at a time.
package operations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"nsecli/internal/config"
	"nsecli/internal/dataprocessing"
	"nsecli/internal/exporter"
	"nsecli/internal/fetch"
	"nsecli/internal/files"
	"nsecli/pkg/contracts/domain"
)

// Options tunes a processing run.
type Options struct {
	// IncludeWeekends processes Saturdays and Sundays too, needed for
	// exceptional sessions such as Muhurat trading.
	IncludeWeekends bool
}

// Summary reports what a range run did.
type Summary struct {
	Category       domain.Category `json:"category"`
	DatesProcessed int             `json:"dates_processed"`
	DatesSkipped   int             `json:"dates_skipped"`
	DatesEmpty     int             `json:"dates_empty"`
	DatesFailed    int             `json:"dates_failed"`
	RecordsWritten int             `json:"records_written"`
}

// Runner drives the download → normalize → write sequence. Processing is
// deliberately single-threaded and synchronous: one date, one category at
// a time, and no failure of one date ever aborts the range.
type Runner struct {
	paths   *config.Paths
	client  *fetch.Client
	writer  *exporter.CSVWriter
	metrics *Metrics
}

// NewRunner creates a runner over the given collaborators. metrics may be
// nil when no registry is wired (e.g. one-shot CLI runs).
func NewRunner(paths *config.Paths, client *fetch.Client, metrics *Metrics) *Runner {
	return &Runner{
		paths:   paths,
		client:  client,
		writer:  exporter.NewCSVWriter(paths),
		metrics: metrics,
	}
}

// ProcessRange processes every date in the range for one category.
// Weekends are skipped unless opts.IncludeWeekends is set. Per-date
// failures are logged and counted, never fatal to the range.
func (r *Runner) ProcessRange(ctx context.Context, category domain.Category, dr domain.DateRange, opts Options) (*Summary, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("unsupported category: %q", category)
	}
	if dr.To.Before(dr.From) {
		return nil, fmt.Errorf("invalid date range: %s is after %s",
			dr.From.Format("2006-01-02"), dr.To.Format("2006-01-02"))
	}

	slog.InfoContext(ctx, "processing category",
		slog.String("category", string(category)),
		slog.String("from", dr.From.Format("2006-01-02")),
		slog.String("to", dr.To.Format("2006-01-02")))

	summary := &Summary{Category: category}
	for _, date := range dr.Days() {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if !opts.IncludeWeekends && domain.IsWeekend(date) {
			slog.DebugContext(ctx, "skipped weekend",
				slog.String("category", string(category)),
				slog.String("date", date.Format("2006-01-02")))
			summary.DatesSkipped++
			if r.metrics != nil {
				r.metrics.DatesSkipped.Inc()
			}
			continue
		}

		written, err := r.processDate(ctx, category, date)
		switch {
		case err != nil:
			slog.ErrorContext(ctx, "date failed",
				slog.String("category", string(category)),
				slog.String("date", date.Format("2006-01-02")),
				slog.String("error", err.Error()))
			summary.DatesFailed++
			r.countDate(category, "failed")
		case written == 0:
			summary.DatesEmpty++
			r.countDate(category, "empty")
		default:
			summary.DatesProcessed++
			summary.RecordsWritten += written
			r.countDate(category, "processed")
			if r.metrics != nil {
				r.metrics.RecordsEmitted.WithLabelValues(string(category)).Add(float64(written))
			}
		}
	}
	return summary, nil
}

// processDate runs the full pipeline for one category and date and
// returns the number of records written. A date without usable data
// returns (0, nil): indistinguishable from a market holiday, by design.
func (r *Runner) processDate(ctx context.Context, category domain.Category, date time.Time) (int, error) {
	urls := fetch.URLsFor(category, date)
	r.download(ctx, urls.Primary)
	r.download(ctx, urls.Secondary)

	src, cleanup, err := r.locateSources(ctx, category, date)
	if err != nil {
		return 0, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	records, err := dataprocessing.Normalize(ctx, date, category, src)
	if err != nil {
		if errors.Is(err, dataprocessing.ErrSourceNotFound) {
			slog.InfoContext(ctx, "no usable data for date",
				slog.String("category", string(category)),
				slog.String("date", date.Format("2006-01-02")))
			return 0, nil
		}
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	outPath := r.paths.GetReportPath(files.OutputName(category, date))
	if err := r.writer.WriteRecords(outPath, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// locateSources resolves the local input paths for one category and
// date, extracting zipped bhavcopies into a per-invocation scratch
// directory. The returned cleanup removes that directory.
func (r *Runner) locateSources(ctx context.Context, category domain.Category, date time.Time) (dataprocessing.Sources, func(), error) {
	switch category {
	case domain.CategoryIndices:
		src := dataprocessing.Sources{
			Primary: r.paths.GetDownloadPath(files.IndicesBhavcopyName(date)),
		}
		if files.NeedsVixFile(date) {
			src.Secondary = r.paths.GetDownloadPath(files.VixName(date))
		}
		return src, nil, nil

	case domain.CategoryEquities:
		primary, cleanup := r.extractBhavcopy(ctx,
			files.EquitiesBhavcopyZipName(date),
			files.EquitiesBhavcopyName(date),
			files.ExtractDirName(category, date))
		return dataprocessing.Sources{
			Primary:   primary,
			Secondary: r.paths.GetDownloadPath(files.DeliveryName(date)),
		}, cleanup, nil

	case domain.CategoryFutures:
		primary, cleanup := r.extractBhavcopy(ctx,
			files.FuturesBhavcopyZipName(date),
			files.FuturesBhavcopyName(date),
			files.ExtractDirName(category, date))
		return dataprocessing.Sources{Primary: primary}, cleanup, nil
	}
	return dataprocessing.Sources{}, nil, fmt.Errorf("unsupported category: %q", category)
}

// extractBhavcopy extracts the downloaded zip into the scratch directory
// and returns the expected csv path inside it. A missing or unreadable
// archive just leaves the csv absent, which normalization reports as
// ErrSourceNotFound.
func (r *Runner) extractBhavcopy(ctx context.Context, zipName, csvName, scratchName string) (string, func()) {
	scratchDir := r.paths.GetCachePath(scratchName)
	cleanup := func() { os.RemoveAll(scratchDir) }

	archivePath := r.paths.GetDownloadPath(zipName)
	if _, err := fetch.ExtractZip(archivePath, scratchDir); err != nil {
		slog.WarnContext(ctx, "bhavcopy archive could not be extracted",
			slog.String("archive", archivePath),
			slog.String("error", err.Error()))
	}
	return filepath.Join(scratchDir, csvName), cleanup
}

// download fetches one URL into the downloads directory. All failures
// are non-fatal here: a missing remote file usually means a holiday and
// offline mode expects the files to be present already.
func (r *Runner) download(ctx context.Context, url string) {
	if url == "" {
		return
	}
	_, err := r.client.Download(ctx, url, r.paths.DownloadsDir)
	switch {
	case err == nil:
		r.countDownload(DownloadOK)
	case errors.Is(err, fetch.ErrOffline):
		r.countDownload(DownloadSkipped)
	case errors.Is(err, fetch.ErrNotFound):
		slog.WarnContext(ctx, "file could not be downloaded",
			slog.String("url", url),
			slog.String("reason", "not found"))
		r.countDownload(DownloadNotFound)
	default:
		slog.WarnContext(ctx, "file could not be downloaded",
			slog.String("url", url),
			slog.String("error", err.Error()))
		r.countDownload(DownloadError)
	}
}

func (r *Runner) countDownload(status string) {
	if r.metrics != nil {
		r.metrics.DownloadsTotal.WithLabelValues(status).Inc()
	}
}

func (r *Runner) countDate(category domain.Category, result string) {
	if r.metrics != nil {
		r.metrics.DatesProcessed.WithLabelValues(string(category), result).Inc()
	}
}
