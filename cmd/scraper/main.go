// Command scraper downloads the NSE end-of-day source files for a date
// range without processing them, staging the downloads directory for a
// later processor run.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nsecli/internal/config"
	"nsecli/internal/fetch"
	"nsecli/internal/infrastructure"
	"nsecli/pkg/contracts/domain"
)

func main() {
	fromStr := flag.String("from", "", "start date (YYYY-MM-DD), required")
	toStr := flag.String("to", "", "end date (YYYY-MM-DD), defaults to the start date")
	includeWeekends := flag.Bool("include-weekends", false, "fetch Saturdays and Sundays too")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if _, err := infrastructure.InitializeLogger(cfg.Logging); err != nil {
		slog.Error("Failed to initialize logger", slog.String("error", err.Error()))
		os.Exit(1)
	}

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create data directories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	from, to, err := parseRange(*fromStr, *toStr)
	if err != nil {
		slog.Error("Invalid date range", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := fetch.NewClient(cfg.Fetch)

	fetched, missing := 0, 0
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		if ctx.Err() != nil {
			break
		}
		if !*includeWeekends && domain.IsWeekend(date) {
			continue
		}
		for _, category := range domain.Categories {
			urls := fetch.URLsFor(category, date)
			for _, url := range []string{urls.Primary, urls.Secondary} {
				if url == "" {
					continue
				}
				_, err := client.Download(ctx, url, paths.DownloadsDir)
				switch {
				case err == nil:
					fetched++
				case errors.Is(err, fetch.ErrNotFound):
					slog.Warn("File not available",
						slog.String("date", date.Format("2006-01-02")),
						slog.String("url", url))
					missing++
				default:
					slog.Error("Download failed",
						slog.String("url", url),
						slog.String("error", err.Error()))
					missing++
				}
			}
		}
	}

	slog.Info("Scrape finished", slog.Int("fetched", fetched), slog.Int("missing", missing))
}

func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	if fromStr == "" {
		return time.Time{}, time.Time{}, errors.New("-from is required")
	}
	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to := from
	if toStr != "" {
		if to, err = time.Parse("2006-01-02", toStr); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("end date precedes start date")
	}
	return from, to, nil
}
