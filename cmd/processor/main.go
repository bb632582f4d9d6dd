// Command processor downloads and normalizes NSE end-of-day files for a
// date range and writes one CSV report per category and date.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nsecli/internal/config"
	"nsecli/internal/fetch"
	"nsecli/internal/infrastructure"
	"nsecli/internal/operations"
	"nsecli/pkg/contracts/domain"
)

func main() {
	categoryFlag := flag.String("category", "all", "category to process: indices | equities | futures | all")
	fromStr := flag.String("from", "", "start date (YYYY-MM-DD), required")
	toStr := flag.String("to", "", "end date (YYYY-MM-DD), defaults to the start date")
	includeWeekends := flag.Bool("include-weekends", false, "process Saturdays and Sundays too (exceptional trading sessions)")
	offline := flag.Bool("offline", false, "skip downloads and process already-present files only")
	inDir := flag.String("in", "", "input directory for downloaded files (defaults to data/downloads relative to executable)")
	outDir := flag.String("out", "", "output directory for CSV reports (defaults to data/reports relative to executable)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *offline {
		cfg.Fetch.Offline = true
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
	if *inDir != "" {
		paths.DownloadsDir = *inDir
	}
	if *outDir != "" {
		paths.ReportsDir = *outDir
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create data directories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dr, err := parseRange(*fromStr, *toStr)
	if err != nil {
		slog.Error("Invalid date range", slog.String("error", err.Error()))
		os.Exit(1)
	}

	categories, err := resolveCategories(*categoryFlag)
	if err != nil {
		slog.Error("Invalid category", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := operations.NewRunner(paths, fetch.NewClient(cfg.Fetch), nil)
	opts := operations.Options{IncludeWeekends: *includeWeekends}

	failed := 0
	for _, category := range categories {
		summary, err := runner.ProcessRange(ctx, category, dr, opts)
		if err != nil {
			slog.Error("Processing aborted",
				slog.String("category", string(category)),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		slog.Info("Category finished",
			slog.String("category", string(category)),
			slog.Int("dates_processed", summary.DatesProcessed),
			slog.Int("dates_skipped", summary.DatesSkipped),
			slog.Int("dates_empty", summary.DatesEmpty),
			slog.Int("dates_failed", summary.DatesFailed),
			slog.Int("records_written", summary.RecordsWritten))
		failed += summary.DatesFailed
	}

	if failed > 0 {
		slog.Error("Run finished with failed dates", slog.Int("dates_failed", failed))
		os.Exit(1)
	}
}

func parseRange(fromStr, toStr string) (domain.DateRange, error) {
	if fromStr == "" {
		return domain.DateRange{}, fmt.Errorf("-from is required")
	}
	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("invalid -from date %q: %w", fromStr, err)
	}
	to := from
	if toStr != "" {
		if to, err = time.Parse("2006-01-02", toStr); err != nil {
			return domain.DateRange{}, fmt.Errorf("invalid -to date %q: %w", toStr, err)
		}
	}
	if to.Before(from) {
		return domain.DateRange{}, fmt.Errorf("-to %s precedes -from %s", toStr, fromStr)
	}
	return domain.DateRange{From: from, To: to}, nil
}

func resolveCategories(value string) ([]domain.Category, error) {
	if value == "all" {
		return domain.Categories, nil
	}
	category := domain.Category(value)
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", value)
	}
	return []domain.Category{category}, nil
}
