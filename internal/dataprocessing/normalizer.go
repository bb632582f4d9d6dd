package dataprocessing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"nsecli/pkg/contracts/domain"
)

// Sources locates the input files for one category and date. Secondary is
// empty when the category has no secondary file for that date.
type Sources struct {
	Primary   string
	Secondary string
}

// categorySpec parameterizes the shared normalization flow. The three
// categories differ only in column layouts, date formats and the merge
// rule; everything around those is common.
type categorySpec struct {
	primaryFields   []string
	secondaryFields []string
	dateLayouts     []string
	// merge turns raw rows into normalization candidates carrying the
	// canonical keys. secondaryOK reports whether the secondary file was
	// readable.
	merge func(primary, secondary []RawRecord, secondaryOK bool) []RawRecord
	// primaryOptional marks categories that can produce output from the
	// secondary file alone.
	primaryOptional bool
}

var categorySpecs = map[domain.Category]categorySpec{
	domain.CategoryIndices: {
		primaryFields:   indicesBhavFields,
		secondaryFields: vixFields,
		dateLayouts:     indicesDateLayouts,
		merge: func(primary, secondary []RawRecord, _ bool) []RawRecord {
			return mergeIndices(primary, secondary)
		},
		primaryOptional: true,
	},
	domain.CategoryEquities: {
		primaryFields:   equitiesBhavFields,
		secondaryFields: deliveryFields,
		dateLayouts:     equitiesDateLayouts,
		merge:           mergeEquities,
	},
	domain.CategoryFutures: {
		primaryFields: futuresBhavFields,
		dateLayouts:   futuresDateLayouts,
		merge: func(primary, _ []RawRecord, _ bool) []RawRecord {
			return mergeFutures(primary)
		},
	},
}

// Normalize is the single entry point for drivers and front-ends: it
// reads the source files for one category and date and returns the
// canonical record stream.
//
// A missing primary file aborts the category for equities and futures
// (ErrSourceNotFound); indices can still produce the volatility-index
// series from the secondary file alone. A missing secondary degrades:
// indices lose the INDIAVIX rows, equities fall back to OI "0".
// Individual malformed rows are dropped, never the batch.
func Normalize(ctx context.Context, date time.Time, category domain.Category, src Sources) ([]domain.Record, error) {
	spec, ok := categorySpecs[category]
	if !ok {
		return nil, fmt.Errorf("unsupported category: %q", category)
	}

	primary, err := ReadRawRecords(src.Primary, spec.primaryFields)
	if err != nil {
		if !errors.Is(err, ErrSourceNotFound) {
			return nil, err
		}
		if !spec.primaryOptional {
			return nil, err
		}
		slog.WarnContext(ctx, "primary file missing, continuing with secondary only",
			slog.String("category", string(category)),
			slog.String("file", src.Primary))
	}

	var secondary []RawRecord
	secondaryOK := false
	if src.Secondary != "" {
		secondary, err = ReadRawRecords(src.Secondary, spec.secondaryFields)
		if err != nil {
			if !errors.Is(err, ErrSourceNotFound) {
				return nil, err
			}
			slog.WarnContext(ctx, "secondary file missing, proceeding with degraded data",
				slog.String("category", string(category)),
				slog.String("file", src.Secondary))
			secondary = nil
		} else {
			secondaryOK = true
		}
	}

	if primary == nil && secondary == nil {
		return nil, fmt.Errorf("no inputs for %s on %s: %w",
			category, date.Format("2006-01-02"), ErrSourceNotFound)
	}

	candidates := spec.merge(primary, secondary, secondaryOK)
	records := finalize(ctx, candidates, spec.dateLayouts)

	slog.InfoContext(ctx, "normalized category",
		slog.String("category", string(category)),
		slog.String("date", date.Format("2006-01-02")),
		slog.Int("records", len(records)))
	return records, nil
}

// finalize runs the order-sensitive sanitizer chain over every candidate
// and builds the canonical records. Rows failing the date parse are
// header/label rows and vanish silently; rows failing the number parse
// are dropped with a warning.
func finalize(ctx context.Context, candidates []RawRecord, dateLayouts []string) []domain.Record {
	var records []domain.Record
	for _, rec := range candidates {
		trimFields(rec)

		isoDate, err := parseSourceDate(rec["Date"], dateLayouts)
		if err != nil {
			slog.DebugContext(ctx, "skipping row with unparseable date",
				slog.String("value", rec["Date"]))
			continue
		}

		coercePlaceholders(rec)
		fillZeroOHLC(rec)
		if err := formatPrices(rec); err != nil {
			slog.WarnContext(ctx, "dropping malformed record",
				slog.String("symbol", rec["Symbol"]),
				slog.String("error", err.Error()))
			continue
		}

		records = append(records, domain.Record{
			Symbol: rec["Symbol"],
			Date:   isoDate,
			Open:   rec["Open"],
			High:   rec["High"],
			Low:    rec["Low"],
			Close:  rec["Close"],
			Volume: rec["Volume"],
			OI:     rec["OI"],
		})
	}
	return records
}
