// Package exporter serializes canonical records to delimited output
// files.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"nsecli/internal/config"
	"nsecli/pkg/contracts/domain"
)

// CSVWriter writes normalized records as comma-separated files.
type CSVWriter struct {
	paths *config.Paths
}

// NewCSVWriter creates a new CSV writer instance.
func NewCSVWriter(paths *config.Paths) *CSVWriter {
	return &CSVWriter{paths: paths}
}

// WriteRecords writes one header line followed by one line per record in
// the fixed field order. An empty record set is a deliberate no-op: no
// file is created or overwritten, so a missing output distinguishes "no
// usable data" from "a valid file with zero rows". Callers must not
// assume the file exists afterwards.
func (w *CSVWriter) WriteRecords(filePath string, records []domain.Record) error {
	if len(records) == 0 {
		slog.Warn("no data available, skipping file write",
			slog.String("file_path", filePath))
		return nil
	}

	fullPath := w.resolvePath(filePath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", fullPath, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(domain.Header()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, record := range records {
		if err := writer.Write(record.Row()); err != nil {
			return fmt.Errorf("failed to write record %s: %w", record.Symbol, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", fullPath, err)
	}

	slog.Info("file generated",
		slog.String("file_path", fullPath),
		slog.Int("record_count", len(records)))
	return nil
}

// resolvePath treats relative paths as report filenames.
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.paths == nil {
		return filePath
	}
	return w.paths.GetReportPath(filePath)
}
