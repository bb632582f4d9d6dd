package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nsecli/internal/config"
	"nsecli/pkg/contracts/domain"
)

func sampleRecords() []domain.Record {
	return []domain.Record{
		{Symbol: "NIFTY50", Date: "2014-01-01", Open: "6301.25", High: "6358.30",
			Low: "6211.30", Close: "6323.80", Volume: "280122", OI: "0"},
		{Symbol: "INDIAVIX", Date: "2014-01-01", Open: "15.67", High: "16.23",
			Low: "15.20", Close: "15.87", Volume: "0", OI: "0"},
	}
}

func TestCSVWriter_WriteRecords(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(config.NewPaths(dir))
	outPath := filepath.Join(dir, "nested", "NSE-Indices-2014-01-01.csv")

	require.NoError(t, writer.WriteRecords(outPath, sampleRecords()))

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Symbol,Date,Open,High,Low,Close,Volume,OI", lines[0])
	assert.Equal(t, "NIFTY50,2014-01-01,6301.25,6358.30,6211.30,6323.80,280122,0", lines[1])
	assert.Equal(t, "INDIAVIX,2014-01-01,15.67,16.23,15.20,15.87,0,0", lines[2])
}

func TestCSVWriter_EmptyRecordsIsNoOp(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(config.NewPaths(dir))
	outPath := filepath.Join(dir, "NSE-Indices-2014-01-01.csv")

	require.NoError(t, writer.WriteRecords(outPath, nil))
	assert.NoFileExists(t, outPath)

	require.NoError(t, writer.WriteRecords(outPath, []domain.Record{}))
	assert.NoFileExists(t, outPath)
}

func TestCSVWriter_EmptyDoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(config.NewPaths(dir))
	outPath := filepath.Join(dir, "existing.csv")
	require.NoError(t, os.WriteFile(outPath, []byte("keep me"), 0644))

	require.NoError(t, writer.WriteRecords(outPath, nil))

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(content))
}

func TestCSVWriter_RelativePathResolvesToReports(t *testing.T) {
	dir := t.TempDir()
	paths := config.NewPaths(dir)
	writer := NewCSVWriter(paths)

	require.NoError(t, writer.WriteRecords("out.csv", sampleRecords()))
	assert.FileExists(t, paths.GetReportPath("out.csv"))
}

func TestCSVWriter_Idempotent(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(config.NewPaths(dir))
	outPath := filepath.Join(dir, "out.csv")

	require.NoError(t, writer.WriteRecords(outPath, sampleRecords()))
	first, err := os.ReadFile(outPath)
	require.NoError(t, err)

	require.NoError(t, writer.WriteRecords(outPath, sampleRecords()))
	second, err := os.ReadFile(outPath)
	require.NoError(t, err)

	assert.Equal(t, first, second, "re-running the writer yields byte-identical output")
}
