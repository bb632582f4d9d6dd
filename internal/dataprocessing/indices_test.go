package dataprocessing

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nsecli/pkg/contracts/domain"
)

const indicesBhavFixture = `Index Name,Index Date,Open Index Value,High Index Value,Low Index Value,Closing Index Value,Points Change,Change(%),Volume,Turnover (Rs. Cr.),P/E,P/B,Div Yield
Nifty 50,01-01-2014,6301.25,6358.30,6211.30,6323.80,22.50,0.36,135000,2801.22,18.50,3.20,1.40
nifty 50,01-01-2014,-,-,-,-,0.00,0.00,0,1234.5,0,0,0
CNX Bank,01-01-2014,0,0,0,11385.95,45.10,0.40,98000,950.75,12.10,2.10,1.10
`

const vixFixture = `Date,Open,High,Low,Close,Prev. Close,Change,%Change
01-Jan-2014,15.67,16.23,15.20,15.87,15.50,0.37,2.39
`

func writeIndicesFixtures(t *testing.T) (bhav, vix string) {
	t.Helper()
	dir := t.TempDir()
	bhav = filepath.Join(dir, "ind_close_all_01012014.csv")
	vix = filepath.Join(dir, "hist_india_vix_01-Jan-2014_01-Jan-2014.csv")
	require.NoError(t, os.WriteFile(bhav, []byte(indicesBhavFixture), 0644))
	require.NoError(t, os.WriteFile(vix, []byte(vixFixture), 0644))
	return bhav, vix
}

func TestNormalize_Indices(t *testing.T) {
	bhav, vix := writeIndicesFixtures(t)
	date := time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)

	records, err := Normalize(context.Background(), date, domain.CategoryIndices,
		Sources{Primary: bhav, Secondary: vix})
	require.NoError(t, err)
	require.Len(t, records, 4, "header row dropped, three index rows plus the vix row")

	byNumber := records[0]
	assert.Equal(t, "NIFTY50", byNumber.Symbol, "symbol upper-cased with spaces stripped")
	assert.Equal(t, "2014-01-01", byNumber.Date)
	assert.Equal(t, "6301.25", byNumber.Open)
	assert.Equal(t, "280122", byNumber.Volume, "turnover in crore converted to lakh")
	assert.Equal(t, "0", byNumber.OI, "indices have no open interest")

	placeholder := records[1]
	assert.Equal(t, "NIFTY50", placeholder.Symbol)
	assert.Equal(t, "123450", placeholder.Volume)
	assert.Equal(t, "0.00", placeholder.Open)
	assert.Equal(t, "0.00", placeholder.High)
	assert.Equal(t, "0.00", placeholder.Low)
	assert.Equal(t, "0.00", placeholder.Close)

	zeroRange := records[2]
	assert.Equal(t, "CNXBANK", zeroRange.Symbol)
	assert.Equal(t, "11385.95", zeroRange.Open, "zero range filled from close")
	assert.Equal(t, "11385.95", zeroRange.High)
	assert.Equal(t, "11385.95", zeroRange.Low)
	assert.Equal(t, "11385.95", zeroRange.Close)

	vixRecord := records[3]
	assert.Equal(t, "INDIAVIX", vixRecord.Symbol)
	assert.Equal(t, "2014-01-01", vixRecord.Date)
	assert.Equal(t, "15.87", vixRecord.Close)
	assert.Equal(t, "0", vixRecord.Volume, "vix volume forced to zero")
	assert.Equal(t, "0", vixRecord.OI)
}

func TestNormalize_Indices_PrimaryMissing(t *testing.T) {
	_, vix := writeIndicesFixtures(t)
	date := time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)

	records, err := Normalize(context.Background(), date, domain.CategoryIndices,
		Sources{Primary: filepath.Join(t.TempDir(), "absent.csv"), Secondary: vix})
	require.NoError(t, err, "indices proceed when at least the secondary succeeds")
	require.Len(t, records, 1)
	assert.Equal(t, "INDIAVIX", records[0].Symbol)
}

func TestNormalize_Indices_AllMissing(t *testing.T) {
	dir := t.TempDir()
	date := time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := Normalize(context.Background(), date, domain.CategoryIndices,
		Sources{
			Primary:   filepath.Join(dir, "absent.csv"),
			Secondary: filepath.Join(dir, "also_absent.csv"),
		})
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestNormalize_Indices_NoSecondaryAfterCutover(t *testing.T) {
	bhav, _ := writeIndicesFixtures(t)
	date := time.Date(2014, 5, 28, 0, 0, 0, 0, time.UTC)

	records, err := Normalize(context.Background(), date, domain.CategoryIndices,
		Sources{Primary: bhav})
	require.NoError(t, err)
	for _, rec := range records {
		assert.NotEqual(t, "INDIAVIX", rec.Symbol)
	}
}
