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

const futuresBhavFixture = `INSTRUMENT,SYMBOL,EXPIRY_DT,STRIKE_PR,OPTION_TYP,OPEN,HIGH,LOW,CLOSE,SETTLE_PR,CONTRACTS,VAL_INLAKH,OPEN_INT,CHG_IN_OI,TIMESTAMP
FUTIDX,NIFTY,30-Jan-2014,0,XX,6300.00,6350.00,6250.00,6320.00,6325.45,120000,380000.00,15000000,250000,01-Jan-2014
FUTIDX,NIFTY,27-Feb-2014,0,XX,6310.00,6360.00,6260.00,6330.00,6335.10,8000,25300.00,1200000,40000,01-Jan-2014
FUTIDX,NIFTY,27-Mar-2014,0,XX,6320.00,6370.00,6270.00,6340.00,6345.00,900,2850.00,90000,1000,01-Jan-2014
FUTSTK,ACC,30-Jan-2014,0,XX,1100.00,1120.00,1090.00,1110.00,1112.35,5000,55600.00,800000,10000,01-Jan-2014
OPTIDX,NIFTY,30-Jan-2014,6300,CE,80.00,95.00,75.00,90.00,91.20,50000,28500.00,4000000,120000,01-Jan-2014
`

func writeFuturesFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fo01JAN2014bhav.csv")
	require.NoError(t, os.WriteFile(path, []byte(futuresBhavFixture), 0644))
	return path
}

func TestNormalize_Futures(t *testing.T) {
	bhav := writeFuturesFixture(t)
	date := time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)

	records, err := Normalize(context.Background(), date, domain.CategoryFutures,
		Sources{Primary: bhav})
	require.NoError(t, err)
	require.Len(t, records, 4, "options excluded, header dropped")

	// Same symbol suffixes advance in input order and reset on change.
	assert.Equal(t, "NIFTY-I", records[0].Symbol)
	assert.Equal(t, "NIFTY-II", records[1].Symbol)
	assert.Equal(t, "NIFTY-III", records[2].Symbol)
	assert.Equal(t, "ACC-I", records[3].Symbol)

	near := records[0]
	assert.Equal(t, "6325.45", near.Close, "settlement price replaces last traded close")
	assert.Equal(t, "120000", near.Volume, "contracts traded used as volume")
	assert.Equal(t, "15000000", near.OI)
	assert.Equal(t, "2014-01-01", near.Date)
}

func TestNormalize_Futures_PrimaryMissing(t *testing.T) {
	date := time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := Normalize(context.Background(), date, domain.CategoryFutures,
		Sources{Primary: filepath.Join(t.TempDir(), "absent.csv")})
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestMergeFutures_SuffixReset(t *testing.T) {
	primary := []RawRecord{
		{"Instrument": "FUTSTK", "Symbol": "AAA", "Contracts": "1", "Settlement_Price": "10", "Close": "9"},
		{"Instrument": "FUTSTK", "Symbol": "AAA", "Contracts": "2", "Settlement_Price": "11", "Close": "10"},
		{"Instrument": "FUTSTK", "Symbol": "BBB", "Contracts": "3", "Settlement_Price": "12", "Close": "11"},
		{"Instrument": "FUTSTK", "Symbol": "AAA", "Contracts": "4", "Settlement_Price": "13", "Close": "12"},
	}

	out := mergeFutures(primary)
	require.Len(t, out, 4)
	assert.Equal(t, "AAA-I", out[0]["Symbol"])
	assert.Equal(t, "AAA-II", out[1]["Symbol"])
	assert.Equal(t, "BBB-I", out[2]["Symbol"])
	assert.Equal(t, "AAA-I", out[3]["Symbol"], "counter resets whenever the symbol changes")
}

func TestMergeFutures_OverwritesCloseAndVolume(t *testing.T) {
	primary := []RawRecord{
		{"Instrument": "FUTIDX", "Symbol": "X", "Contracts": "42", "Settlement_Price": "100.5", "Close": "99.0", "Volume": "ignored"},
	}

	out := mergeFutures(primary)
	require.Len(t, out, 1)
	assert.Equal(t, "100.5", out[0]["Close"])
	assert.Equal(t, "42", out[0]["Volume"])
}
