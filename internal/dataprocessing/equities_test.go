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

const equitiesBhavFixture = `SYMBOL,SERIES,OPEN,HIGH,LOW,CLOSE,LAST,PREVCLOSE,TOTTRDQTY,TOTTRDVAL,TIMESTAMP,TOTALTRADES,ISIN
FOO,EQ,100.00,110.00,95.00,105.00,105.00,99.00,5000,525000.00,01-Jan-2014,320,INE000A01001
BAR,BE,50.00,55.00,48.00,52.00,52.00,49.00,1000,52000.00,01-Jan-2014,80,INE000B01002
NOMATCH,EQ,10.00,11.00,9.00,10.50,10.50,10.00,700,7350.00,01-Jan-2014,42,INE000C01003
SKIPME,IL,20.00,21.00,19.00,20.50,20.50,20.00,100,2050.00,01-Jan-2014,5,INE000D01004
`

const deliveryFixture = `20,1,FOO,EQ,5000,2500,50.00
20,2,BAR,BE,1000,1000,100.00
`

func writeEquitiesFixtures(t *testing.T) (bhav, delivery string) {
	t.Helper()
	dir := t.TempDir()
	bhav = filepath.Join(dir, "cm01JAN2014bhav.csv")
	delivery = filepath.Join(dir, "MTO_01012014.DAT")
	require.NoError(t, os.WriteFile(bhav, []byte(equitiesBhavFixture), 0644))
	require.NoError(t, os.WriteFile(delivery, []byte(deliveryFixture), 0644))
	return bhav, delivery
}

func normalizeEquities(t *testing.T, src Sources) []domain.Record {
	t.Helper()
	date := time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)
	records, err := Normalize(context.Background(), date, domain.CategoryEquities, src)
	require.NoError(t, err)
	return records
}

func TestNormalize_Equities(t *testing.T) {
	bhav, delivery := writeEquitiesFixtures(t)
	records := normalizeEquities(t, Sources{Primary: bhav, Secondary: delivery})

	require.Len(t, records, 3, "only EQ and BE series are emitted")

	eq := records[0]
	assert.Equal(t, "FOO", eq.Symbol)
	assert.Equal(t, "2014-01-01", eq.Date)
	assert.Equal(t, "105.00", eq.Close)
	assert.Equal(t, "2500", eq.OI, "EQ open interest from delivery lookup")

	be := records[1]
	assert.Equal(t, "BAR", be.Symbol)
	assert.Equal(t, "1000", be.OI, "BE open interest equals traded volume")
	assert.Equal(t, be.Volume, be.OI)

	noMatch := records[2]
	assert.Equal(t, "NOMATCH", noMatch.Symbol)
	assert.Equal(t, "0", noMatch.OI, "missing delivery pair coerced to zero")
}

func TestNormalize_Equities_DeliveryMissing(t *testing.T) {
	bhav, _ := writeEquitiesFixtures(t)
	records := normalizeEquities(t, Sources{
		Primary:   bhav,
		Secondary: filepath.Join(t.TempDir(), "absent.DAT"),
	})

	require.Len(t, records, 3)
	for _, rec := range records {
		if rec.Symbol == "BAR" {
			assert.Equal(t, "1000", rec.OI, "BE rule does not need the delivery file")
			continue
		}
		assert.Equal(t, "0", rec.OI, "EQ defaults to zero without delivery data")
	}
}

func TestNormalize_Equities_PrimaryMissing(t *testing.T) {
	_, delivery := writeEquitiesFixtures(t)
	date := time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := Normalize(context.Background(), date, domain.CategoryEquities,
		Sources{
			Primary:   filepath.Join(t.TempDir(), "absent.csv"),
			Secondary: delivery,
		})
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestMergeEquities_IndexedLookup(t *testing.T) {
	primary := []RawRecord{
		{"Symbol": "FOO", "Series": "EQ", "Volume": "10"},
	}
	secondary := []RawRecord{
		{"Symbol": "FOO", "Series": "EQ", "OI": "500"},
		{"Symbol": "FOO", "Series": "BE", "OI": "999"},
	}

	out := mergeEquities(primary, secondary, true)
	require.Len(t, out, 1)
	assert.Equal(t, "500", out[0]["OI"], "lookup is exact on the (Symbol, Series) pair")
}
