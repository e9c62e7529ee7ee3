package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogAutoDiscovery(t *testing.T) {
	rows := []RawRow{
		{1.0, "Oregon", "P12", 88.5, 0.8123, 12.0},
		{2.0, "Wisconsin", "B10", 90.1, 0.3456, 9.0},
	}

	catalog, err := NewCatalog(rows, DefaultCatalogConfig())
	require.NoError(t, err)
	require.Equal(t, 2, catalog.Len())

	records := catalog.Records()
	assert.Equal(t, "Oregon", records[0].Name)
	assert.InDelta(t, 0.8123, records[0].Rating, 1e-9)
	assert.Equal(t, "Wisconsin", records[1].Name)
	assert.InDelta(t, 0.3456, records[1].Rating, 1e-9)
}

func TestNewCatalogFixedColumn(t *testing.T) {
	// Two cells in (0,1): the fixed column must win over the leftmost one.
	rows := []RawRow{
		{"Gonzaga", 0.25, "WCC", 0.9371},
	}

	config := DefaultCatalogConfig()
	config.RatingColumn = 3

	catalog, err := NewCatalog(rows, config)
	require.NoError(t, err)
	assert.InDelta(t, 0.9371, catalog.Records()[0].Rating, 1e-9)
}

func TestNewCatalogFixedColumnOutOfRangeFallsBackToScan(t *testing.T) {
	rows := []RawRow{
		{"Gonzaga", "WCC", 0.9371},
	}

	config := DefaultCatalogConfig()
	config.RatingColumn = 25 // a feed version that no longer has 26 columns

	catalog, err := NewCatalog(rows, config)
	require.NoError(t, err)
	assert.InDelta(t, 0.9371, catalog.Records()[0].Rating, 1e-9)
}

func TestNewCatalogFixedColumnBadValueFallsBackToScan(t *testing.T) {
	rows := []RawRow{
		{"Gonzaga", 88.4, "WCC", 0.9371},
	}

	config := DefaultCatalogConfig()
	config.RatingColumn = 1 // holds 88.4, not a rate

	catalog, err := NewCatalog(rows, config)
	require.NoError(t, err)
	assert.InDelta(t, 0.9371, catalog.Records()[0].Rating, 1e-9)
}

func TestNewCatalogNameIsFirstNonNumericCell(t *testing.T) {
	// Index 0 is a numeric rank; index 1 carries numeric text. The name is
	// the first cell with non-numeric text regardless of position.
	rows := []RawRow{
		{14.0, "350", "St. Mary's", 0.8810},
	}

	catalog, err := NewCatalog(rows, DefaultCatalogConfig())
	require.NoError(t, err)
	assert.Equal(t, "St. Mary's", catalog.Records()[0].Name)
}

func TestNewCatalogQuotedNumericCells(t *testing.T) {
	rows := []RawRow{
		{"1", "Houston", "88.1", "0.9644"},
	}

	catalog, err := NewCatalog(rows, DefaultCatalogConfig())
	require.NoError(t, err)
	rec := catalog.Records()[0]
	assert.Equal(t, "Houston", rec.Name)
	assert.InDelta(t, 0.9644, rec.Rating, 1e-9)
}

func TestNewCatalogRowWithoutRatingGetsDefault(t *testing.T) {
	rows := []RawRow{
		{"Oregon", 0.8},
		{"New Program", 12.0, 88.0}, // nothing in (0,1)
	}

	catalog, err := NewCatalog(rows, DefaultCatalogConfig())
	require.NoError(t, err)
	require.Equal(t, 2, catalog.Len())

	rec, err := catalog.FindByName("New Program")
	require.NoError(t, err)
	assert.Equal(t, 0.5, rec.Rating)
}

func TestNewCatalogDropsRowsWithoutName(t *testing.T) {
	rows := []RawRow{
		{1.0, 2.0, 0.5},
		{"Oregon", 0.8},
	}

	catalog, err := NewCatalog(rows, DefaultCatalogConfig())
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.Len())
}

func TestNewCatalogEmpty(t *testing.T) {
	catalog, err := NewCatalog(nil, DefaultCatalogConfig())
	require.ErrorIs(t, err, ErrCatalogEmpty)
	require.NotNil(t, catalog)
	assert.Equal(t, 0, catalog.Len())

	_, err = catalog.FindByName("Oregon")
	var notFound *TeamNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestNewCatalogFromRecords(t *testing.T) {
	records := []TeamRecord{
		{Name: "Oregon", Rating: 0.8},
		{Name: "Wisconsin", Rating: 0.3},
		{Name: "Bad Rating", Rating: 73.2}, // win-percentage-like field, not a rate
	}

	catalog, err := NewCatalogFromRecords(records, DefaultCatalogConfig())
	require.NoError(t, err)
	require.Equal(t, 3, catalog.Len())

	rec, err := catalog.FindByName("Bad Rating")
	require.NoError(t, err)
	assert.Equal(t, 0.5, rec.Rating)
}

func TestCatalogFindByName(t *testing.T) {
	catalog, err := NewCatalogFromRecords([]TeamRecord{
		{Name: "Connecticut", Rating: 0.91},
	}, DefaultCatalogConfig())
	require.NoError(t, err)

	rec, err := catalog.FindByName("Connecticut")
	require.NoError(t, err)
	assert.InDelta(t, 0.91, rec.Rating, 1e-9)
}
