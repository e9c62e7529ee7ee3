package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine(t *testing.T, aliases map[string]string, records ...TeamRecord) *Engine {
	t.Helper()
	catalog, err := NewCatalogFromRecords(records, DefaultCatalogConfig())
	require.NoError(t, err)
	return NewEngine(catalog, aliases)
}

func TestAnalyzeEndToEnd(t *testing.T) {
	engine := testEngine(t, nil,
		TeamRecord{Name: "Oregon", Rating: 0.8},
		TeamRecord{Name: "Wisconsin", Rating: 0.3},
	)

	snapshot := engine.Analyze([]GameRecord{gameWithPrice("Oregon", "Wisconsin", intPtr(-150))})
	require.Len(t, snapshot.Results, 1)

	result := snapshot.Results[0]
	assert.Equal(t, "Wisconsin @ Oregon", result.Matchup)
	assert.Equal(t, -150, result.Price)
	assert.InDelta(t, 0.6, result.MarketProb, 1e-9)
	assert.InDelta(t, 0.9032, result.ModelProb, 0.0001)
	assert.InDelta(t, 30.32, result.EdgePercent, 0.01)
	assert.True(t, result.HomeResolved)
	assert.True(t, result.AwayResolved)
	assert.Equal(t, 0, snapshot.Unresolved)
	assert.Equal(t, 0, snapshot.QuotesDropped)
}

func TestAnalyzeUnresolvedTeamDefaultsToNeutral(t *testing.T) {
	engine := testEngine(t, nil, TeamRecord{Name: "Oregon", Rating: 0.8})

	snapshot := engine.Analyze([]GameRecord{gameWithPrice("Oregon", "Fictional University", intPtr(-150))})
	require.Len(t, snapshot.Results, 1)

	result := snapshot.Results[0]
	assert.True(t, result.HomeResolved)
	assert.False(t, result.AwayResolved)
	assert.Equal(t, 1, snapshot.Unresolved)
	// Log5 against the neutral 0.5 default collapses to the home rating.
	assert.InDelta(t, 0.8, result.ModelProb, 1e-9)
}

func TestAnalyzeBothTeamsUnresolvedStillReported(t *testing.T) {
	engine := testEngine(t, nil, TeamRecord{Name: "Oregon", Rating: 0.8})

	snapshot := engine.Analyze([]GameRecord{gameWithPrice("Nowhere A", "Nowhere B", intPtr(110))})
	require.Len(t, snapshot.Results, 1)

	result := snapshot.Results[0]
	assert.Equal(t, 0.5, result.ModelProb)
	assert.False(t, result.HomeResolved)
	assert.False(t, result.AwayResolved)
	assert.Equal(t, 2, snapshot.Unresolved)
}

func TestAnalyzeSkipsGamesWithoutBookmakers(t *testing.T) {
	engine := testEngine(t, nil, TeamRecord{Name: "Oregon", Rating: 0.8})

	snapshot := engine.Analyze([]GameRecord{
		{HomeTeam: "Oregon", AwayTeam: "Wisconsin"}, // nobody quoted it
		gameWithPrice("Oregon", "Wisconsin", intPtr(-150)),
	})

	assert.Len(t, snapshot.Results, 1)
	assert.Equal(t, 0, snapshot.QuotesDropped)
}

func TestAnalyzeDropsBadQuotesAndContinues(t *testing.T) {
	engine := testEngine(t, nil,
		TeamRecord{Name: "Oregon", Rating: 0.8},
		TeamRecord{Name: "Wisconsin", Rating: 0.3},
	)

	snapshot := engine.Analyze([]GameRecord{
		gameWithPrice("Oregon", "Wisconsin", nil),       // missing price
		gameWithPrice("Wisconsin", "Oregon", intPtr(0)), // invalid price
		gameWithPrice("Oregon", "Wisconsin", intPtr(-150)),
	})

	require.Len(t, snapshot.Results, 1)
	assert.Equal(t, 2, snapshot.QuotesDropped)
	assert.Equal(t, "Wisconsin @ Oregon", snapshot.Results[0].Matchup)
}

func TestAnalyzeWithAliasTable(t *testing.T) {
	engine := testEngine(t,
		map[string]string{"UConn Huskies": "Connecticut"},
		TeamRecord{Name: "Connecticut", Rating: 0.91},
		TeamRecord{Name: "Villanova", Rating: 0.55},
	)

	snapshot := engine.Analyze([]GameRecord{gameWithPrice("UConn Huskies", "Villanova Wildcats", intPtr(-400))})
	require.Len(t, snapshot.Results, 1)
	assert.True(t, snapshot.Results[0].HomeResolved)
	assert.True(t, snapshot.Results[0].AwayResolved)
}

func TestAnalyzeEmptyCatalogDegradesToMarketOnly(t *testing.T) {
	catalog, err := NewCatalog(nil, DefaultCatalogConfig())
	require.ErrorIs(t, err, ErrCatalogEmpty)

	engine := NewEngine(catalog, nil)
	snapshot := engine.Analyze([]GameRecord{gameWithPrice("Oregon", "Wisconsin", intPtr(-150))})

	require.Len(t, snapshot.Results, 1)
	result := snapshot.Results[0]
	assert.Equal(t, 0.5, result.ModelProb)
	assert.InDelta(t, 0.6, result.MarketProb, 1e-9)
	assert.Equal(t, 2, snapshot.Unresolved)
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	engine := testEngine(t, nil,
		TeamRecord{Name: "Oregon", Rating: 0.8},
		TeamRecord{Name: "Wisconsin", Rating: 0.3},
		TeamRecord{Name: "Michigan", Rating: 0.75},
	)

	games := []GameRecord{
		gameWithPrice("Oregon", "Wisconsin", intPtr(-150)),
		gameWithPrice("Michigan", "Oregon", intPtr(120)),
	}

	first := engine.Analyze(games)
	second := engine.Analyze(games)
	assert.Equal(t, first.Results, second.Results)
}
