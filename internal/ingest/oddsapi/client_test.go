package oddsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOddsPayload = `[
  {
    "id": "abc123",
    "sport_key": "basketball_ncaab",
    "commence_time": "2026-01-15T00:00:00Z",
    "home_team": "Oregon Ducks",
    "away_team": "Wisconsin Badgers",
    "bookmakers": [
      {
        "key": "draftkings",
        "title": "DraftKings",
        "markets": [
          {
            "key": "spreads",
            "outcomes": [
              {"name": "Oregon Ducks", "price": -150, "point": -4.5},
              {"name": "Wisconsin Badgers", "price": 130, "point": 4.5}
            ]
          }
        ]
      }
    ]
  },
  {
    "id": "def456",
    "sport_key": "basketball_ncaab",
    "commence_time": "2026-01-15T02:00:00Z",
    "home_team": "Gonzaga Bulldogs",
    "away_team": "Saint Mary's Gaels",
    "bookmakers": []
  }
]`

func TestFetchOdds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sports/basketball_ncaab/odds", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		assert.Equal(t, "american", r.URL.Query().Get("oddsFormat"))

		w.Header().Set("X-Requests-Remaining", "499")
		w.Write([]byte(sampleOddsPayload))
	}))
	defer server.Close()

	client := New(server.URL, "test-key", "", "")
	games, err := client.FetchOdds(context.Background(), SportCollegeBasketball)
	require.NoError(t, err)
	require.Len(t, games, 2)

	assert.Equal(t, "Oregon Ducks", games[0].HomeTeam)
	assert.Equal(t, "Wisconsin Badgers", games[0].AwayTeam)
	require.Len(t, games[0].Bookmakers, 1)
	require.NotNil(t, games[0].Bookmakers[0].Markets[0].Outcomes[0].Price)
	assert.Equal(t, -150, *games[0].Bookmakers[0].Markets[0].Outcomes[0].Price)

	assert.Empty(t, games[1].Bookmakers)
}

func TestFetchOddsNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := New(server.URL, "bad-key", "", "")
	_, err := client.FetchOdds(context.Background(), SportCollegeBasketball)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
