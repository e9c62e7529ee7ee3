package oddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/analysis"
)

const (
	BaseURL = "https://api.the-odds-api.com/v4"

	SportCollegeBasketball = "basketball_ncaab"
)

// Client fetches game odds from the-odds-api v4.
type Client struct {
	baseURL    string
	apiKey     string
	regions    string
	markets    string
	httpClient *http.Client
}

// New creates an odds API client. An empty baseURL selects the production
// endpoint; regions and markets default to the US spreads feed.
func New(baseURL, apiKey, regions, markets string) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	if regions == "" {
		regions = "us"
	}
	if markets == "" {
		markets = "spreads"
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		regions: regions,
		markets: markets,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// FetchOdds fetches the current odds board for a sport. The records come
// back in feed order, already in the engine's input shape.
func (c *Client) FetchOdds(ctx context.Context, sportKey string) ([]analysis.GameRecord, error) {
	endpoint := fmt.Sprintf("%s/sports/%s/odds", c.baseURL, sportKey)

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", c.regions)
	params.Set("markets", c.markets)
	params.Set("oddsFormat", "american")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building odds request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching odds: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("odds API returned %d: %s", resp.StatusCode, string(body))
	}

	// Quota headers are the only place the API reports remaining credits.
	if remaining := resp.Header.Get("X-Requests-Remaining"); remaining != "" {
		log.Printf("[oddsapi] requests remaining: %s", remaining)
	}

	var games []analysis.GameRecord
	if err := json.NewDecoder(resp.Body).Decode(&games); err != nil {
		return nil, fmt.Errorf("decoding odds response: %w", err)
	}

	log.Printf("[oddsapi] ✓ fetched %d games for %s", len(games), sportKey)
	return games, nil
}
