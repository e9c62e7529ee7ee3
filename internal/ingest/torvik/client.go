package torvik

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/analysis"
)

const (
	BaseURL = "https://barttorvik.com"

	// UserAgent for plain HTTP requests; the site serves bot traffic an
	// HTML challenge page instead of the JSON feed.
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// ErrBlocked reports that the feed answered with an HTML page rather than
// JSON. Callers fall back to the headless-browser fetch.
var ErrBlocked = errors.New("projection feed returned HTML instead of JSON")

// Client fetches BartTorvik season projection data over plain HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a projection feed client. An empty baseURL selects the
// production site.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// SeasonJSONURL returns the feed URL for one season's data file.
func (c *Client) SeasonJSONURL(year int) string {
	return fmt.Sprintf("%s/%d_data.json", c.baseURL, year)
}

// RankingsURL returns the HTML rankings page for one season, used as the
// last-resort projection source.
func (c *Client) RankingsURL(year int) string {
	return fmt.Sprintf("%s/trank.php?year=%d", c.baseURL, year)
}

// FetchSeasonJSON fetches one season's projection rows. The rows are
// positional and heterogeneous; column interpretation is the catalog's job.
func (c *Client) FetchSeasonJSON(ctx context.Context, year int) ([]analysis.RawRow, error) {
	url := c.SeasonJSONURL(year)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building projection request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching projections: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading projection response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("projection feed returned %d", resp.StatusCode)
	}

	rows, err := ParseRowsJSON(body)
	if err != nil {
		return nil, err
	}

	log.Printf("[torvik] ✓ fetched %d projection rows for %d", len(rows), year)
	return rows, nil
}

// ParseRowsJSON decodes a projection payload into raw rows. A body that
// opens with an HTML tag signals the bot challenge, not a feed error.
func ParseRowsJSON(body []byte) ([]analysis.RawRow, error) {
	if len(body) > 0 && body[0] == '<' {
		return nil, ErrBlocked
	}

	var rows []analysis.RawRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decoding projection rows: %w", err)
	}
	return rows, nil
}
