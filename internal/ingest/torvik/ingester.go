package torvik

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/analysis"
)

// Ingester fetches projection rows with fallback:
// plain HTTP JSON (fast) → headless-browser JSON → rankings-page HTML.
type Ingester struct {
	client  *Client
	browser *Browser
	year    int
}

// NewIngester creates a projection ingester for one season. The headless
// browser is started lazily on the first blocked fetch.
func NewIngester(client *Client, year int) *Ingester {
	return &Ingester{
		client: client,
		year:   year,
	}
}

// Close releases the browser if one was started.
func (in *Ingester) Close() {
	if in.browser != nil {
		in.browser.Close()
	}
}

// FetchProjections returns the season's raw projection rows, trying each
// source in order. All sources failing is a cycle-level error; the caller
// aborts the refresh rather than publishing a partial result set.
func (in *Ingester) FetchProjections(ctx context.Context) ([]analysis.RawRow, error) {
	rows, err := in.client.FetchSeasonJSON(ctx, in.year)
	if err == nil {
		return rows, nil
	}
	log.Printf("[torvik] ⚠️  plain fetch failed: %v (falling back to browser)", err)

	if browserErr := in.ensureBrowser(); browserErr != nil {
		return nil, fmt.Errorf("projection fetch failed and browser unavailable: %w", err)
	}

	// Same JSON feed, but rendered through a real browser fingerprint.
	body, browserErr := in.browser.FetchText(ctx, in.client.SeasonJSONURL(in.year))
	if browserErr == nil {
		rows, parseErr := ParseRowsJSON([]byte(body))
		if parseErr == nil {
			log.Printf("[torvik] ✓ fetched %d projection rows via browser", len(rows))
			return rows, nil
		}
		if !errors.Is(parseErr, ErrBlocked) {
			log.Printf("[torvik] ⚠️  browser JSON parse failed: %v", parseErr)
		}
	} else {
		log.Printf("[torvik] ⚠️  browser fetch failed: %v", browserErr)
	}

	// Last resort: scrape the rankings table.
	html, browserErr := in.browser.FetchHTML(ctx, in.client.RankingsURL(in.year))
	if browserErr != nil {
		return nil, fmt.Errorf("all projection sources failed: %w", browserErr)
	}

	rows, parseErr := ParseRatingsHTML(html)
	if parseErr != nil {
		return nil, parseErr
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("rankings page yielded no rows")
	}

	return rows, nil
}

func (in *Ingester) ensureBrowser() error {
	if in.browser != nil {
		return nil
	}
	browser, err := NewBrowser()
	if err != nil {
		return err
	}
	in.browser = browser
	return nil
}
