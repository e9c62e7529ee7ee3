package torvik

import (
	"context"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

// MinRequestInterval between browser fetches to stay under the site's
// rate limiting.
const MinRequestInterval = 2 * time.Second

// Browser fetches pages through headless Chrome for the cases where the
// plain HTTP client gets served the bot challenge.
type Browser struct {
	lastRequest time.Time
	interval    time.Duration

	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewBrowser creates a headless browser fetcher.
func NewBrowser() (*Browser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(UserAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Browser{
		interval: MinRequestInterval,
		allocCtx: allocCtx,
		cancel:   cancel,
	}, nil
}

// Close releases the browser allocator.
func (b *Browser) Close() {
	if b.cancel != nil {
		b.cancel()
	}
}

// FetchText navigates to a URL and returns the rendered body text. For the
// JSON feed this is the raw payload; for the rankings page it is unused in
// favor of FetchHTML.
func (b *Browser) FetchText(ctx context.Context, url string) (string, error) {
	return b.fetch(ctx, url, false)
}

// FetchHTML navigates to a URL and returns the rendered document markup.
func (b *Browser) FetchHTML(ctx context.Context, url string) (string, error) {
	return b.fetch(ctx, url, true)
}

func (b *Browser) fetch(ctx context.Context, url string, wantHTML bool) (string, error) {
	// Enforce rate limiting across consecutive fetches.
	if !b.lastRequest.IsZero() {
		elapsed := time.Since(b.lastRequest)
		if elapsed < b.interval {
			wait := b.interval - elapsed
			log.Printf("[torvik] rate limiting: waiting %v before next request", wait)
			time.Sleep(wait)
		}
	}
	defer func() { b.lastRequest = time.Now() }()

	browserCtx, cancelBrowser := chromedp.NewContext(b.allocCtx)
	defer cancelBrowser()

	runCtx, cancel := context.WithTimeout(browserCtx, 30*time.Second)
	defer cancel()

	var content string
	actions := []chromedp.Action{chromedp.Navigate(url)}
	if wantHTML {
		actions = append(actions, chromedp.OuterHTML("html", &content, chromedp.ByQuery))
	} else {
		actions = append(actions, chromedp.Text("body", &content, chromedp.ByQuery))
	}

	if err := chromedp.Run(runCtx, actions...); err != nil {
		return "", err
	}

	return content, nil
}
