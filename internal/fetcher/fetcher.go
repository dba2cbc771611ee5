package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/DataHenHQ/useragent"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/jaehyuk-choi/coupang-hotdeal-bot/internal/util"
	apperrors "github.com/jaehyuk-choi/coupang-hotdeal-bot/pkg/errors"
)

const (
	// campaignURL is the rocket wow hot-deals component; listing pages are
	// selected with the page query parameter.
	campaignURL = "https://www.coupang.com/np/campaigns/82/components/194176"

	pageTimeout    = 45 * time.Second
	maxPageRetries = 2
)

// Browser drives one headless Chrome session for the whole run. Pages are
// fetched one at a time in ascending order; the session is released by
// Close on every exit path.
type Browser struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	waitSelector  string
}

// New starts the browser session. A browser that cannot launch is an
// unrecoverable fetch error. waitSelector marks the element whose presence
// means the listing content has rendered.
func New(headless bool, waitSelector string) (*Browser, error) {
	ua, err := useragent.Desktop()
	if err != nil {
		return nil, fmt.Errorf("could not generate random UA: %w", err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(ua),
		chromedp.WindowSize(1920, 1080),
		chromedp.Flag("headless", headless),
		chromedp.Flag("lang", "ko-KR"),

		// Evasion flags; the campaign endpoint blocks obvious automation.
		chromedp.Flag("enable-automation", false),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),

		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),

		// Required in container environments.
		chromedp.Flag("no-sandbox", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Launch eagerly so a missing Chrome binary fails here, not on page one.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, apperrors.NewFetch("browser", "failed to start browser session", err)
	}

	return &Browser{
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		waitSelector:  waitSelector,
	}, nil
}

// FetchPage loads the given listing page and returns its rendered HTML.
// Each attempt gets its own timeout; failures are retried with backoff and
// the final error is a fetch error the caller may choose to skip.
func (b *Browser) FetchPage(ctx context.Context, page int) (string, error) {
	url := pageURL(page)
	log.Debug().Str("url", url).Msg("Fetching listing page")

	var html string
	err := util.RetryWithBackoff(ctx, maxPageRetries, func(attempt int) error {
		if attempt > 0 {
			log.Warn().Int("page", page).Int("attempt", attempt+1).Msg("Retrying page fetch")
		}
		tctx, cancel := context.WithTimeout(b.browserCtx, pageTimeout)
		defer cancel()

		return chromedp.Run(tctx,
			chromedp.Navigate(url),
			chromedp.WaitReady(b.waitSelector, chromedp.ByQuery),
			chromedp.OuterHTML("html", &html, chromedp.ByQuery),
		)
	})
	if err != nil {
		return "", apperrors.NewFetch(url, fmt.Sprintf("page %d failed to load", page), err)
	}
	return html, nil
}

// Close releases the browser session and its allocator.
func (b *Browser) Close() {
	b.browserCancel()
	b.allocCancel()
}

func pageURL(page int) string {
	return fmt.Sprintf("%s?page=%d", campaignURL, page)
}
