package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jaehyuk-choi/coupang-hotdeal-bot/internal/config"
	"github.com/jaehyuk-choi/coupang-hotdeal-bot/internal/models"
	apperrors "github.com/jaehyuk-choi/coupang-hotdeal-bot/pkg/errors"
)

// Stage tracks where a run is in its lifecycle. Stages advance strictly
// forward; a run never re-enters a prior stage.
type Stage int

const (
	StageInit Stage = iota
	StageFetching
	StageExtracting
	StageFiltering
	StagePersisting
	StageNotifying
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageInit:
		return "init"
	case StageFetching:
		return "fetching"
	case StageExtracting:
		return "extracting"
	case StageFiltering:
		return "filtering"
	case StagePersisting:
		return "persisting"
	case StageNotifying:
		return "notifying"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Summary counts what one run did; it is logged at the end and drives no
// control flow.
type Summary struct {
	PagesFetched int
	PagesSkipped int
	Extracted    int
	Qualified    int
	Sent         int
	SendFailures int
}

// Runner executes one crawl-persist-notify run to completion.
type Runner struct {
	fetcher   PageFetcher
	extractor Extractor
	snapshots SnapshotStore
	notified  NotifiedStore
	sender    Sender
	cfg       *config.Config

	stage Stage
	now   func() time.Time
}

func New(f PageFetcher, e Extractor, snapshots SnapshotStore, notified NotifiedStore, sender Sender, cfg *config.Config) *Runner {
	return &Runner{
		fetcher:   f,
		extractor: e,
		snapshots: snapshots,
		notified:  notified,
		sender:    sender,
		cfg:       cfg,
		stage:     StageInit,
		now:       time.Now,
	}
}

// Stage reports the stage the last call reached; Failed is terminal.
func (r *Runner) Stage() Stage {
	return r.stage
}

func (r *Runner) enter(s Stage) {
	r.stage = s
	log.Info().Str("stage", s.String()).Msg("Stage started")
}

func (r *Runner) fail(sum Summary, err error) (Summary, error) {
	wrapped := fmt.Errorf("stage %s: %w", r.stage, err)
	r.stage = StageFailed
	return sum, wrapped
}

// Run executes the full pipeline. Item-level failures (one bad listing, one
// failed send, one unreachable page) are skipped; browser-start and
// persistence failures abort with an error the caller maps to a non-zero
// exit.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var sum Summary
	now := r.now()

	r.enter(StageFetching)
	var pages []string
	for page := 1; page <= r.cfg.MaxPages; page++ {
		if page > 1 && r.cfg.PageDelay > 0 {
			select {
			case <-ctx.Done():
				return r.fail(sum, ctx.Err())
			case <-time.After(r.cfg.PageDelay):
			}
		}

		html, err := r.fetcher.FetchPage(ctx, page)
		if err != nil {
			if ctx.Err() != nil {
				return r.fail(sum, ctx.Err())
			}
			log.Warn().Err(err).Int("page", page).Msg("Skipping page after retries")
			sum.PagesSkipped++
			continue
		}
		sum.PagesFetched++
		pages = append(pages, html)
	}
	if sum.PagesFetched == 0 {
		return r.fail(sum, apperrors.NewFetch("campaign", "no listing page could be fetched", nil))
	}

	r.enter(StageExtracting)
	var deals []models.Deal
	for i, html := range pages {
		extracted, err := r.extractor.ExtractDeals(html, now)
		if err != nil {
			// A page that cannot be parsed at all is skipped like a page
			// that could not be fetched.
			log.Warn().Err(err).Int("page", i+1).Msg("Skipping unparseable page")
			continue
		}
		deals = append(deals, extracted...)
	}
	sum.Extracted = len(deals)
	log.Info().Int("count", sum.Extracted).Msg("Extracted deals")

	r.enter(StageFiltering)
	notified, err := r.notified.Load()
	if err != nil {
		return r.fail(sum, err)
	}
	qualifying := FilterDeals(deals, r.cfg.MinDiscount, notified)
	sum.Qualified = len(qualifying)
	log.Info().Int("count", sum.Qualified).Int("min_discount", r.cfg.MinDiscount).
		Int("already_notified", notified.Len()).Msg("Filtered deals")

	r.enter(StagePersisting)
	path, err := r.snapshots.Write(deals, now)
	if err != nil {
		return r.fail(sum, err)
	}
	log.Info().Str("path", path).Msg("Snapshot written")

	r.enter(StageNotifying)
	if err := r.notify(ctx, qualifying, notified, &sum); err != nil {
		return r.fail(sum, err)
	}

	r.stage = StageDone
	log.Info().
		Int("pages_fetched", sum.PagesFetched).
		Int("pages_skipped", sum.PagesSkipped).
		Int("extracted", sum.Extracted).
		Int("qualified", sum.Qualified).
		Int("sent", sum.Sent).
		Int("send_failures", sum.SendFailures).
		Msg("Run complete")
	return sum, nil
}

// RunNotifyOnly re-runs the notification half against today's persisted
// snapshot, without crawling. Useful after a run whose sends failed: the
// unsent identifiers were never marked notified, so they are selected again.
func (r *Runner) RunNotifyOnly(ctx context.Context) (Summary, error) {
	var sum Summary
	now := r.now()

	r.enter(StageFiltering)
	deals, err := r.snapshots.Load(now)
	if err != nil {
		return r.fail(sum, err)
	}
	sum.Extracted = len(deals)

	notified, err := r.notified.Load()
	if err != nil {
		return r.fail(sum, err)
	}
	qualifying := FilterDeals(deals, r.cfg.MinDiscount, notified)
	sum.Qualified = len(qualifying)

	r.enter(StageNotifying)
	if err := r.notify(ctx, qualifying, notified, &sum); err != nil {
		return r.fail(sum, err)
	}

	r.stage = StageDone
	log.Info().Int("qualified", sum.Qualified).Int("sent", sum.Sent).
		Int("send_failures", sum.SendFailures).Msg("Notify-only run complete")
	return sum, nil
}

// notify sends the qualifying deals (highest discount first, capped at
// MaxNotify), marks only the successful ones as notified, and persists the
// set. A failed send is skipped so one bad deal never blocks the rest; its
// identifier stays unmarked and is retried on the next run.
func (r *Runner) notify(ctx context.Context, qualifying []models.Deal, notified models.NotifiedSet, sum *Summary) error {
	toSend := make([]models.Deal, len(qualifying))
	copy(toSend, qualifying)
	sort.SliceStable(toSend, func(i, j int) bool {
		return toSend[i].DiscountPercent > toSend[j].DiscountPercent
	})
	if r.cfg.MaxNotify > 0 && len(toSend) > r.cfg.MaxNotify {
		toSend = toSend[:r.cfg.MaxNotify]
	}

	if len(toSend) == 0 {
		log.Info().Msg("No new deals to notify")
	} else {
		if err := r.sender.SendHeader(ctx, len(toSend)); err != nil {
			log.Warn().Err(err).Msg("Header send failed")
		}

		for _, deal := range toSend {
			if err := r.sender.Send(ctx, deal); err != nil {
				if ctx.Err() != nil {
					break
				}
				log.Warn().Err(err).Str("title", deal.Title).Msg("Send failed, will retry next run")
				sum.SendFailures++
				continue
			}
			notified.Add(deal.ID())
			sum.Sent++
		}

		if sum.Sent > 0 {
			if err := r.sender.SendFooter(ctx); err != nil {
				log.Warn().Err(err).Msg("Footer send failed")
			}
		}
	}

	// The set is rewritten even when nothing was sent so its on-disk form
	// stays consistent with what this run observed.
	return r.notified.Save(notified)
}
