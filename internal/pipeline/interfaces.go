package pipeline

import (
	"context"
	"time"

	"github.com/jaehyuk-choi/coupang-hotdeal-bot/internal/models"
)

// PageFetcher abstracts the browser session so the pipeline tests without
// launching Chrome.
type PageFetcher interface {
	FetchPage(ctx context.Context, page int) (string, error)
}

// Extractor abstracts listing extraction from one page's HTML.
type Extractor interface {
	ExtractDeals(pageHTML string, now time.Time) ([]models.Deal, error)
}

// SnapshotStore abstracts the dated CSV history.
type SnapshotStore interface {
	Write(deals []models.Deal, date time.Time) (string, error)
	Load(date time.Time) ([]models.Deal, error)
}

// NotifiedStore abstracts the persisted already-notified identifier set.
type NotifiedStore interface {
	Load() (models.NotifiedSet, error)
	Save(set models.NotifiedSet) error
}

// Sender abstracts the notification channel.
type Sender interface {
	Send(ctx context.Context, deal models.Deal) error
	SendHeader(ctx context.Context, n int) error
	SendFooter(ctx context.Context) error
}
