package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jaehyuk-choi/coupang-hotdeal-bot/internal/models"
)

func sampleDeals(crawledAt time.Time) []models.Deal {
	return []models.Deal{
		{
			Title:           "상품 A",
			Price:           10000,
			OriginalPrice:   20000,
			DiscountPercent: 50,
			Link:            "https://www.coupang.com/vp/products/1",
			ImageURL:        "https://thumbnail.coupangcdn.com/1.jpg",
			Category:        "가전",
			CrawledAt:       crawledAt,
		},
		{
			Title:           "상품 B",
			Price:           15000,
			OriginalPrice:   25000,
			DiscountPercent: 40,
			Link:            "https://www.coupang.com/vp/products/2",
			Category:        "일반",
			CrawledAt:       crawledAt,
		},
	}
}

func TestSnapshotStore_WriteAndLoad(t *testing.T) {
	store := NewSnapshotStore(t.TempDir())
	date := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)
	deals := sampleDeals(date)

	path, err := store.Write(deals, date)
	if err != nil {
		t.Fatalf("Write() returned unexpected error: %v", err)
	}
	if filepath.Base(path) != "coupang_deals_20260826.csv" {
		t.Errorf("Unexpected snapshot filename: %s", filepath.Base(path))
	}

	loaded, err := store.Load(date)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if len(loaded) != len(deals) {
		t.Fatalf("Loaded %d deals, want %d", len(loaded), len(deals))
	}
	for i := range deals {
		if loaded[i].Title != deals[i].Title {
			t.Errorf("deal %d title = %q, want %q", i, loaded[i].Title, deals[i].Title)
		}
		if loaded[i].Price != deals[i].Price {
			t.Errorf("deal %d price = %d, want %d", i, loaded[i].Price, deals[i].Price)
		}
		if loaded[i].DiscountPercent != deals[i].DiscountPercent {
			t.Errorf("deal %d discount = %d, want %d", i, loaded[i].DiscountPercent, deals[i].DiscountPercent)
		}
		if loaded[i].Link != deals[i].Link {
			t.Errorf("deal %d link = %q, want %q", i, loaded[i].Link, deals[i].Link)
		}
		if !loaded[i].CrawledAt.Equal(deals[i].CrawledAt) {
			t.Errorf("deal %d crawled_at = %v, want %v", i, loaded[i].CrawledAt, deals[i].CrawledAt)
		}
	}
}

func TestSnapshotStore_DistinctDatesDistinctFiles(t *testing.T) {
	store := NewSnapshotStore(t.TempDir())
	day1 := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)

	if _, err := store.Write(sampleDeals(day1), day1); err != nil {
		t.Fatalf("Write(day1) returned unexpected error: %v", err)
	}
	if _, err := store.Write(sampleDeals(day2)[:1], day2); err != nil {
		t.Fatalf("Write(day2) returned unexpected error: %v", err)
	}

	// The earlier date's snapshot is untouched by the later run.
	loaded, err := store.Load(day1)
	if err != nil {
		t.Fatalf("Load(day1) returned unexpected error: %v", err)
	}
	if len(loaded) != 2 {
		t.Errorf("day1 snapshot has %d deals, want 2", len(loaded))
	}
}

func TestSnapshotStore_LoadMissing(t *testing.T) {
	store := NewSnapshotStore(t.TempDir())
	if _, err := store.Load(time.Now()); err == nil {
		t.Error("Load() should fail for a date with no snapshot")
	}
}

func TestSnapshotStore_WriteEmptyRun(t *testing.T) {
	store := NewSnapshotStore(t.TempDir())
	date := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)

	if _, err := store.Write([]models.Deal{}, date); err != nil {
		t.Fatalf("Write() of empty run returned unexpected error: %v", err)
	}
	loaded, err := store.Load(date)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("Loaded %d deals from empty snapshot, want 0", len(loaded))
	}
}
