package scraper

import (
	"testing"
	"time"
)

const fixturePage = `
<html><body>
<ul class="productList">
  <li class="baby-product">
    <a class="baby-product-link" href="/vp/products/100?itemId=1&utm_source=feed">
      <img class="product-image" src="//thumbnail.coupangcdn.com/100.jpg">
      <div class="name">무선 청소기</div>
      <strong class="price-value">89,000</strong>
      <del class="base-price">178,000원</del>
      <div class="category">가전</div>
    </a>
  </li>
  <li class="baby-product">
    <a class="baby-product-link" href="/vp/products/200">
      <div class="name">가격 없는 상품</div>
      <div class="category">테스트</div>
    </a>
  </li>
  <li class="baby-product">
    <a class="baby-product-link" href="https://www.coupang.com/vp/products/300">
      <div class="name">정가 상품</div>
      <strong class="price-value">15,000</strong>
    </a>
  </li>
</ul>
</body></html>`

func TestExtractDeals(t *testing.T) {
	e := New(DefaultSelectors())
	now := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)

	deals, err := e.ExtractDeals(fixturePage, now)
	if err != nil {
		t.Fatalf("ExtractDeals() returned unexpected error: %v", err)
	}
	// The listing without a price is skipped, not fatal.
	if len(deals) != 2 {
		t.Fatalf("Extracted %d deals, want 2", len(deals))
	}

	first := deals[0]
	if first.Title != "무선 청소기" {
		t.Errorf("title = %q, want 무선 청소기", first.Title)
	}
	if first.Price != 89000 || first.OriginalPrice != 178000 {
		t.Errorf("prices = %d/%d, want 89000/178000", first.Price, first.OriginalPrice)
	}
	if first.DiscountPercent != 50 {
		t.Errorf("discount = %d, want 50", first.DiscountPercent)
	}
	if first.Link != "https://www.coupang.com/vp/products/100?itemId=1" {
		t.Errorf("link = %q, expected absolutized and normalized link", first.Link)
	}
	if first.ImageURL != "https://thumbnail.coupangcdn.com/100.jpg" {
		t.Errorf("image = %q, expected https scheme added", first.ImageURL)
	}
	if first.Category != "가전" {
		t.Errorf("category = %q, want 가전", first.Category)
	}
	if !first.CrawledAt.Equal(now) {
		t.Errorf("crawled_at = %v, want %v", first.CrawledAt, now)
	}

	second := deals[1]
	if second.OriginalPrice != second.Price {
		t.Errorf("missing strikethrough price should fall back to sale price, got %d/%d",
			second.Price, second.OriginalPrice)
	}
	if second.DiscountPercent != 0 {
		t.Errorf("discount = %d, want 0 without a markdown", second.DiscountPercent)
	}
	if second.Category != "일반" {
		t.Errorf("category = %q, want default 일반", second.Category)
	}
}

func TestExtractDeals_EmptyPage(t *testing.T) {
	e := New(DefaultSelectors())

	deals, err := e.ExtractDeals("<html><body></body></html>", time.Now())
	if err != nil {
		t.Fatalf("ExtractDeals() returned unexpected error: %v", err)
	}
	if len(deals) != 0 {
		t.Errorf("Extracted %d deals from an empty page, want 0", len(deals))
	}
}

func TestLoadSelectorsFromBytes_Invalid(t *testing.T) {
	if _, err := LoadSelectorsFromBytes([]byte("{broken")); err == nil {
		t.Error("Expected error for malformed selector JSON")
	}
}

func TestLoadConfig_EmbeddedSelectors(t *testing.T) {
	sel := LoadConfig()
	if sel.DealList.Container.Item == "" {
		t.Error("LoadConfig() should always yield a usable item selector")
	}
	if sel.DealList.Elements.Price == "" {
		t.Error("LoadConfig() should always yield a usable price selector")
	}
}
