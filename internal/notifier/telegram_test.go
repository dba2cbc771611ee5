package notifier

import (
	"strings"
	"testing"
	"time"

	"github.com/jaehyuk-choi/coupang-hotdeal-bot/internal/models"
)

func TestFormatDeal(t *testing.T) {
	deal := models.Deal{
		Title:           "무선 청소기 <특가>",
		Price:           89000,
		OriginalPrice:   178000,
		DiscountPercent: 50,
		Link:            "https://www.coupang.com/vp/products/100",
		Category:        "가전",
	}

	got := FormatDeal(deal)

	if !strings.Contains(got, "무선 청소기 &lt;특가&gt;") {
		t.Error("title should be HTML-escaped")
	}
	if !strings.Contains(got, "<b>89,000원</b>") {
		t.Errorf("sale price missing or unformatted: %s", got)
	}
	if !strings.Contains(got, "원가: 178,000원") {
		t.Errorf("original price missing or unformatted: %s", got)
	}
	if !strings.Contains(got, "50% 할인") {
		t.Errorf("discount missing: %s", got)
	}
	if !strings.Contains(got, `<a href="https://www.coupang.com/vp/products/100">`) {
		t.Errorf("purchase link missing: %s", got)
	}
	if !strings.Contains(got, "가전") {
		t.Errorf("category missing: %s", got)
	}
}

func TestFormatHeader(t *testing.T) {
	now := time.Date(2026, 8, 26, 9, 30, 0, 0, time.UTC)

	got := FormatHeader(now, 5)

	if !strings.Contains(got, "2026년 08월 26일 09시") {
		t.Errorf("header date unexpected: %s", got)
	}
	if !strings.Contains(got, "TOP 5") {
		t.Errorf("header count missing: %s", got)
	}
}
