package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"time"
)

// Deal represents one product listing captured from the hot-deals page.
// The csv tags define the snapshot column layout; the struct is also the
// shape handed to the notifier.
type Deal struct {
	Title           string    `csv:"title" json:"title" validate:"required"`
	Price           int       `csv:"price" json:"price" validate:"gte=0"`
	OriginalPrice   int       `csv:"original_price" json:"original_price" validate:"gte=0"`
	DiscountPercent int       `csv:"discount" json:"discount" validate:"gte=0,lte=100"`
	Link            string    `csv:"link" json:"link" validate:"required,url"`
	ImageURL        string    `csv:"image_url" json:"image_url" validate:"omitempty,url"`
	Category        string    `csv:"category" json:"category"`
	CrawledAt       time.Time `csv:"crawled_at" json:"crawled_at"`
}

// ID returns a stable identifier for the listing. The product link survives
// title and price edits, so it is preferred; listings without a link fall
// back to title and price.
func (d Deal) ID() string {
	key := d.Link
	if key == "" {
		key = fmt.Sprintf("%s|%d", d.Title, d.Price)
	}
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// Discount derives the rounded discount percentage from the two prices.
// Listings without a real markdown (missing or lower original price) are 0%.
func Discount(originalPrice, price int) int {
	if originalPrice <= 0 || price >= originalPrice {
		return 0
	}
	return int(math.Round(float64(originalPrice-price) / float64(originalPrice) * 100))
}
