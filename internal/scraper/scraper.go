package scraper

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/jaehyuk-choi/coupang-hotdeal-bot/internal/models"
	"github.com/jaehyuk-choi/coupang-hotdeal-bot/internal/util"
	"github.com/jaehyuk-choi/coupang-hotdeal-bot/internal/validator"
	apperrors "github.com/jaehyuk-choi/coupang-hotdeal-bot/pkg/errors"
)

const (
	siteBaseURL = "https://www.coupang.com"

	// defaultCategory labels listings whose category element is missing.
	defaultCategory = "일반"
)

// Extractor turns one page's rendered HTML into structured deal records.
// Extraction is best-effort: a malformed listing is logged and skipped,
// never aborting the page.
type Extractor struct {
	selectors SelectorConfig
	validate  *validator.Validator
}

func New(selectors SelectorConfig) *Extractor {
	return &Extractor{
		selectors: selectors,
		validate:  validator.New(),
	}
}

// ExtractDeals parses the listings out of one campaign page. now becomes
// the CrawledAt timestamp of every record from this run.
func (e *Extractor) ExtractDeals(pageHTML string, now time.Time) ([]models.Deal, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, apperrors.NewParse("page", "failed to parse page HTML", err)
	}

	items := doc.Find(e.selectors.DealList.Container.Item)
	if items.Length() == 0 {
		log.Warn().Str("selector", e.selectors.DealList.Container.Item).
			Msg("No listings found on page; possible block or markup change")
	}

	var deals []models.Deal
	items.Each(func(i int, s *goquery.Selection) {
		deal, err := e.extractListing(s, now)
		if err != nil {
			log.Warn().Err(err).Int("index", i).Msg("Skipping malformed listing")
			return
		}
		if err := e.validate.ValidateStruct(deal); err != nil {
			log.Warn().Err(err).Str("title", deal.Title).Msg("Skipping invalid listing")
			return
		}
		deals = append(deals, deal)
	})

	return deals, nil
}

func (e *Extractor) extractListing(s *goquery.Selection, now time.Time) (models.Deal, error) {
	el := e.selectors.DealList.Elements

	title := strings.TrimSpace(s.Find(el.Title).First().Text())
	if title == "" {
		return models.Deal{}, apperrors.NewParse("listing", "title element not found", nil)
	}

	price, err := util.ParsePrice(s.Find(el.Price).First().Text())
	if err != nil {
		return models.Deal{}, apperrors.NewParse(title, "price element missing or malformed", err)
	}

	// Listings without a strikethrough price have no markdown.
	originalPrice := price
	if text := strings.TrimSpace(s.Find(el.OriginalPrice).First().Text()); text != "" {
		if v, parseErr := util.ParsePrice(text); parseErr == nil {
			originalPrice = v
		}
	}

	link := ""
	if href, ok := s.Find(el.Link).First().Attr("href"); ok {
		link = absoluteURL(href)
		if normalized, normErr := util.NormalizeURL(link); normErr == nil {
			link = normalized
		}
	}
	if link == "" {
		return models.Deal{}, apperrors.NewParse(title, "product link not found", nil)
	}

	imageURL := ""
	if src, ok := s.Find(el.Image).First().Attr("src"); ok {
		imageURL = absoluteURL(src)
	}

	category := strings.TrimSpace(s.Find(el.Category).First().Text())
	if category == "" {
		category = defaultCategory
	}

	return models.Deal{
		Title:           title,
		Price:           price,
		OriginalPrice:   originalPrice,
		DiscountPercent: models.Discount(originalPrice, price),
		Link:            link,
		ImageURL:        imageURL,
		Category:        category,
		CrawledAt:       now,
	}, nil
}

// absoluteURL resolves site-relative and scheme-relative references the way
// the campaign markup emits them.
func absoluteURL(ref string) string {
	switch {
	case strings.HasPrefix(ref, "//"):
		return "https:" + ref
	case strings.HasPrefix(ref, "/"):
		return siteBaseURL + ref
	default:
		return ref
	}
}
