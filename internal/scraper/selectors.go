package scraper

import (
	"encoding/json"
	"fmt"
	"os"
)

// SelectorConfig describes where listing data lives in the campaign page
// DOM. Keeping it in JSON lets a selector fix ship without a rebuild when
// the site markup changes.
type SelectorConfig struct {
	DealList ListSelectors `json:"deal_list"`
}

type ListSelectors struct {
	Container ListContainer `json:"container"`
	Elements  ListElements  `json:"elements"`
}

type ListContainer struct {
	List string `json:"list"` // e.g., "ul.productList"
	Item string `json:"item"` // e.g., "li.baby-product"
}

type ListElements struct {
	Title         string `json:"title"`
	Price         string `json:"price"`
	OriginalPrice string `json:"original_price"`
	Link          string `json:"link"`
	Image         string `json:"image"`
	Category      string `json:"category"`
}

// LoadSelectors loads the selector configuration from the specified JSON file.
func LoadSelectors(path string) (SelectorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SelectorConfig{}, fmt.Errorf("failed to read selector config file: %w", err)
	}

	return LoadSelectorsFromBytes(data)
}

// LoadSelectorsFromBytes parses selector configuration from raw JSON bytes.
// This supports loading from embedded data via go:embed.
func LoadSelectorsFromBytes(data []byte) (SelectorConfig, error) {
	var config SelectorConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return SelectorConfig{}, fmt.Errorf("failed to parse selector config JSON: %w", err)
	}

	return config, nil
}

// DefaultSelectors returns the fallback configuration if no JSON file is
// loaded. The embedded selectors.json should be preferred.
func DefaultSelectors() SelectorConfig {
	return SelectorConfig{
		DealList: ListSelectors{
			Container: ListContainer{
				List: "ul.productList",
				Item: "li.baby-product",
			},
			Elements: ListElements{
				Title:         "div.name",
				Price:         "strong.price-value",
				OriginalPrice: "del.base-price",
				Link:          "a.baby-product-link",
				Image:         "img.product-image",
				Category:      "div.category",
			},
		},
	}
}
