package scraper

import (
	"embed"
	"os"

	"github.com/rs/zerolog/log"
)

//go:embed selectors.json
var embeddedSelectors embed.FS

// LoadConfig tries to load selectors in the following order:
// 1. Embedded selectors.json
// 2. External file defined by SELECTORS_CONFIG_PATH (or default "config/selectors.json")
// 3. Hardcoded defaults
func LoadConfig() SelectorConfig {
	// 1. Try embedded
	data, err := embeddedSelectors.ReadFile("selectors.json")
	if err == nil {
		sel, parseErr := LoadSelectorsFromBytes(data)
		if parseErr == nil {
			log.Debug().Msg("Loaded selectors from embedded config")
			return sel
		}
		log.Warn().Err(parseErr).Msg("Embedded selectors failed to parse, trying file fallback")
	}

	// 2. Fallback to external file
	configPath := os.Getenv("SELECTORS_CONFIG_PATH")
	if configPath == "" {
		configPath = "config/selectors.json"
	}

	if fileSel, err := LoadSelectors(configPath); err == nil {
		log.Info().Str("path", configPath).Msg("Loaded selectors from external file")
		return fileSel
	} else {
		log.Warn().Err(err).Str("path", configPath).Msg("Failed to load external selectors, falling back to defaults")
	}

	// 3. Fallback to hardcoded defaults
	log.Info().Msg("Using hardcoded default selectors")
	return DefaultSelectors()
}
