package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the environment-supplied process configuration. The external
// scheduler passes everything as environment variables; there is no CLI
// flag surface.
type Config struct {
	TelegramBotToken string
	TelegramChatID   int64

	Headless    bool
	MaxPages    int
	MinDiscount int
	MaxNotify   int // 0 means no cap

	DataDir      string
	NotifiedFile string

	PageDelay    time.Duration
	SendInterval time.Duration

	NotifyOnly bool
}

func Load() (*Config, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is required but not set")
	}

	chatIDStr := os.Getenv("TELEGRAM_CHAT_ID")
	if chatIDStr == "" {
		return nil, fmt.Errorf("TELEGRAM_CHAT_ID environment variable is required but not set")
	}
	chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", chatIDStr, err)
	}

	headless := true
	if v := os.Getenv("HEADLESS"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid HEADLESS %q: %w", v, err)
		}
		headless = parsed
	}

	maxPages := 3
	if v := os.Getenv("MAX_PAGES"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_PAGES %q: %w", v, err)
		}
		maxPages = parsed
	}
	if maxPages < 1 {
		return nil, fmt.Errorf("MAX_PAGES must be at least 1, got %d", maxPages)
	}

	minDiscount := 20
	if v := os.Getenv("MIN_DISCOUNT"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MIN_DISCOUNT %q: %w", v, err)
		}
		minDiscount = parsed
	}
	if minDiscount < 0 || minDiscount > 100 {
		return nil, fmt.Errorf("MIN_DISCOUNT must be within [0,100], got %d", minDiscount)
	}

	maxNotify := 5
	if v := os.Getenv("MAX_NOTIFY"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_NOTIFY %q: %w", v, err)
		}
		maxNotify = parsed
	}
	if maxNotify < 0 {
		return nil, fmt.Errorf("MAX_NOTIFY must not be negative, got %d", maxNotify)
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	notifiedFile := os.Getenv("NOTIFIED_FILE")
	if notifiedFile == "" {
		notifiedFile = "data/notified.json"
	}

	pageDelay, err := durationEnv("PAGE_DELAY", 3*time.Second)
	if err != nil {
		return nil, err
	}

	sendInterval, err := durationEnv("SEND_INTERVAL", 1500*time.Millisecond)
	if err != nil {
		return nil, err
	}

	notifyOnly := false
	if v := os.Getenv("NOTIFY_ONLY"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid NOTIFY_ONLY %q: %w", v, err)
		}
		notifyOnly = parsed
	}

	return &Config{
		TelegramBotToken: token,
		TelegramChatID:   chatID,
		Headless:         headless,
		MaxPages:         maxPages,
		MinDiscount:      minDiscount,
		MaxNotify:        maxNotify,
		DataDir:          dataDir,
		NotifiedFile:     notifiedFile,
		PageDelay:        pageDelay,
		SendInterval:     sendInterval,
		NotifyOnly:       notifyOnly,
	}, nil
}

func durationEnv(name string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(name)
	if v == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	if parsed < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %s", name, parsed)
	}
	return parsed, nil
}
