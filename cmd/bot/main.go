package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/jaehyuk-choi/coupang-hotdeal-bot/internal/config"
	"github.com/jaehyuk-choi/coupang-hotdeal-bot/internal/fetcher"
	"github.com/jaehyuk-choi/coupang-hotdeal-bot/internal/logger"
	"github.com/jaehyuk-choi/coupang-hotdeal-bot/internal/notifier"
	"github.com/jaehyuk-choi/coupang-hotdeal-bot/internal/pipeline"
	"github.com/jaehyuk-choi/coupang-hotdeal-bot/internal/scraper"
	"github.com/jaehyuk-choi/coupang-hotdeal-bot/internal/storage"
)

func main() {
	os.Exit(run())
}

func run() int {
	// .env is optional; the scheduler supplies real environment variables.
	_ = godotenv.Load()
	logger.Setup()

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("Invalid configuration")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	selectors := scraper.LoadConfig()
	extractor := scraper.New(selectors)
	snapshots := storage.NewSnapshotStore(cfg.DataDir)
	notified := storage.NewNotifiedStore(cfg.NotifiedFile)

	sender, err := notifier.New(cfg.TelegramBotToken, cfg.TelegramChatID, cfg.SendInterval)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize Telegram client")
		return 1
	}

	if cfg.NotifyOnly {
		runner := pipeline.New(nil, extractor, snapshots, notified, sender, cfg)
		if _, err := runner.RunNotifyOnly(ctx); err != nil {
			log.Error().Err(err).Msg("Notify-only run failed")
			return 1
		}
		return 0
	}

	browser, err := fetcher.New(cfg.Headless, selectors.DealList.Container.List)
	if err != nil {
		log.Error().Err(err).Msg("Failed to start browser")
		return 1
	}
	defer browser.Close()

	runner := pipeline.New(browser, extractor, snapshots, notified, sender, cfg)
	if _, err := runner.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Run failed")
		return 1
	}
	return 0
}
