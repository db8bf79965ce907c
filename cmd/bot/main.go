package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"medrating/internal/apiclient"
	"medrating/internal/config"
	"medrating/internal/engine"
	"medrating/internal/logging"
	"medrating/internal/telegram"
)

// Server-side long-poll hold; the HTTP client timeout must exceed it.
const pollTimeoutSeconds = 30

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.BotToken == "" {
		slog.Error("BOT_TOKEN environment variable is required")
		os.Exit(1)
	}

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         dsn,
			Environment: os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	tg := telegram.NewClient(cfg.BotToken, (pollTimeoutSeconds+5)*time.Second)
	api := apiclient.New(cfg.APIBaseURL, cfg.RequestTimeout)

	bot := engine.New(api, tg, engine.Config{
		PageSize:       cfg.PageSize,
		ThrottleWindow: cfg.ThrottleWindow,
		AdminChatID:    cfg.AdminChatID,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("bot starting", "api_base_url", cfg.APIBaseURL)

	var offset int64
	for {
		updates, err := tg.GetUpdates(ctx, offset, pollTimeoutSeconds)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			if !errors.Is(err, context.Canceled) {
				slog.Error("get updates failed", "error", err)
				sentry.CaptureException(err)
			}
			// Back off so a broken network does not spin the loop.
			select {
			case <-time.After(3 * time.Second):
			case <-ctx.Done():
			}
			continue
		}

		for _, update := range updates {
			offset = update.UpdateID + 1
			bot.HandleUpdate(ctx, update)
		}

		if ctx.Err() != nil {
			break
		}
	}

	slog.Info("bot stopped")
}
