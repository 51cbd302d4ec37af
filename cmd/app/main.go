// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"telegram-robux-store/internal/backend"
	"telegram-robux-store/internal/config"
	"telegram-robux-store/internal/domain/ports/adapter"
	"telegram-robux-store/internal/domain/ports/repository"
	"telegram-robux-store/internal/flow"
	tele "telegram-robux-store/internal/infra/adapters/telegram"
	pg "telegram-robux-store/internal/infra/db/postgres"
	"telegram-robux-store/internal/infra/logging"
	"telegram-robux-store/internal/infra/metrics"
	red "telegram-robux-store/internal/infra/redis"
	"telegram-robux-store/internal/infra/sched"
	"telegram-robux-store/internal/infra/web"
	"telegram-robux-store/internal/policy"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, looser policies)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.Register()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	settingsRepo := pg.NewSettingsRepo(pool)
	banRepo := pg.NewBanRepo(pool)

	// The bot token lives in the store's settings table, next to the rest of
	// the store configuration the web panel edits.
	botToken, err := settingsRepo.BotToken(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("bot token lookup")
	}

	// ---- Redis (optional: in-process fallbacks when unset) ----
	var (
		sessions repository.SessionRepository
		limiter  repository.RateLimiter
	)
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		sessions = red.NewSessionRepo(redisClient, cfg.Redis.TTL)
		limiter = red.NewRateLimiter(redisClient)
	} else {
		logger.Warn().Msg("redis.url not set; sessions and rate limits are process-local")
		sessions = flow.NewMemoryStore(cfg.Redis.TTL)
		limiter = policy.NewMemoryLimiter()
	}

	// ---- Backend client ----
	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Token, cfg.Backend.Timeout, logger)

	// ---- Access policies ----
	policies := policy.NewChain(
		policy.NewBanPolicy(banRepo, cfg.Policy.BanCacheTTL, logger),
		policy.NewMaintenancePolicy(client, cfg.Bot.BypassIDs, cfg.Policy.MaintenanceTTL, logger),
		policy.NewRateLimitPolicy(limiter, cfg.Policy.RateLimitInterval, logger),
	)

	// ---- Telegram ----
	var notifier adapter.TelegramBotAdapter
	stopPolling := func() {}
	if strings.ToLower(cfg.Bot.Mode) == "noop" {
		// Local runs without Telegram: no polling, notifications go to the log.
		logger.Warn().Msg("bot.mode=noop; updates are not polled")
		notifier = tele.NewNoopBotAdapter()
	} else {
		if strings.ToLower(cfg.Bot.Mode) != "polling" {
			logger.Warn().Str("mode", cfg.Bot.Mode).Msg("bot mode not implemented; falling back to polling")
		}
		botAdapter, err := tele.NewRealBotAdapter(cfg, botToken, client, sessions, policies, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("telegram")
		}
		go func() {
			if err := botAdapter.StartPolling(ctx); err != nil && ctx.Err() == nil {
				logger.Error().Err(err).Msg("telegram polling stopped")
			}
		}()
		notifier = botAdapter
		stopPolling = botAdapter.StopPolling
	}

	// ---- Order reconciliation ----
	reconciler := sched.NewOrderReconciler(cfg.Poller.Interval, client, notifier, logger)
	go func() {
		if err := reconciler.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error().Err(err).Msg("order reconciler stopped")
		}
	}()

	// ---- Health / metrics ----
	srv := web.NewServer(cfg.Web.Port, logger)
	srv.Start()

	logger.Info().Str("mode", cfg.Bot.Mode).Int("workers", cfg.Bot.Workers).Msg("bot started")

	// ---- Graceful shutdown ----
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info().Msg("shutting down")
	cancel()
	stopPolling()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("web server shutdown")
	}
}
