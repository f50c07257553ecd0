package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"zenpay/internal/bootstrap"
	"zenpay/internal/bot"
	"zenpay/internal/config"
	cronpkg "zenpay/internal/cron"
	"zenpay/internal/gateway"
	"zenpay/internal/metrics"
	"zenpay/internal/pkg/telegram"
	"zenpay/internal/ratelimit"
	"zenpay/internal/repository"
	"zenpay/internal/router"
)

func main() {
	// --- Logger ---
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// --- Config ---
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// --- Database ---
	db, err := config.NewDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := bootstrap.MigrateAndSeed(db); err != nil {
		logger.Fatal("Failed to bootstrap database schema", zap.Error(err))
	}

	intents := repository.NewIntentRepository(db)

	// --- Rate limiter (Redis with in-memory fallback) ---
	limiter, limiterErr := ratelimit.NewLimiter(cfg.Redis.Addr, cfg.Redis.Pass, cfg.Redis.DB)
	if limiterErr != nil {
		logger.Warn("Redis unavailable for rate limiting, using in-memory fallback", zap.Error(limiterErr))
	}

	// --- Payment gateways ---
	botAPI := telegram.NewBotAPI(cfg.Bot.Token)
	gateways := gateway.NewRegistry(
		gateway.NewCryptoBotGateway(cfg.Payment.CryptoBot.APIToken, cfg.Payment.CryptoBot.Asset),
		gateway.NewYooKassaGateway(cfg.Payment.YooKassa.ShopID, cfg.Payment.YooKassa.SecretKey),
		gateway.NewStarsGateway(botAPI, cfg.Payment.Stars.KopeksPerStar),
	)

	// --- Bot ---
	teleBot, err := bot.New(cfg.Bot.Token, cfg.Bot.AdminID, intents, logger)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	// --- Echo ---
	e := echo.New()
	e.HideBanner = true
	router.Setup(e, db, cfg, gateways, limiter, teleBot, metrics.NewPrometheusRecorder(), logger)

	// --- Cron Scheduler ---
	scheduler := cronpkg.New(intents, cfg.Payment.IntentTTL, logger)
	scheduler.Start()

	// --- Start Server ---
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		logger.Info("Starting zenpay server", zap.String("addr", addr))
		if err := e.Start(addr); err != nil {
			logger.Info("Server stopped", zap.Error(err))
		}
	}()

	go teleBot.Start()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	teleBot.Stop()
	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
