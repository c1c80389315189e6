// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sticker-hunt-backend/internal/config"
	pg "sticker-hunt-backend/internal/infra/db/postgres"
	"sticker-hunt-backend/internal/infra/identity"
	"sticker-hunt-backend/internal/infra/logging"
	"sticker-hunt-backend/internal/infra/metrics"
	red "sticker-hunt-backend/internal/infra/redis"
	"sticker-hunt-backend/internal/infra/security"
	"sticker-hunt-backend/internal/infra/web"
	"sticker-hunt-backend/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, relaxed cookies)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("dev mode enabled")
	}

	metrics.MustRegister()

	// ---- Migrations ----
	if err := pg.RunMigrations(cfg.Database.URL); err != nil {
		logger.Fatal().Err(err).Msg("migrations failed")
	}

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer pool.Close()
	go pg.ReportPoolStats(ctx, pool, 15*time.Second)

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connect failed")
	}
	defer redisClient.Close()
	limiter := red.NewRateLimiter(redisClient, cfg.RateLimit.ClaimAttempts, cfg.RateLimit.ClaimWindow)

	// ---- Repositories ----
	stickerRepo := pg.NewStickerRepo(pool)
	claimRepo := pg.NewClaimRepo(pool)
	userRepo := pg.NewUserRepo(pool)
	txManager := pg.NewTxManager(pool)

	// ---- Use cases ----
	claimUC := usecase.NewClaimUseCase(stickerRepo, claimRepo, logger)
	userUC := usecase.NewUserUseCase(userRepo)
	statsUC := usecase.NewStatsUseCase(userRepo, stickerRepo, claimRepo, txManager)

	// ---- Identity & signing ----
	idp := identity.NewJWTProvider(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL, userUC)
	signer := security.NewStickerSigner(cfg.Signing)
	if !signer.Enabled() {
		logger.Warn().Msg("signing.secret not set; sticker signatures are not enforced")
	}

	// ---- HTTP ----
	srv := web.NewServer(claimUC, userUC, statsUC, idp, signer, limiter,
		cfg.Event.ID, cfg.Auth.CookieDomain, cfg.Auth.SecureCookie, logger)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown error")
	}
	cancel()
}
