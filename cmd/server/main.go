package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	_ "github.com/shopgrid/commerce-api/docs"
	"github.com/shopgrid/commerce-api/internal/api"
	"github.com/shopgrid/commerce-api/internal/core/auth"
	"github.com/shopgrid/commerce-api/internal/core/ports"
	"github.com/shopgrid/commerce-api/internal/core/service"
	"github.com/shopgrid/commerce-api/internal/infrastructure/db"
	redisstore "github.com/shopgrid/commerce-api/internal/infrastructure/db/redis"
	httpserver "github.com/shopgrid/commerce-api/internal/infrastructure/http"
	"github.com/shopgrid/commerce-api/internal/infrastructure/http/handlers"
	"github.com/shopgrid/commerce-api/internal/pkg/config"
	"github.com/shopgrid/commerce-api/pkg/logger"
)

//	@title			Commerce API
//	@version		1.0
//	@description	Role-based REST backend for a multi-shop commerce platform.
//	@BasePath		/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "commerce-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	store, err := db.Open(ctx, cfg, logger.Component("store"))
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("closing store")
		}
	}()

	codec, err := auth.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	checks := map[string]handlers.Check{store.Driver: store.Ping}

	var throttle ports.LoginThrottle
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()

		throttle = redisstore.NewLoginThrottle(rdb, cfg.Redis.LoginMaxAttempts, cfg.Redis.LoginWindow)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		log.Info().Str("addr", cfg.Redis.Addr).Msg("login throttling enabled")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, login throttling disabled")
	}

	operators := service.NewOperatorService(store.Operators, codec, throttle, logger.Component("operators"))
	if cfg.Seed.SuperAdminUsername != "" {
		if err := operators.SeedSuperAdmin(ctx, cfg.Seed.SuperAdminUsername, cfg.Seed.SuperAdminPassword); err != nil {
			return err
		}
	}

	router := api.NewRouter(api.Dependencies{
		Logger:       logger.Component("http"),
		Codec:        codec,
		Operators:    operators,
		Shops:        service.NewShopService(store.Shops, logger.Component("shops")),
		Items:        service.NewItemService(store.Items, store.Shops, logger.Component("items")),
		Invoices:     service.NewInvoiceService(store.Invoices, store.Shops, logger.Component("invoices")),
		HealthChecks: checks,
		CORSOrigins:  cfg.CORSOrigins,
		ExposeErrors: cfg.ExposeErrors,
	})

	return httpserver.Serve(ctx, router, ":"+cfg.Port, log)
}
