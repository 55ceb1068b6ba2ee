package main

// @title           Shop Auth API
// @version         1.0
// @description     Authentication for shops, their manager pool and attendants.

// @host      localhost:8080
// @BasePath  /
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Format: "Bearer {token}"

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/shop-auth/internal/adapters/driven/auth"
	"github.com/custodia-labs/shop-auth/internal/adapters/driven/postgres"
	redisadapter "github.com/custodia-labs/shop-auth/internal/adapters/driven/redis"
	"github.com/custodia-labs/shop-auth/internal/adapters/driving/http"
	"github.com/custodia-labs/shop-auth/internal/config"
	"github.com/custodia-labs/shop-auth/internal/core/ports/driven"
	"github.com/custodia-labs/shop-auth/internal/core/services"
)

var version = "dev"

func main() {
	// A .env file is optional; real environment variables take precedence
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.Version == "dev" {
		cfg.Version = version
	}

	// run returns only after its deferred cleanup has happened
	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config.Config) error {
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	log.Printf("shop-auth %s starting", cfg.Version)
	if cfg.UsesDevelopmentSecret() {
		log.Println("Warning: JWT_SECRET not set, using the development secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to PostgreSQL
	log.Println("Connecting to PostgreSQL...")
	db, err := postgres.Connect(ctx, postgres.Config{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	log.Println("PostgreSQL connected and schema initialized")

	credentialStore := postgres.NewCredentialStore(db)

	// Revocation ledger: Redis when configured, PostgreSQL otherwise.
	// Entries are permanent unless LEDGER_EXPIRE_ENTRIES is set.
	var (
		ledger      driven.RevocationLedger
		redisPinger http.Pinger
	)
	if cfg.RedisURL != "" {
		log.Println("Connecting to Redis...")
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		redisClient := redis.NewClient(opts)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}

		redisLedger := redisadapter.NewRevocationLedger(redisClient)
		if cfg.LedgerExpireEntries {
			redisLedger.WithEntryExpiry(cfg.LedgerExpiryGrace)
		}
		ledger = redisLedger
		redisPinger = redisLedger
		log.Println("Using Redis revocation ledger")
	} else {
		pgLedger := postgres.NewRevocationLedger(db)
		ledger = pgLedger
		if cfg.LedgerExpireEntries {
			pruner := services.NewLedgerPruner(services.LedgerPrunerConfig{
				Pruner:   pgLedger,
				Logger:   logger,
				Interval: cfg.LedgerPruneInterval,
				Grace:    cfg.LedgerExpiryGrace,
			})
			pruner.Start(ctx)
			defer pruner.Stop()
		}
		log.Println("Using PostgreSQL revocation ledger")
	}

	authAdapter := auth.NewAdapterWithCost(cfg.JWTSecret, cfg.BcryptCost).
		WithLookupSecret(cfg.ManagerLookupSecret)

	authService := services.NewAuthService(services.AuthServiceConfig{
		Store:       credentialStore,
		TxManager:   credentialStore,
		Ledger:      ledger,
		AuthAdapter: authAdapter,
		Logger:      logger,
		AccessTTL:   cfg.AccessTokenTTL,
		RefreshTTL:  cfg.RefreshTokenTTL,
	})

	server := http.NewServer(http.Config{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	}, authService, db, redisPinger)

	return server.Start()
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
