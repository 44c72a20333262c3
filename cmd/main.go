package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/moonman369/Crowd-Funding-Contract/internal/adapter/events"
	httpadapter "github.com/moonman369/Crowd-Funding-Contract/internal/adapter/http"
	"github.com/moonman369/Crowd-Funding-Contract/internal/adapter/memory"
	"github.com/moonman369/Crowd-Funding-Contract/internal/adapter/postgres"
	"github.com/moonman369/Crowd-Funding-Contract/internal/adapter/sqlite"
	"github.com/moonman369/Crowd-Funding-Contract/internal/adapter/usecase"
	"github.com/moonman369/Crowd-Funding-Contract/internal/config"
	"github.com/moonman369/Crowd-Funding-Contract/internal/config/configs"
	"github.com/moonman369/Crowd-Funding-Contract/internal/core/port"
	"github.com/moonman369/Crowd-Funding-Contract/internal/db"
	"github.com/moonman369/Crowd-Funding-Contract/internal/telemetry"
)

// main is the entry point of the ledger service. It loads configuration,
// opens the configured store (running migrations when asked), mints the
// genesis supply, wires the event publishers and starts the HTTP server. On
// receiving a termination signal it gracefully shuts down the server.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	// Load configuration from the environment and an optional .env file.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return
	}

	logger := slog.New(cfg.Log.Handler(os.Stdout)).With(slog.String("env", cfg.Env))
	slog.SetDefault(logger)

	ctx := context.Background()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTel)
	if err != nil {
		logger.Error("tracing setup error", slog.Any("error", err))
		return
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("tracing shutdown error", slog.Any("error", err))
		}
	}()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("store error", slog.Any("error", err))
		return
	}
	defer closeStore()

	tokens := usecase.NewTokenUseCase(store, cfg.Ledger.CustodyAddress)
	applied, err := tokens.ApplyGenesis(ctx, usecase.Genesis{
		Treasury:   cfg.Ledger.TreasuryAddress,
		Supply:     cfg.Ledger.InitialSupply,
		Accounts:   cfg.Ledger.GenesisAccounts,
		PerAccount: cfg.Ledger.GenesisPerAccount,
	})
	if err != nil {
		logger.Error("genesis error", slog.Any("error", err))
		return
	}
	if applied {
		logger.Info("genesis supply minted",
			slog.String("treasury", cfg.Ledger.TreasuryAddress.String()),
			slog.Uint64("supply", cfg.Ledger.InitialSupply),
			slog.Int("funded_accounts", len(cfg.Ledger.GenesisAccounts)),
		)
	}

	publishers := events.Fanout{events.NewLogPublisher(logger)}
	if cfg.Redis.URL != "" {
		client, err := db.NewRedisClient(ctx, cfg.Redis.URL, logger)
		if err != nil {
			logger.Error("redis connection error", slog.Any("error", err))
			return
		}
		defer client.Close()
		publishers = append(publishers, events.NewRedisPublisher(client, cfg.Redis.Channel))
	}

	svc := usecase.NewCrowdfundingUseCase(store, publishers,
		usecase.WithPolicy(cfg.Ledger.Policy()),
		usecase.WithCustody(cfg.Ledger.CustodyAddress),
		usecase.WithLogger(logger),
	)

	handler := httpadapter.NewHandler(svc, tokens, cfg.Auth.JWTSecret, logger)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler.Router(),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	serveErr := make(chan error, 1)

	go func() {
		logger.Info("server listening",
			slog.Int("port", int(cfg.HTTP.Port)),
			slog.String("store", cfg.Ledger.Store),
			slog.String("custody", cfg.Ledger.CustodyAddress.String()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case value := <-quit:
		exitCode = 128 + int(value.(syscall.Signal))
	case err = <-serveErr:
		logger.Error("server error", slog.Any("error", err))
		return
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}

// openStore builds the ledger store selected by LEDGER_STORE. The returned
// function releases its resources.
func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (port.LedgerStore, func(), error) {
	kind, err := cfg.Ledger.StoreKind()
	if err != nil {
		return nil, nil, err
	}

	switch kind {
	case configs.StorePostgres:
		// Optionally run migrations if configured. We use the Psql sub‑config.
		if cfg.Psql.RunMigrations {
			if err = db.MigratePostgres(cfg.Psql.Addr.String()); err != nil {
				return nil, nil, fmt.Errorf("migrate postgres: %w", err)
			}
			logger.Info("migrations applied successfully", slog.String("store", kind))
		}
		pool, err := db.NewPostgresPool(ctx, cfg.Psql)
		if err != nil {
			return nil, nil, fmt.Errorf("database connection: %w", err)
		}
		return postgres.NewLedgerStore(pool, cfg.Psql.MaxTxAttempts), pool.Close, nil

	case configs.StoreSQLite:
		if cfg.SQLite.RunMigrations {
			if err = db.MigrateSQLite(cfg.SQLite.Path); err != nil {
				return nil, nil, fmt.Errorf("migrate sqlite: %w", err)
			}
			logger.Info("migrations applied successfully", slog.String("store", kind))
		}
		sqlDB, err := db.OpenSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		store := sqlite.NewLedgerStore(sqlDB)
		return store, func() { _ = store.Close() }, nil

	default:
		logger.Warn("using the in-memory store; ledger state is lost on exit")
		return memory.NewStore(), func() {}, nil
	}
}
