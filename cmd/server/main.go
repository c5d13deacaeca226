package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/grpc"

	"github.com/mvaleed/quill/internal/app"
	"github.com/mvaleed/quill/internal/auth"
	"github.com/mvaleed/quill/internal/config"
	"github.com/mvaleed/quill/internal/event"
	"github.com/mvaleed/quill/internal/service"
	"github.com/mvaleed/quill/internal/storage"
	"github.com/mvaleed/quill/internal/storage/memory"
	"github.com/mvaleed/quill/internal/storage/postgres"
	grpcTransport "github.com/mvaleed/quill/internal/transport/grpc"
	httpTransport "github.com/mvaleed/quill/internal/transport/http"
	"github.com/mvaleed/quill/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := app.NewLogger(cfg.Log)

	if err := run(cfg, logger); err != nil {
		logger.Error("application error", "error", err)
		os.Exit(1)
	}
}

// backend is the storage selected by configuration.
type backend struct {
	repos *storage.Repositories
	tx    storage.Transactor
	ping  storage.Pinger
	close func()
}

func openBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*backend, error) {
	if strings.EqualFold(cfg.Database.Driver, config.DriverMemory) {
		logger.Warn("using in-memory storage; data is lost on restart")
		store := memory.New()
		return &backend{repos: store.Repositories(), tx: store, ping: store, close: func() {}}, nil
	}

	logger.Info("connecting to database")
	db, err := postgres.New(ctx, cfg.Database.DSN, postgres.PoolConfig{
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("database connected")

	if cfg.Database.AutoMigrate {
		if err := postgres.NewMigrator(db, logger).Up(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	return &backend{repos: db.Repositories(), tx: db, ping: db, close: db.Close}, nil
}

func newRateLimiter(cfg *config.Config, logger *slog.Logger) httpTransport.RateLimiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	if cfg.RateLimit.RedisAddr != "" {
		limiter, err := httpTransport.NewRedisRateLimiter(cfg.RateLimit.RedisAddr, cfg.RateLimit.RedisPassword, cfg.RateLimit.RedisDB, logger)
		if err == nil {
			logger.Info("rate limiter using redis", "addr", cfg.RateLimit.RedisAddr)
			return limiter
		}
		logger.Warn("redis unavailable, falling back to in-memory rate limiter", "error", err)
	}
	return httpTransport.NewMemoryRateLimiter()
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.close()

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		SecretKey:      cfg.Auth.JWTSecret,
		AccessTokenTTL: cfg.Auth.AccessTokenTTL,
		Issuer:         cfg.Auth.JWTIssuer,
		Audience:       []string{cfg.Auth.JWTIssuer},
	})
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	publisher := event.New(cfg.Events.Enabled, logger)
	defer publisher.Close()

	validator := validation.New(store.repos.Accounts)
	accountService := service.NewAccountService(store.repos.Accounts, store.tx, validator, hasher, jwtManager, publisher, logger)
	articleService := service.NewArticleService(store.repos.Articles, store.tx, validator, publisher, logger)

	limiter := newRateLimiter(cfg, logger)
	if limiter != nil {
		defer limiter.Close()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	errChan := make(chan error, 2)

	httpServer := httpTransport.NewServer(
		cfg,
		accountService,
		articleService,
		jwtManager,
		store.ping,
		limiter,
		registry,
		logger,
	)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
		logger.Info("starting HTTP server", "addr", addr)
		if err := httpServer.ListenAndServe(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	var grpcServer *grpcTransport.Server
	if cfg.Server.GRPCEnabled {
		grpcServer = grpcTransport.NewServer(accountService, articleService, jwtManager, logger)
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Server.GRPCPort)
			listener, err := net.Listen("tcp", addr)
			if err != nil {
				errChan <- fmt.Errorf("gRPC listen: %w", err)
				return
			}
			logger.Info("starting gRPC server", "addr", addr)
			if err := grpcServer.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				errChan <- fmt.Errorf("gRPC server: %w", err)
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", "signal", sig)
	case err := <-errChan:
		logger.Error("server error", "error", err)
		return err
	}

	logger.Info("initiating graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	if grpcServer != nil {
		grpcServer.GracefulStop()
	}

	cancel()

	logger.Info("shutdown complete")
	return nil
}
