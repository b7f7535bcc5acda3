package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Talha62370/Real-Time-Polling/internal/app"
	"github.com/Talha62370/Real-Time-Polling/internal/config"
	"github.com/Talha62370/Real-Time-Polling/internal/database"
	"github.com/Talha62370/Real-Time-Polling/internal/logging"
	"github.com/Talha62370/Real-Time-Polling/internal/retry"
	"github.com/Talha62370/Real-Time-Polling/internal/server"
	"github.com/Talha62370/Real-Time-Polling/internal/version"
	"github.com/Talha62370/Real-Time-Polling/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// The database may still be starting up, so retry before giving up.
	policy := retry.Policy{
		MaxAttempts:    5,
		InitialBackoff: time.Second,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			slog.Warn("Database not reachable, retrying", "attempt", attempt, "backoff", backoff, "error", err)
		},
	}
	pool, err := retry.Do(ctx, policy, func() (*pgxpool.Pool, error) {
		return database.Connect(ctx, cfg.DatabaseURL)
	})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func runGracefulShutdown(srv *server.Server, hub *websocket.Hub) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		hub.Stop()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	info := version.Get()
	slog.Info("Application starting",
		"env", cfg.AppEnv,
		"port", cfg.Port,
		"version", info.Version,
		"commit", info.Commit,
	)

	pool := setupDB(cfg)
	defer pool.Close()

	hub := websocket.NewHub(clock)

	userRepo := database.NewUserRepo(pool)
	pollRepo := database.NewPollRepo(pool)
	voteRepo := database.NewVoteRepo(pool)

	appSvc := app.NewService(userRepo, pollRepo, voteRepo, hub)

	srv := server.NewServer(cfg, appSvc, hub, pool)

	done := runGracefulShutdown(srv, hub)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
