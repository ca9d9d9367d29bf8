package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/insta-profile-sync/internal/storage"
	"github.com/orgball2608/insta-profile-sync/internal/syncer"
	"github.com/orgball2608/insta-profile-sync/pkg/config"
	"github.com/orgball2608/insta-profile-sync/pkg/logger"
	"go.uber.org/fx"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

var _ Pinger = (*pgxpool.Pool)(nil)

// Checker is satisfied by *storage.Store.
type Checker interface {
	CheckWritable() error
}

var _ Checker = (*storage.Store)(nil)

func registerServer(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, pool *pgxpool.Pool, store *storage.Store) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           NewHandler(log, pool, store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Info(fmt.Sprintf("Starting server on :%d", cfg.App.Port))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

func registerScheduler(lc fx.Lifecycle, s syncer.Syncer) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return s.Schedule(ctx)
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

func NewHandler(log logger.Logger, db Pinger, files Checker) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		healthCheckHandler(w, r, log, db, files)
	})
	return mux
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request, log logger.Logger, db Pinger, files Checker) {
	log.Debug("Health check request received", "Method", r.Method, "URL", r.URL.String())

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := db.Ping(ctx); err != nil {
		log.Warn("Health check failed", "check", "database", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	if err := files.CheckWritable(); err != nil {
		log.Warn("Health check failed", "check", "storage", "error", err)
		http.Error(w, "download directory not writable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		log.Error("Failed to write response", "Error", err)
	}
}
