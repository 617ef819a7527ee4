// Package server boots and runs the HTTP process: config, connections,
// the notice hub, the handler, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/lspratas/atelier/config"
	"github.com/lspratas/atelier/internal/kernel"
	"github.com/lspratas/atelier/pkg/cache"
	"github.com/lspratas/atelier/pkg/database"
	"github.com/lspratas/atelier/pkg/logger"
	"github.com/lspratas/atelier/pkg/queue"
	"github.com/lspratas/atelier/pkg/storage"
	"github.com/lspratas/atelier/pkg/ws"

	// Job types register themselves for deserialization.
	_ "github.com/lspratas/atelier/app/jobs"
)

const (
	shutdownGrace = 10 * time.Second
	queueWorkers  = 2
)

// Start runs the server until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.Connect(ctx); err != nil {
		return err
	}
	defer database.Disconnect(context.Background()) //nolint:errcheck

	// The cache is an optimisation, not a dependency: without Redis the
	// catalog goes uncached and logout revocation degrades to token expiry.
	if err := cache.Connect(ctx); err != nil {
		logger.Warn("redis unavailable, cache disabled", "error", err)
	} else if cache.RDB != nil {
		// Jobs survive restarts when Redis is up; the memory driver stays
		// the fallback otherwise.
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}

	storage.Connect()
	queue.UseMongo(database.DB())
	queue.StartWorkers(ctx, queueWorkers)

	if col := config.MongoLogCollection(); col != "" {
		sink, err := logger.AttachMongoSink(database.DB(), col)
		if err != nil {
			logger.Warn("log sink unavailable", "error", err)
		} else {
			defer sink.Close()
		}
	}

	hub := ws.NewHub()
	go hub.Run()

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           kernel.NewHTTP(hub),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
