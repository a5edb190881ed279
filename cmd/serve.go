// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/hydrate/cliparse"
	"github.com/danielhkuo/hydrate/db"
	"github.com/danielhkuo/hydrate/router"
	"github.com/danielhkuo/hydrate/store"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the API and pages",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	handler, err := router.NewRouter(st, cfg)
	if err != nil {
		return err
	}

	server := &http.Server{
		Handler:           handler,
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening",
			"port", cfg.Port,
			"database", cfg.DatabaseType,
			"timezone", cfg.Timezone,
		)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	slog.Info("server closed")
	return nil
}

// openStore builds the store for cfg. SQL stores are migrated first; with no
// database URL the store starts but fails every call with ErrNotConfigured.
func openStore(ctx context.Context, cfg cliparse.Config) (store.Store, error) {
	if cfg.DatabaseType == cliparse.DatabaseMemory {
		return store.NewMemoryStore(), nil
	}
	if cfg.DatabaseURL == "" {
		return store.NewSQLStore(nil), nil
	}

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	if err := db.Migrate(ctx, conn, cfg.DatabaseType); err != nil {
		conn.Close()
		return nil, err
	}

	slog.Info("database ready", "type", cfg.DatabaseType)
	return store.NewSQLStore(conn), nil
}
