package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillgauge/internal/api"
	"github.com/abhisek/skillgauge/internal/assessment"
	"github.com/abhisek/skillgauge/internal/config"
	"github.com/abhisek/skillgauge/internal/llm"
	"github.com/abhisek/skillgauge/internal/roles"
	"github.com/abhisek/skillgauge/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open oracle log: %w", err)
	}
	defer st.Close()

	ctx := cmd.Context()

	provider, err := llm.NewProviderWithFallback(ctx, cfg.Oracle, st)
	if err != nil {
		return fmt.Errorf("oracle provider not configured: %w", err)
	}
	logger.Info("oracle provider ready", "model", provider.ModelID())

	var roleMap roles.Map
	if cfg.Roles.Path != "" {
		roleMap, err = roles.Load(cfg.Roles.Path)
		if err != nil {
			return fmt.Errorf("load roles: %w", err)
		}
		logger.Info("role table loaded", "path", cfg.Roles.Path, "roles", len(roleMap))
	}

	svc := assessment.NewService(provider, assessment.DefaultConfig(), logger)
	server := api.NewServer(cfg.Server, svc, roleMap, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Server.RequestTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
