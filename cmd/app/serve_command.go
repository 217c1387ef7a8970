package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appcmd "baggage/cmd"
	"baggage/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and websocket API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err = cfg.Validate(); err != nil {
				return err
			}
			logger := ctx.logger

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if migrate {
				if err = postgres.Migrate(cfg.DSN(), logger); err != nil {
					return err
				}
			}

			db, err := ctx.openDB(cfg)
			if err != nil {
				return err
			}
			app, err := appcmd.NewCompositionRoot(cfg, db, logger)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := app.Close(); closeErr != nil {
					logger.Error("shutdown", "error", closeErr)
				}
			}()

			router, err := app.CreateRouter(runCtx)
			if err != nil {
				return err
			}

			jobManager := app.CreateJobManager()
			if err = jobManager.StartAll(); err != nil {
				return err
			}
			defer jobManager.StopAll()

			addr := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
			serveErr := make(chan error, 1)
			go func() {
				logger.Info("http server listening", "addr", addr)
				serveErr <- router.Start(addr)
			}()

			select {
			case <-runCtx.Done():
				logger.Info("shutting down")
			case err = <-serveErr:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("http server: %w", err)
				}
				return nil
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err = router.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("http shutdown: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "Apply pending migrations before serving")
	return cmd
}
