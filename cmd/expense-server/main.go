// Command expense-server is a reference implementation of the expenses
// service.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"expensetracker/internal/backend"
	"expensetracker/internal/cli"
	"expensetracker/internal/config"
	apphttp "expensetracker/internal/http"
	applog "expensetracker/internal/log"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger("info", os.Stdout)
	cfg := cli.LoadAndValidateConfig(logger, (*config.Config).ValidateServer)
	logger = cli.SetupLogger(cfg.LogLevel, os.Stdout)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}
	res, err := backend.NewFactory(logger).CreateBackend(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Failed to create backend", applog.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	ctx, cancel := cli.SignalContext(logger)
	err = serve(ctx, apphttp.NewServer(":"+cfg.Port, res.Backend, logger), logger)
	cancel()
	if cerr := res.Cleanup(); cerr != nil {
		logger.Error("Backend cleanup failed", applog.FieldError, cerr)
	}
	if err != nil {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

// serve runs srv until ctx is cancelled or the listener fails.
func serve(ctx context.Context, srv *apphttp.Server, logger *applog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting expense server", "addr", srv.Addr, applog.FieldOperation, applog.OpStartup)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
