// Package cli provides common initialization utilities shared by
// cmd/expenses and cmd/expense-server.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"expensetracker/internal/amqp"
	"expensetracker/internal/config"
	applog "expensetracker/internal/log"
	"expensetracker/internal/report"
)

// SetupLogger builds the process logger at the given level, writing to out,
// and sets it as the slog default. An unknown level falls back to info.
func SetupLogger(level string, out io.Writer) *applog.Logger {
	cfg := applog.DefaultConfig()
	if lvl, err := applog.ParseLevel(level); err == nil {
		cfg.Level = lvl
	}
	if out != nil {
		cfg.Output = out
	}
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration, applies overrides in order and
// checks the result with validate, typically (*config.Config).ValidateClient
// or (*config.Config).ValidateServer. Returns the config or exits the process
// on validation failure.
func LoadAndValidateConfig(logger *applog.Logger, validate func(*config.Config) error, overrides ...func(*config.Config)) *config.Config {
	cfg := config.Load()
	for _, o := range overrides {
		o(cfg)
	}
	if err := validate(cfg); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// NewReporter always logs failures and, when AMQP is configured, also
// publishes them. A broker that cannot be reached is logged and skipped.
// The returned cleanup closes the broker connection.
func NewReporter(cfg *config.Config, logger *applog.Logger) (report.Reporter, func()) {
	logReporter := report.NewLogReporter(logger)
	if !cfg.AMQPEnabled() {
		return logReporter, func() {}
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		logger.Warn("AMQP unavailable, error reports will only be logged",
			applog.FieldError, err.Error())
		return logReporter, func() {}
	}
	cleanup := func() {
		if err := client.Close(); err != nil {
			logger.Warn("Failed to close AMQP client", applog.FieldError, err.Error())
		}
	}
	return report.Multi(logReporter, report.NewAMQPReporter(client, logger)), cleanup
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(logger *applog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
