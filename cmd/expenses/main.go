// Command expenses lists and edits records held by the expenses service.
package main

import (
	"flag"
	"os"
	"path"
	"strings"

	"github.com/google/subcommands"

	"expensetracker/internal/api"
	"expensetracker/internal/cli"
	"expensetracker/internal/config"
	applog "expensetracker/internal/log"
)

var (
	apiURL   = flag.String("api-url", "", "Base URL of the expenses service. Overrides EXPENSES_API_URL.")
	currency = flag.String("currency", "", "ISO 4217 code used to format totals. Overrides CURRENCY.")
	logLevel = flag.String("log-level", "", "debug, info, warn or error. Overrides LOG_LEVEL.")
)

func main() {
	cli.LoadEnvFile()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")

	app := &cli.App{Out: os.Stdout}
	cli.Register(commander, app)
	flag.Parse()

	// stdout carries command output
	bootLogger := cli.SetupLogger("info", os.Stderr)
	cfg := cli.LoadAndValidateConfig(bootLogger, (*config.Config).ValidateClient,
		flagOverrides(*apiURL, *currency, *logLevel))
	logger := cli.SetupLogger(cfg.LogLevel, os.Stderr).WithComponent(applog.ComponentCLI)

	client, err := api.NewClient(cfg.APIURL, api.WithLogger(logger))
	if err != nil {
		logger.Error("Invalid API URL", applog.FieldBaseURL, cfg.APIURL, applog.FieldError, err)
		os.Exit(1)
	}
	reporter, cleanup := cli.NewReporter(cfg, logger)

	app.Remote = client
	app.Reporter = reporter
	app.Logger = logger
	app.Currency = cfg.Currency

	ctx, cancel := cli.SignalContext(logger)
	status := commander.Execute(ctx)
	cancel()
	cleanup()
	os.Exit(int(status))
}

// flagOverrides applies the non-empty global flags on top of the environment.
func flagOverrides(apiURL, currency, logLevel string) func(*config.Config) {
	return func(c *config.Config) {
		if apiURL != "" {
			c.APIURL = apiURL
		}
		if currency != "" {
			c.Currency = strings.ToUpper(currency)
		}
		if logLevel != "" {
			c.LogLevel = logLevel
		}
	}
}
