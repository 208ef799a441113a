package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/football-scout/internal/app"
	"github.com/riskibarqy/football-scout/internal/config"
	"github.com/riskibarqy/football-scout/internal/infrastructure/importer/sqlite"
	"github.com/riskibarqy/football-scout/internal/platform/logging"
	"github.com/riskibarqy/football-scout/internal/usecase"
)

type options struct {
	path     string
	leagueID string
	dryRun   bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	opts, err := parseOptions(cfg, os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", "football-scout-importer")
	logging.SetDefault(logger)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, logger, os.Stdout); err != nil {
		logger.Error("import failed", "error", err)
		logger.Sync()
		os.Exit(1)
	}
}

// parseOptions lets flags override IMPORT_SQLITE_PATH and IMPORT_LEAGUE_ID.
func parseOptions(cfg config.Config, args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("importer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := options{}
	fs.StringVar(&opts.path, "sqlite", cfg.ImportSQLitePath, "path to the scraper SQLite database")
	fs.StringVar(&opts.leagueID, "league", cfg.ImportLeagueID, "league id the extract belongs to")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "read and validate without writing")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	opts.path = strings.TrimSpace(opts.path)
	opts.leagueID = strings.TrimSpace(opts.leagueID)
	if opts.path == "" {
		fmt.Fprintln(stderr, "-sqlite or IMPORT_SQLITE_PATH is required")
		return options{}, fmt.Errorf("sqlite path is required")
	}
	if opts.leagueID == "" {
		fmt.Fprintln(stderr, "-league or IMPORT_LEAGUE_ID is required")
		return options{}, fmt.Errorf("league id is required")
	}
	return opts, nil
}

func run(ctx context.Context, cfg config.Config, opts options, logger *logging.Logger, out io.Writer) error {
	if !opts.dryRun && cfg.DataBackend != config.BackendPostgres {
		return fmt.Errorf("DATA_BACKEND=%s cannot persist an import; use postgres or -dry-run", cfg.DataBackend)
	}

	src, err := sqlite.Open(ctx, opts.path, opts.leagueID)
	if err != nil {
		return err
	}
	defer src.Close()

	components, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	defer func() {
		if err := components.Close(); err != nil {
			logger.Warn("close components failed", "error", err)
		}
	}()

	report, err := components.Importer.Run(ctx, src, usecase.ImportInput{DryRun: opts.dryRun})
	if err != nil {
		return err
	}

	payload, err := sonic.ConfigStd.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	_, err = fmt.Fprintln(out, string(payload))
	return err
}
