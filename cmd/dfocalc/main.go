// Command dfocalc evaluates equipment snapshot bundles and prints the
// damage or buff report of each as JSON.
//
// Usage:
//
//	dfocalc [-config path] [-workers n] [-o file] bundle.json...
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"

	"github.com/udisondev/dfocalc/internal/batch"
	"github.com/udisondev/dfocalc/internal/config"
	"github.com/udisondev/dfocalc/internal/db"
	"github.com/udisondev/dfocalc/internal/engine"
	"github.com/udisondev/dfocalc/internal/ingest"
	"github.com/udisondev/dfocalc/internal/model"
)

const ConfigPath = "config/dfocalc.yaml"

var errNoInput = errors.New("no bundle files given")

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

// row is one entry of the JSON output.
type row struct {
	Source string         `json:"source"`
	Error  string         `json:"error,omitempty"`
	Report *engine.Report `json:"report,omitempty"`
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	// .env is optional
	_ = godotenv.Load()

	fs := flag.NewFlagSet("dfocalc", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "config file (default $DFOCALC_CONFIG or "+ConfigPath+")")
	workers := fs.Int("workers", 0, "parallel evaluations (overrides config)")
	outPath := fs.String("o", "", "write JSON to file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	path := *cfgPath
	if path == "" {
		path = ConfigPath
		if p := os.Getenv("DFOCALC_CONFIG"); p != "" {
			path = p
		}
	}
	cfg, err := config.LoadCalculator(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Level(),
	})))
	slog.Debug("config loaded", "path", path, "workers", cfg.Workers, "cleansing_cdr", cfg.CleansingCDR, "db", cfg.Database.Enabled)

	sources := fs.Args()
	if len(sources) == 0 {
		return errNoInput
	}

	load := func(_ context.Context, src string) (*model.EquipmentSnapshot, error) {
		return ingest.ReadFile(src)
	}
	outcomes, err := batch.Run(ctx, sources, load, cfg.Workers, engine.Options{CleansingCDR: cfg.CleansingCDR})
	if err != nil {
		return err
	}

	rows := make([]row, len(outcomes))
	reports := make([]engine.Report, 0, len(outcomes))
	for i, o := range outcomes {
		rows[i].Source = o.Source
		if o.Err != nil {
			slog.Warn("skipping bundle", "source", o.Source, "err", o.Err)
			rows[i].Error = o.Err.Error()
			continue
		}
		rows[i].Report = &outcomes[i].Report
		reports = append(reports, o.Report)
	}

	if err := writeRows(stdout, *outPath, rows); err != nil {
		return err
	}

	if cfg.Database.Enabled && len(reports) > 0 {
		if err := save(ctx, cfg.Database, reports); err != nil {
			return err
		}
	}
	return nil
}

func writeRows(stdout io.Writer, path string, rows []row) error {
	w := stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}

	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("writing reports: %w", err)
	}
	return nil
}

func save(ctx context.Context, cfg config.DatabaseConfig, reports []engine.Report) error {
	dsn := cfg.DSN()
	version, err := db.RunMigrations(ctx, dsn)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Debug("database migrations applied", "version", version)

	database, err := db.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	if err := database.SaveReports(ctx, reports); err != nil {
		return fmt.Errorf("saving reports: %w", err)
	}
	slog.Info("reports saved", "count", len(reports))
	return nil
}
