package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"schema-naming/internal/config"
	"schema-naming/internal/convention"
	"schema-naming/internal/introspect"
	"schema-naming/internal/logging"
	"schema-naming/internal/model"
	"schema-naming/internal/schemafile"
)

var (
	// Version is set at build time via -ldflags "-X main.Version=...".
	Version = "dev"
	Commit  = "none"
)

func main() {
	if err := run(); err != nil {
		slog.Error("schema-naming error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	pflag.Bool("version", false, "Print version and exit")
	plan := pflag.Bool("plan", false, "Introspect the database and print a rename plan instead of the name report")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if showVersion, _ := pflag.CommandLine.GetBool("version"); showVersion {
		fmt.Printf("schema-naming %s (%s)\n", Version, Commit)
		return nil
	}

	logger := logging.NewLogger(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}).WithRunID(uuid.NewString())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	doc, err := schemafile.Load(cfg.Schema.File)
	if err != nil {
		return err
	}

	conventions, err := convention.FromConfig(cfg.Naming, logger.Logger)
	if err != nil {
		return fmt.Errorf("failed to build conventions: %w", err)
	}

	b := model.NewBuilder(conventions)
	if err := schemafile.Replay(doc, b); err != nil {
		return fmt.Errorf("failed to apply schema definition: %w", err)
	}
	m := b.Finalize()

	logger.Info("model finalized",
		slog.String("schema_file", cfg.Schema.File),
		slog.Int("entities", len(m.EntityTypes())))

	if *plan {
		return printRenamePlan(ctx, cfg, logger, m)
	}
	return printReport(os.Stdout, m)
}

func printRenamePlan(ctx context.Context, cfg *config.Config, logger *logging.Logger, m *model.Model) error {
	if cfg.Database.Database == "" {
		return fmt.Errorf("database.database must be set for rename planning")
	}

	db, err := introspect.Open(cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	actual, err := introspect.NewReader(db, logger.Logger).Read(ctx, cfg.Database.Database)
	if err != nil {
		return err
	}

	statements := introspect.BuildRenamePlan(m, actual)
	if len(statements) == 0 {
		logger.Info("database already matches the resolved names")
		return nil
	}
	for _, stmt := range statements {
		fmt.Println(stmt)
	}
	return nil
}
