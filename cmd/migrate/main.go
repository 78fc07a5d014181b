package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"

	"boxbook/internal/pkg/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func newMigrate(cfg config.DBConfig, sourcePath string) (*migrate.Migrate, error) {
	databaseURL := fmt.Sprintf("pgx5://%s:%s@%s/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		net.JoinHostPort(cfg.Host, cfg.Port),
		cfg.DBName,
		cfg.SSLMode,
	)

	mig, err := migrate.New("file://"+sourcePath, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return mig, nil
}

func run(cfg config.DBConfig, sourcePath, action string) error {
	mig, err := newMigrate(cfg, sourcePath)
	if err != nil {
		return err
	}
	defer mig.Close()

	switch action {
	case "up":
		if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		slog.Info("migrations applied")
	case "down":
		if err := mig.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
		slog.Info("migration rolled back")
	case "drop":
		if err := mig.Drop(); err != nil {
			return fmt.Errorf("failed to drop database: %w", err)
		}
		slog.Info("database dropped")
	default:
		return fmt.Errorf("unknown action %q (want up, down or drop)", action)
	}
	return nil
}

func main() {
	source := flag.String("source", "migrations", "path to migration files")
	flag.Parse()

	action := flag.Arg(0)
	if action == "" {
		action = "up"
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := run(cfg.DB, *source, action); err != nil {
		slog.Error("migration failed", "action", action, "error", err)
		os.Exit(1)
	}
}
