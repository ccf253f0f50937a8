package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"fintrack/migrations"
	"fintrack/pkg/config"
	"fintrack/pkg/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		appLogger.Fatal("Failed to load migrations", zap.Error(err))
	}

	dsn := fmt.Sprintf(
		"pgx5://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Database.User, cfg.Database.Password, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.DBName, cfg.Database.SSLMode,
	)

	m, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		appLogger.Fatal("Failed to initialize migrator", zap.Error(err))
	}
	defer m.Close()

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	default:
		appLogger.Fatal("Unknown direction; use up or down", zap.String("direction", direction))
	}

	if errors.Is(err, migrate.ErrNoChange) {
		appLogger.Info("No migrations to apply")
		return
	}
	if err != nil {
		appLogger.Fatal("Migration failed", zap.Error(err))
	}

	appLogger.Info("Migrations applied", zap.String("direction", direction))
}
