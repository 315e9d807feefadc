package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"finbalance/migrations"
	"finbalance/pkg/config"
	"finbalance/pkg/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

func main() {
	steps := flag.Int("steps", 1, "number of migrations to roll back with down")
	flag.Parse()
	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get().With(zap.String("command", command))

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		log.Fatal("Failed to open embedded migrations", zap.Error(err))
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.Database.URL("pgx5"))
	if err != nil {
		log.Fatal("Migration instance creation failed", zap.Error(err))
	}
	defer m.Close()

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-*steps)
	case "version":
		version, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			log.Info("No migrations applied yet")
			return
		}
		if verr != nil {
			log.Fatal("Failed to read schema version", zap.Error(verr))
		}
		log.Info("Schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return
	default:
		log.Fatal("Unknown command, expected up, down or version")
	}

	switch {
	case errors.Is(err, migrate.ErrNoChange):
		log.Info("No migrations to apply")
	case err != nil:
		log.Fatal("Migration failed", zap.Error(err))
	default:
		log.Info("Migrations applied")
	}
}
