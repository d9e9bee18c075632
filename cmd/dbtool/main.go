package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"
	"vehicle-allocation-service/internal/adapters/catalogfile"
	"vehicle-allocation-service/internal/adapters/repositories"
	"vehicle-allocation-service/internal/config"
	"vehicle-allocation-service/internal/platform/db"
	"vehicle-allocation-service/internal/platform/logger"

	"go.uber.org/zap"
)

func main() {
	if err := config.Load(); err != nil {
		exit(err)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		exit(err)
	}

	log, err := logger.Init("dbtool", cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		exit(err)
	}
	defer log.Sync()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer conn.Close()

	seedPath := cfg.SeedPath
	if len(os.Args) > 1 {
		seedPath = os.Args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := initAndSeed(ctx, log, conn, cfg.DBDriver, seedPath); err != nil {
		log.Fatal("dbtool failed", zap.Error(err))
	}
}

func exit(err error) {
	fmt.Fprintln(os.Stderr, "dbtool:", err)
	os.Exit(1)
}

func initAndSeed(ctx context.Context, log *zap.Logger, conn *sql.DB, driver, seedPath string) error {
	log.Info("initializing database schema", zap.String("driver", driver))
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return err
	}
	log.Info("schema ready")

	types, err := catalogfile.Load(seedPath)
	if err != nil {
		return err
	}

	log.Info("seeding vehicle types", zap.String("path", seedPath), zap.Int("count", len(types)))
	if err := repositories.SeedVehicleTypes(ctx, conn, driver, types); err != nil {
		return err
	}
	log.Info("seeding complete")

	return nil
}
