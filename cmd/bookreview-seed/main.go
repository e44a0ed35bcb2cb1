package main

import (
	"context"
	stdLog "log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Astemirdum/bookreview-service/bookreview/config"
	"github.com/Astemirdum/bookreview-service/bookreview/migrations"
	"github.com/Astemirdum/bookreview-service/bookreview/seed"
	"github.com/Astemirdum/bookreview-service/pkg/logger"
	"github.com/Astemirdum/bookreview-service/pkg/postgres"
)

func main() {
	if err := godotenv.Load(); err != nil {
		stdLog.Println("no .env file, using process environment")
	}
	cfg := config.NewConfig(config.WithLogLevel(zapcore.InfoLevel))
	log := logger.NewLogger(cfg.Log, "bookreview-seed")
	defer log.Sync() //nolint:errcheck

	ctx := context.Background()
	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	defer db.Close()

	s, err := seed.NewFromPool(db, log)
	if err != nil {
		log.Fatal("seed init", zap.Error(err))
	}
	if _, err := s.Run(ctx); err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}
}
