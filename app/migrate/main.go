package main

import (
	"context"
	"database/sql"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"medequip-system/migrations"
	"medequip-system/pkg/config"
	applogger "medequip-system/pkg/logger"
)

func main() {
	logger := applogger.NewLogger()
	defer logger.Sync()

	cfg := config.New()

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	db, err := sql.Open("pgx", cfg.Postgres.DSN)
	if err != nil {
		logger.Fatal("Failed to open database connection", zap.Error(err))
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		logger.Fatal("Failed to set migration dialect", zap.Error(err))
	}

	ctx := context.Background()
	if err := goose.RunContext(ctx, command, db, "."); err != nil {
		logger.Fatal("Migration command failed", zap.String("command", command), zap.Error(err))
	}

	logger.Info("Migration command finished", zap.String("command", command))
}
