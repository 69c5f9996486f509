package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"shareit/cmd"
	"shareit/internal/wire"
	"shareit/pkg/database"
	"shareit/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if config.Database.AutoMigrate {
		if err := database.EnsureSchema(ctx, db); err != nil {
			logger.Fatal("Failed to apply schema", zap.Error(err))
		}
		logger.Info("Schema is up to date")
	}

	app := wire.Wiring(db, logger)

	shutdownTimeout := time.Duration(config.App.ShutdownTimeout) * time.Second
	if err := cmd.APIServer(ctx, app.Router, config.App.Port, shutdownTimeout, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return
	}

	logger.Info("Server stopped")
}
