// main.go
package main

import (
	"context"
	"database/sql"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"staffly/cmd"
	"staffly/internal/data/repository"
	"staffly/internal/usecase"
	"staffly/internal/wire"
	"staffly/migrations"
	"staffly/pkg/database"
	"staffly/pkg/storage"
	"staffly/pkg/utils"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
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

	// Run migrations over database/sql; the pool below handles live traffic.
	migrateDB, err := sql.Open("pgx", database.DSN(config.Database))
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := migrations.Migrate(migrateDB); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	migrateDB.Close()

	logger.Info("Migrations applied")

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Seed the first admin account when none exists.
	if err := usecase.EnsureBootstrapAdmin(context.Background(), repos.User, config.Bootstrap, logger); err != nil {
		logger.Fatal("Failed to bootstrap admin account", zap.Error(err))
	}

	avatars, err := storage.NewAvatarStore(config.Storage.AvatarDir, logger)
	if err != nil {
		logger.Fatal("Failed to prepare avatar storage", zap.Error(err))
	}

	// Wire all dependencies
	app := wire.Wiring(repos, config, avatars, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
