package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/nilamroots/nilamroots-api/initializers"
	"github.com/nilamroots/nilamroots-api/middlewares"
	"github.com/nilamroots/nilamroots-api/routes"
	"go.uber.org/zap"
)

func init() {
	if err := initializers.LoadEnv(); err != nil {
		log.Fatal(err)
	}

	cfg, err := initializers.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	initializers.Config = cfg
	initializers.InitLogger(cfg)

	if err := initializers.ConnectToDB(cfg); err != nil {
		initializers.Logger.Fatal("Database connection failed", zap.Error(err))
	}
	if err := initializers.SyncDatabase(); err != nil {
		initializers.Logger.Fatal("Database migration failed", zap.Error(err))
	}
	if cfg.SeedProducts {
		if _, err := initializers.SeedProducts(initializers.DB); err != nil {
			initializers.Logger.Fatal("Seeding failed", zap.Error(err))
		}
	}

	ctx := context.Background()
	initializers.InitPayments(cfg)
	if err := initializers.InitStorage(ctx, cfg); err != nil {
		initializers.Logger.Fatal("File storage setup failed", zap.Error(err))
	}
	if err := initializers.InitRevocations(ctx, cfg); err != nil {
		initializers.Logger.Fatal("Token revocation store setup failed", zap.Error(err))
	}
}

func main() {
	cfg := initializers.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	defer initializers.Logger.Sync()

	server := gin.New()
	server.Use(
		middlewares.RequestID(),
		middlewares.RequestLogger(initializers.Logger),
		middlewares.Recovery(initializers.Logger),
		middlewares.CORS(cfg.CORSOrigins),
	)

	uploadDir := ""
	if cfg.StorageDriver == "local" {
		uploadDir = cfg.UploadDir
	}
	routes.RegisterRoutes(server, uploadDir)

	initializers.Logger.Info("Server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := server.Run(":" + cfg.Port); err != nil {
		initializers.Logger.Fatal("Server stopped", zap.Error(err))
	}
}
