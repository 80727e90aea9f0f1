package main

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/oduwoleeyinojuoluwa44/Notification-Services-Suite/internal/cache"
	"github.com/oduwoleeyinojuoluwa44/Notification-Services-Suite/internal/config"
	"github.com/oduwoleeyinojuoluwa44/Notification-Services-Suite/internal/domain"
	"github.com/oduwoleeyinojuoluwa44/Notification-Services-Suite/internal/handler"
	"github.com/oduwoleeyinojuoluwa44/Notification-Services-Suite/internal/repository"
	"github.com/oduwoleeyinojuoluwa44/Notification-Services-Suite/internal/service"
	"github.com/oduwoleeyinojuoluwa44/Notification-Services-Suite/pkg/database"
	"github.com/oduwoleeyinojuoluwa44/Notification-Services-Suite/pkg/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.L().Fatal().Err(err).Msg("failed to load config")
	}

	log.Init(log.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Pretty,
		ServiceName: "user-service",
	})
	logger := log.L()

	// Connect to database using GORM
	dbConfig := &database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		FilePath:        cfg.Database.FilePath,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	db, err := database.New(dbConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Auto-migrate
	if err := database.AutoMigrate(db, &domain.UserModel{}, &domain.UserPreferenceModel{}); err != nil {
		logger.Fatal().Err(err).Msg("failed to auto-migrate")
	}
	logger.Info().Msg("database migration completed")

	// Initialize preference cache
	prefCache, err := cache.NewRedisPreferenceCache(cfg.Redis, cfg.Cache.Prefix)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer prefCache.Close()

	// Initialize repository and service
	userRepo := repository.NewGormUserRepository(db)
	userService := service.NewUserService(userRepo, prefCache, cfg.Cache.TTL)

	// Initialize HTTP handler
	httpHandler := handler.NewHandler(userService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(log.GinMiddleware(logger))

	// Register routes
	httpHandler.RegisterRoutes(r)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info().Str("addr", addr).Str("driver", cfg.Database.Driver).Msg("user service starting")
	if err := r.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
