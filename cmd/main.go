package main

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/talentshowcase/search-service/internal/cache"
	"github.com/talentshowcase/search-service/internal/config"
	"github.com/talentshowcase/search-service/internal/domain"
	"github.com/talentshowcase/search-service/internal/handler"
	"github.com/talentshowcase/search-service/internal/repository"
	"github.com/talentshowcase/search-service/internal/service"
	"github.com/talentshowcase/search-service/pkg/database"
	"github.com/talentshowcase/search-service/pkg/jwt"
	pkglog "github.com/talentshowcase/search-service/pkg/log"
	"github.com/talentshowcase/search-service/pkg/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize structured logger
	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Pretty,
		ServiceName: "search-service",
	})
	logger := pkglog.L()

	// Initialize database
	db, err := database.New(&database.Config{
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
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	logger.Info().Str("driver", cfg.Database.Driver).Msg("database connected")

	if err := database.AutoMigrate(db, domain.AllModels()...); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	// Initialize Redis cache
	searchCache, err := cache.NewRedisSearchCache(cache.RedisOptions{
		Address:  cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, cfg.Cache.Prefix)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer searchCache.Close()
	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")

	// Initialize stores and service
	stores := repository.NewGormStores(db)
	searchService := service.NewSearchService(stores, searchCache, cfg.Cache.TTL)

	// Initialize HTTP handler
	httpHandler := handler.NewHandler(searchService)

	// Optional authentication: anonymous searches are allowed, but a valid
	// token personalizes community results.
	auth := middleware.NewAuthMiddleware(jwt.NewVerifier(cfg.JWT.Secret, cfg.JWT.Issuer))

	// Setup Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))
	r.Use(auth.OptionalAuth())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Register routes
	httpHandler.RegisterRoutes(r)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info().Str("addr", addr).Msg("search-service starting")
	if err := r.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
