package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"warbler/backend/internal/cache"
	"warbler/backend/internal/config"
	"warbler/backend/internal/database"
	"warbler/backend/internal/handler"
	"warbler/backend/internal/hub"
	"warbler/backend/internal/middleware"
	"warbler/backend/internal/store"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "warbler/backend/docs" // registers the generated spec with swag

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Warbler
// @version         1.0
// @description     Server-rendered social network with follows, blocks and direct messages.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := middleware.NewLogger(cfg.IsProduction())
	slog.SetDefault(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	rdb := cache.Connect(context.Background(), cfg.RedisURL)
	if rdb == nil {
		slog.Warn("redis unavailable, message rate limiting disabled")
	}

	metrics := middleware.NewMetrics()

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logging(logger), metrics.Middleware())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	router.GET("/metrics", metrics.Handler())

	h := handler.New(store.New(db), hub.NewHub(), handler.Config{
		JWTSecret:     cfg.JWTSecret,
		SecureCookies: cfg.IsProduction(),
		Registerer:    metrics.Registry(),
		SendLimiter:   middleware.RateLimit(rdb, cfg.MessageRateLimit, time.Minute, "messages:send"),
	})
	if err := h.Routes(router); err != nil {
		slog.Error("failed to load templates", "error", err)
		os.Exit(1)
	}

	addr := ":" + cfg.Port
	slog.Info("server is running", "addr", addr)
	slog.Info("swagger UI is available", "url", "http://localhost"+addr+"/swagger/index.html")
	if err := router.Run(addr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
