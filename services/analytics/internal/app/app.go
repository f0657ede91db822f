package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"streamlane/pkg/cache"
	"streamlane/pkg/config"
	"streamlane/pkg/database"
	"streamlane/pkg/jwt"
	"streamlane/pkg/logger"
	"streamlane/pkg/middleware"
	analyticsHTTP "streamlane/services/analytics/internal/controller/http"
	"streamlane/services/analytics/internal/repo/persistent"
	"streamlane/services/analytics/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	jwtService  *jwt.Service
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		return nil, err
	}

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		jwtService:  jwtService,
	}, nil
}

func (a *App) Run() error {
	analyticsRepo := persistent.NewAnalyticsRepository(a.db)
	analyticsUseCase := usecase.NewAnalyticsUseCase(analyticsRepo)
	handler := analyticsHTTP.NewAnalyticsHandler(analyticsUseCase, a.log)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	analytics := r.Group("/analytics")
	{
		// Tracking accepts anonymous traffic; a token only attributes the
		// event to a user. The limiter keeps a single player (or scraper)
		// from flooding the event tables.
		track := analytics.Group("/track")
		track.Use(middleware.OptionalAuthMiddleware(a.jwtService))
		track.Use(middleware.RateLimitMiddleware(a.redisClient, 120, time.Minute))
		{
			track.POST("/view", handler.TrackView)
			track.POST("/engagement", handler.TrackEngagement)
		}

		get := analytics.Group("/get/analytics")
		get.Use(middleware.AuthMiddleware(a.jwtService))
		{
			get.GET("/user", handler.GetUserAnalytics)
			get.GET("/admin/overview",
				middleware.RequireRole("admin"),
				handler.GetAdminOverview)
			get.GET("/:video_id", handler.GetVideoAnalytics)
		}
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Analytics service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down analytics service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Analytics service exited")
	return nil
}
