package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"streamlane/pkg/config"
	"streamlane/pkg/database"
	"streamlane/pkg/jwt"
	"streamlane/pkg/logger"
	"streamlane/pkg/middleware"
	"streamlane/pkg/s3"
	videoHTTP "streamlane/services/video/internal/controller/http"
	"streamlane/services/video/internal/repo/persistent"
	"streamlane/services/video/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type App struct {
	cfg        *config.Config
	log        *logger.Logger
	db         *gorm.DB
	jwtService *jwt.Service
	s3Client   *s3.Client
	httpServer *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to connect to S3: %v (continuing without media storage)", err)
		s3Client = nil
	}

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	return &App{
		cfg:        cfg,
		log:        log,
		db:         db,
		jwtService: jwtService,
		s3Client:   s3Client,
	}, nil
}

func (a *App) Run() error {
	videoRepo := persistent.NewVideoRepository(a.db)

	var mediaStore usecase.MediaStore
	if a.s3Client != nil {
		mediaStore = a.s3Client
	}

	videoUseCase := usecase.NewVideoUseCase(videoRepo, mediaStore, a.log)
	videoHandler := videoHTTP.NewVideoHandler(videoUseCase, a.log)

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

	videos := r.Group("/videos")
	{
		// Reading a single video works anonymously for public/unlisted
		// content; the token only matters for private videos.
		videos.GET("/video-metadata/:id",
			middleware.OptionalAuthMiddleware(a.jwtService),
			videoHandler.GetVideo)

		protected := videos.Group("")
		protected.Use(middleware.AuthMiddleware(a.jwtService))
		{
			protected.POST("/video-metadata", videoHandler.CreateVideo)
			protected.GET("/video-metadata", videoHandler.ListMyVideos)
			protected.PUT("/video-metadata/:id", videoHandler.UpdateVideo)
			protected.DELETE("/video-metadata/:id", videoHandler.DeleteVideo)
			protected.POST("/video-metadata/:id/upload", videoHandler.UploadMedia)
		}
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Video service starting on port %s", a.cfg.ServerPort)
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
	a.log.Info("Shutting down video service...")
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

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Video service exited")
	return nil
}
