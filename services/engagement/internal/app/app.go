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
	"streamlane/pkg/queue"
	engagementHTTP "streamlane/services/engagement/internal/controller/http"
	"streamlane/services/engagement/internal/repo/persistent"
	"streamlane/services/engagement/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	jwtService  *jwt.Service
	queueClient *queue.Client
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
		queueClient = nil
	}

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		jwtService:  jwtService,
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	likeRepo := persistent.NewLikeRepository(a.db)
	subscriptionRepo := persistent.NewSubscriptionRepository(a.db)
	commentRepo := persistent.NewCommentRepository(a.db)

	var notifier usecase.Notifier
	if a.queueClient != nil {
		notifier = a.queueClient
	}

	likeUseCase := usecase.NewLikeUseCase(likeRepo)
	subscriptionUseCase := usecase.NewSubscriptionUseCase(subscriptionRepo, notifier, a.log)
	commentUseCase := usecase.NewCommentUseCase(commentRepo, likeRepo)

	handler := engagementHTTP.NewEngagementHandler(likeUseCase, subscriptionUseCase, commentUseCase, a.log)

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

	engage := r.Group("/engage")
	{
		engage.GET("/likes/count/:video_id", handler.GetLikeCount)
		engage.GET("/comments", handler.ListComments)
		engage.GET("/comments/:comment_id", handler.GetComment)
		engage.GET("/subscribers/:channel_id", handler.GetSubscribers)

		protected := engage.Group("")
		protected.Use(middleware.AuthMiddleware(a.jwtService))
		{
			protected.POST("/like/video/:video_id", handler.RateVideo)
			protected.GET("/likes/user", handler.ListUserLikes)

			protected.POST("/subscribe/:channel_id", handler.Subscribe)
			protected.DELETE("/unsubscribe/:channel_id", handler.Unsubscribe)
			protected.GET("/subscriptions/me", handler.ListMySubscriptions)

			protected.POST("/comments", handler.CreateComment)
			protected.PUT("/comments/:comment_id", handler.UpdateComment)
			protected.DELETE("/comments/:comment_id", handler.DeleteComment)
		}
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Engagement service starting on port %s", a.cfg.ServerPort)
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
	a.log.Info("Shutting down engagement service...")
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

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Engagement service exited")
	return nil
}
