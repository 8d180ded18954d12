package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tikifyHTTP "tikify/internal/controller/http"
	"tikify/internal/hdcache"
	"tikify/internal/repo/persistent"
	"tikify/internal/tikwm"
	"tikify/internal/usecase"
	"tikify/pkg/config"
	"tikify/pkg/jwt"
	"tikify/pkg/logger"
	"tikify/pkg/middleware"
	"tikify/pkg/queue"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "tikify/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize repositories
	catalogRepo := persistent.NewCatalogRepository(db)
	linkRepo := persistent.NewLinkRepository(db)
	accountRepo := persistent.NewAccountRepository(db)

	// Upstream client and HD cache
	tikwmClient := tikwm.NewClient(log, time.Duration(cfg.TikwmTimeoutSecs)*time.Second, tikwm.WithBaseURL(cfg.TikwmBaseURL))
	var hdCache hdcache.Cache
	if redisClient != nil {
		hdCache = hdcache.NewRedis(redisClient)
	} else {
		hdCache = hdcache.NewMemory()
	}

	// Initialize use cases
	catalogUseCase := usecase.NewCatalogUseCase(catalogRepo, linkRepo, tikwmClient, hdCache, queueClient, log, cfg.TikwmPageSize, cfg.TikwmMaxItems, cfg.DefaultAvatarURL)
	resolverUseCase := usecase.NewResolverUseCase(tikwmClient, linkRepo, hdCache, log)
	authUseCase := usecase.NewAuthUseCase(accountRepo, jwtService, log)

	// Initialize HTTP handlers
	mediaClient := &http.Client{Timeout: time.Duration(cfg.TikwmTimeoutSecs) * time.Second}
	catalogHandler := tikifyHTTP.NewCatalogHandler(catalogUseCase, hdCache, mediaClient, log)
	resolverHandler := tikifyHTTP.NewResolverHandler(resolverUseCase, log)
	authHandler := tikifyHTTP.NewAuthHandler(authUseCase, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	if redisClient != nil {
		api.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))
	}

	// Public routes
	{
		api.POST("/invite-code", authHandler.InviteCode)
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		api.GET("/users", catalogHandler.Users)
		api.GET("/latest", catalogHandler.Latest)
		api.GET("/top", catalogHandler.Top)
		api.POST("/view/:video_id", catalogHandler.View)
	}

	// Routes that talk to the upstream require a bearer token
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.GET("/search", catalogHandler.Search)
		protected.POST("/batch", catalogHandler.Batch)
		protected.POST("/resolve", resolverHandler.Resolve)
		protected.POST("/saved", resolverHandler.SaveLink)
		protected.GET("/saved", resolverHandler.ListSaved)
		protected.GET("/collection", resolverHandler.ListCollection)
	}

	r.GET("/download", catalogHandler.Download)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Tikify starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection
	if queueClient != nil {
		queueClient.Close()
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Tikify exited")
}
