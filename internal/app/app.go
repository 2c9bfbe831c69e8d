package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	inkwellHTTP "inkwell/internal/controller/http"
	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
	"inkwell/internal/usecase"
	"inkwell/pkg/config"
	"inkwell/pkg/logger"
	"inkwell/pkg/middleware"
	"inkwell/pkg/queue"
	"inkwell/pkg/s3"
	"inkwell/pkg/token"

	_ "inkwell/docs" // Swagger docs
)

// Run wires the platform together and serves HTTP until SIGINT/SIGTERM.
func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, s3Client *s3.Client, queueClient *queue.Client, redisClient *redis.Client) {
	tokenService := token.NewService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	// Initialize repositories
	accountRepo := persistent.NewAccountRepository(db)
	postRepo := persistent.NewPostRepository(db)
	commentRepo := persistent.NewCommentRepository(db)
	engagementRepo := persistent.NewEngagementRepository(db)
	newsletterRepo := persistent.NewNewsletterRepository(db)

	// Initialize use cases
	guard := usecase.NewGuard(tokenService, accountRepo, log)
	authUseCase := usecase.NewAuthUseCase(accountRepo, tokenService, s3Client, queueClient, log, cfg.BcryptCost, cfg.VerifyCodeTTL)
	accountUseCase := usecase.NewAccountUseCase(accountRepo, log)
	postUseCase := usecase.NewPostUseCase(postRepo, log)
	moderationUseCase := usecase.NewModerationUseCase(postRepo, accountRepo, log)
	engagementUseCase := usecase.NewEngagementUseCase(engagementRepo, postRepo, accountRepo, queueClient, log)
	commentUseCase := usecase.NewCommentUseCase(commentRepo, postRepo, queueClient, log)
	newsletterUseCase := usecase.NewNewsletterUseCase(newsletterRepo, log)

	// Initialize HTTP handlers
	authHandler := inkwellHTTP.NewAuthHandler(authUseCase, log)
	accountHandler := inkwellHTTP.NewAccountHandler(accountUseCase, engagementUseCase, log)
	postHandler := inkwellHTTP.NewPostHandler(postUseCase, engagementUseCase, log)
	moderationHandler := inkwellHTTP.NewModerationHandler(moderationUseCase, postUseCase, log)
	commentHandler := inkwellHTTP.NewCommentHandler(commentUseCase, log)
	newsletterHandler := inkwellHTTP.NewNewsletterHandler(newsletterUseCase, log)

	authLimiter := middleware.NewRateLimiter(redisClient, cfg.AuthRateLimit, cfg.AuthRateWindow)
	engageLimiter := middleware.NewRateLimiter(redisClient, cfg.EngageRateLimit, cfg.EngageRateWindow)

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

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/verify", authHandler.Verify)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
	}

	// Public reads; a valid token widens what a viewer can see.
	public := api.Group("")
	public.Use(middleware.OptionalAuthMiddleware(guard))
	{
		public.GET("/posts", postHandler.List)
		public.GET("/posts/:slug", postHandler.GetBySlug)
		public.GET("/comments/post/:id", commentHandler.ListByPost)
		public.POST("/newsletter/subscribe", newsletterHandler.Subscribe)
		public.POST("/newsletter/unsubscribe", newsletterHandler.Unsubscribe)
	}

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(guard))
	{
		authed.GET("/me", authHandler.Me)
		authed.PUT("/me", authHandler.UpdateProfile)
		authed.POST("/me/avatar", authHandler.UploadAvatar)
		authed.GET("/me/posts", postHandler.ListMine)
		authed.GET("/me/likes", postHandler.LikedPosts)
		authed.GET("/me/bookmarks", postHandler.BookmarkedPosts)
		authed.GET("/me/following", accountHandler.Following)
		authed.GET("/me/followers", accountHandler.Followers)

		authed.POST("/posts", postHandler.Create)
		authed.PUT("/posts/:id", postHandler.Update)
		authed.DELETE("/posts/:id", moderationHandler.Delete)
		authed.POST("/posts/:id/archive", moderationHandler.Archive)
		authed.POST("/posts/:id/comments", commentHandler.Create)
		authed.PUT("/comments/:id", commentHandler.Update)
		authed.DELETE("/comments/:id", commentHandler.Delete)
	}

	engage := api.Group("")
	engage.Use(middleware.AuthMiddleware(guard))
	engage.Use(engageLimiter.Middleware())
	{
		engage.POST("/posts/:id/like", postHandler.ToggleLike)
		engage.POST("/posts/:id/bookmark", postHandler.ToggleBookmark)
		engage.POST("/accounts/:id/follow", accountHandler.ToggleFollow)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(guard))
	admin.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleSuperAdmin))
	{
		admin.GET("/accounts/pending", accountHandler.ListPending)
		admin.POST("/accounts/:id/approve", accountHandler.Approve)
		admin.POST("/accounts/:id/reject", accountHandler.Reject)
		admin.POST("/accounts/:id/suspend", accountHandler.Suspend)
		admin.PUT("/accounts/:id/role", accountHandler.SetRole)
		admin.DELETE("/accounts/:id", accountHandler.Delete)

		admin.GET("/posts", moderationHandler.Queue)
		admin.POST("/posts/:id/publish", moderationHandler.Publish)
		admin.POST("/posts/:id/unpublish", moderationHandler.Unpublish)
		admin.POST("/posts/:id/archive", moderationHandler.Archive)
		admin.POST("/posts/:id/ban", moderationHandler.Ban)
		admin.POST("/posts/:id/unban", moderationHandler.Unban)
		admin.DELETE("/posts/:id", moderationHandler.Delete)
		admin.POST("/posts/bulk/publish", moderationHandler.BulkPublish)
		admin.POST("/posts/bulk/unpublish", moderationHandler.BulkUnpublish)
		admin.POST("/posts/bulk/archive", moderationHandler.BulkArchive)
		admin.POST("/posts/bulk/delete", moderationHandler.BulkDelete)

		admin.GET("/newsletter/subscribers", newsletterHandler.ListSubscribers)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Server starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	if queueClient != nil {
		queueClient.Close()
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
