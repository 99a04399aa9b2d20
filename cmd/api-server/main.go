package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"forumhub/database"
	"forumhub/internal/config"
	"forumhub/internal/http-api/cache"
	"forumhub/internal/http-api/handler"
	"forumhub/internal/http-api/middleware"
	"forumhub/internal/http-api/repository"
	"forumhub/internal/http-api/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	codeCache, err := cache.NewCodeCache(cfg.RedisURL, cfg.VerifyCodeTTL)
	if err != nil {
		logger.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	defer codeCache.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	mailer := service.NewLogMailer(logger)
	notificationService := service.NewNotificationService(notificationRepo, postRepo, boardRepo, commentRepo)
	authService := service.NewAuthService(userRepo, refreshTokenRepo, codeCache, mailer, cfg)
	userService := service.NewUserService(userRepo)
	boardService := service.NewBoardService(boardRepo, userRepo, notificationService, logger)
	postService := service.NewPostService(postRepo, boardRepo, userRepo, notificationService, logger)
	commentService := service.NewCommentService(commentRepo, postRepo, boardRepo, userRepo, notificationService, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	// CORS before the limiter so rejected responses still carry the
	// headers browsers need to surface them.
	r.Use(middleware.CORS(cfg.CORSOrigins))
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	r.Use(limiter.Handler())

	r.GET("/check-conn", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "API is alive"})
	})

	api := r.Group("/api")
	optional := api.Group("", middleware.OptionalAuth(authService))
	authed := api.Group("", middleware.AuthMiddleware(authService))

	handler.NewAuthHandler(authService).RegisterRoutes(api, authed)
	handler.NewUserHandler(userService).RegisterRoutes(authed)
	handler.NewBoardHandler(boardService).RegisterRoutes(api, authed)
	handler.NewPostHandler(postService).RegisterRoutes(api, optional, authed)
	handler.NewCommentHandler(commentService).RegisterRoutes(api, authed)
	handler.NewNotificationHandler(notificationService).RegisterRoutes(authed)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}
