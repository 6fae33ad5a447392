package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mkarsten/waveline/config"
	"github.com/mkarsten/waveline/controllers"
	"github.com/mkarsten/waveline/middleware"
	"github.com/mkarsten/waveline/realtime"
	"github.com/mkarsten/waveline/services"
	"github.com/mkarsten/waveline/utils"
)

// SetupRouter wires routes, middlewares, services and controllers.
func SetupRouter(db *gorm.DB, hub *realtime.Hub) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	notificationService := services.NewNotificationService(db, hub)
	authService := services.NewAuthService(db)
	postService := services.NewPostService(db, notificationService)
	followService := services.NewFollowService(db, notificationService)

	authController := controllers.NewAuthController(authService)
	postController := controllers.NewPostController(postService)
	followController := controllers.NewFollowController(followService)
	notificationController := controllers.NewNotificationController(notificationService)
	realtimeController := controllers.NewRealtimeController(hub)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	// Public post detail
	api.GET("/posts/:id", postController.GetPost)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())

	protected.POST("/posts", postController.CreatePost)
	protected.GET("/posts/feed", postController.Feed)
	protected.PATCH("/posts/:id/like", postController.TogglePostLike)
	protected.POST("/posts/:id/comments", postController.CreateComment)
	protected.POST("/comments/:commentId/replies", postController.CreateReply)
	protected.PATCH("/comments/:commentId/like", postController.ToggleCommentLike)

	protected.POST("/users/:id/follow", followController.Follow)
	protected.DELETE("/users/:id/follow", followController.Unfollow)
	protected.GET("/users/me/following", followController.Following)

	protected.GET("/notifications", notificationController.List)
	protected.PATCH("/notifications/:id/read", notificationController.MarkRead)

	protected.GET("/ws", realtimeController.Connect)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
