package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/knchan0x/fullstack-open-bloglist/config"
	"github.com/knchan0x/fullstack-open-bloglist/controllers"
	"github.com/knchan0x/fullstack-open-bloglist/middleware"
	"github.com/knchan0x/fullstack-open-bloglist/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
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
	// Replace the default console logger with a file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Use(middleware.RequestID())
	// The translator must wrap every route so no pushed error goes unanswered.
	r.Use(middleware.ErrorTranslator())
	r.Use(middleware.TokenExtractor())

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	blogController := controllers.NewBlogController(db)
	userController := controllers.NewUserController(db)
	loginController := controllers.NewLoginController(db)
	statsController := controllers.NewStatsController(db)

	api := r.Group("/api")

	api.POST("/login", middleware.RateLimitMiddleware(), loginController.Login)
	api.POST("/logout", loginController.Logout)

	api.POST("/users", middleware.RateLimitMiddleware(), userController.Register)
	api.GET("/users", userController.ListUsers)
	api.GET("/users/:id", userController.GetUser)

	blogs := api.Group("/blogs")
	blogs.GET("", blogController.ListBlogs)
	blogs.GET("/stats", statsController.GetBlogStats)
	blogs.GET("/:id", blogController.GetBlog)

	// Mutating blog routes resolve the authenticated user first.
	owned := blogs.Group("", middleware.UserExtractor(db))
	owned.POST("", blogController.CreateBlog)
	owned.PUT("/:id", blogController.UpdateBlog)
	owned.DELETE("/:id", blogController.DeleteBlog)

	r.NoRoute(middleware.UnknownEndpoint())

	return r
}
