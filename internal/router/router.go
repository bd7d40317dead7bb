package router

import (
	"net/http"
	"time"

	"github.com/Raghugowd/Internx-sub001/internal/config"
	"github.com/Raghugowd/Internx-sub001/internal/handler"
	"github.com/Raghugowd/Internx-sub001/internal/middleware"
	"github.com/Raghugowd/Internx-sub001/internal/response"
	"github.com/Raghugowd/Internx-sub001/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	OTP          *handler.OTPHandler
	Registration *handler.RegistrationHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Serve stored attachments statically.
	router.Static("/uploads", cfg.UploadDir)

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for OTP dispatch (10 requests per minute per IP).
	otpLimiter := middleware.NewRateLimiter(10, time.Minute)

	// ─── Auth Group (Public) ───────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/send-otp", otpLimiter.Middleware(), handlers.OTP.SendOTP)
		auth.POST("/register", handlers.Registration.Register)
		auth.POST("/login", handlers.Auth.UserLogin)
		auth.POST("/admin/login", handlers.Auth.AdminLogin)

		// Authenticated profile routes, used by clients to validate a
		// restored session.
		auth.GET("/me", middleware.RequireUserJWT(authService), handlers.Auth.GetUserProfile)
		auth.GET("/admin/me", middleware.RequireAdminJWT(authService), handlers.Auth.GetAdminProfile)
	}

	return router
}
