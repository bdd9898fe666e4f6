package server

import (
	"context"
	"net/http"
	"time"

	"github.com/T-E-K-K-I-N/MarineFitBot/internal/auth"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/config"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/models"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/training"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/user"

	"github.com/gin-gonic/gin"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
}

func New(cfg *config.Config, db Pinger, users *user.Handler, trainings *training.Handler) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLoggingMiddleware(), MetricsMiddleware(), corsMiddleware())

	limit := RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)

	public := router.Group("/auth", limit)
	{
		public.POST("/token", users.IssueToken)
		public.POST("/refresh", users.RefreshToken)
	}

	protected := router.Group("/api", limit, auth.AuthMiddleware(cfg.JWTSecret))
	{
		protected.GET("/me", users.GetMe)
		protected.GET("/users/:id", users.Get)
		protected.GET("/users/by-telegram/:telegramName", users.GetByTelegramName)
		protected.GET("/users/by-full-name/:fullName", users.GetByFullName)

		protected.GET("/trainings/:id", trainings.Get)
		protected.GET("/trainings/by-user/:userId", trainings.ListByUser)
		protected.POST("/trainings", trainings.Create)
	}

	admin := protected.Group("", auth.RequireRole(models.RoleAdministrator.String()))
	{
		admin.GET("/users", users.List)
		admin.POST("/users", users.Create)
		admin.PUT("/users/:id", users.Update)
		admin.DELETE("/users/:id", users.Delete)

		admin.GET("/trainings", trainings.List)
		admin.GET("/trainings/schedule", trainings.Schedule)
		admin.GET("/trainings/by-status/:status", trainings.ListByStatus)
		admin.PUT("/trainings/:id", trainings.Update)
		admin.POST("/trainings/:id/confirm", trainings.Confirm)
		admin.POST("/trainings/:id/decline", trainings.Decline)
		admin.DELETE("/trainings/:id", trainings.Delete)
	}

	router.GET("/health", Health(db))
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks until the server stops. It returns http.ErrServerClosed after
// Shutdown.
func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
