package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/DVTecno/mailsend/internal/core/port"
	"github.com/DVTecno/mailsend/internal/infra/config"
	"github.com/DVTecno/mailsend/internal/transport/http/handlers"
	"github.com/DVTecno/mailsend/internal/transport/http/middleware"
	"github.com/DVTecno/mailsend/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Identities *usecase.IdentityService
	Recovery   *usecase.RecoveryService
	Sessions   *usecase.SessionBinder
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config   *config.AppConfig
	Logger   *zap.Logger
	Services ServiceSet
	Notifier port.Notifier
	Metrics  *middleware.HTTPMetrics
	Database DatabaseChecker
	Cache    CacheChecker
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// CacheChecker exposes readiness behaviour for cache backends.
type CacheChecker interface {
	HealthCheck(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}

	sessionMiddleware := middleware.RequireSession(deps.Services.Sessions, deps.Config.Session.CookieName)

	healthOptions := make([]handlers.HealthOption, 0, 2)

	if deps.Database != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("database", deps.Database.Ping))
	}

	if deps.Cache != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("redis", deps.Cache.HealthCheck))
	}

	healthHandler := handlers.NewHealthHandler(healthOptions...)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Readiness)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		authHandler := handlers.NewAuthHandler(deps.Services.Identities, deps.Services.Sessions, deps.Config.Session)

		authGroup := api.Group("/auth")
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", sessionMiddleware, authHandler.Logout)

		api.GET("/me", sessionMiddleware, authHandler.Me)

		recoveryHandler := handlers.NewRecoveryHandler(deps.Services.Recovery, deps.Config.Portal.BaseURL)

		passwordGroup := api.Group("/password")
		passwordGroup.POST("/forgot", recoveryHandler.Forgot)
		passwordGroup.GET("/reset", recoveryHandler.CheckToken)
		passwordGroup.POST("/reset", recoveryHandler.Reset)

		mailHandler := handlers.NewMailHandler(deps.Notifier)
		api.POST("/mail/attachment", sessionMiddleware, mailHandler.SendAttachment)
	}

	return r
}
