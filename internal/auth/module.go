// Package auth provides the authentication module: staff sign-in with JWT
// access tokens, rotating refresh tokens, and per-user UI preferences.
package auth

import (
	"labportal_backend/internal/auth/handler"
	"labportal_backend/internal/auth/repository"
	"labportal_backend/internal/auth/service"
	"labportal_backend/internal/events"
	apphttp "labportal_backend/internal/http"
	"labportal_backend/platform/config"
	"labportal_backend/platform/logger"
	"labportal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the auth domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new auth module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "auth"
}

// RegisterRoutes registers the module's routes. Sign-in and refresh sit
// behind the stricter auth rate limiter.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.V1.Group("/auth")
	public.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterPublicRoutes(public)

	protected := ctx.Protected.Group("/auth")
	m.handler.RegisterProtectedRoutes(protected)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
