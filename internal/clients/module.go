// Package clients provides the client directory module.
package clients

import (
	"labportal_backend/internal/clients/handler"
	"labportal_backend/internal/clients/repository"
	"labportal_backend/internal/clients/service"
	apphttp "labportal_backend/internal/http"
	"labportal_backend/platform/logger"
	"labportal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the clients domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repo
}

// NewModule creates a new clients module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "clients"
}

// Repository exposes the repository for adapter wiring.
func (m *Module) Repository() *repository.Repo {
	return m.repo
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	clients := ctx.Protected.Group("/clients")
	m.handler.RegisterRoutes(clients)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
