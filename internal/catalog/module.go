// Package catalog provides the product catalog module.
package catalog

import (
	"labportal_backend/internal/adapters/storage"
	"labportal_backend/internal/catalog/handler"
	"labportal_backend/internal/catalog/repository"
	"labportal_backend/internal/catalog/service"
	"labportal_backend/internal/events"
	apphttp "labportal_backend/internal/http"
	"labportal_backend/platform/logger"
	"labportal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the catalog domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates a new catalog module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository exposes the repository for adapter wiring.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// SetStorage injects object storage for product images.
func (m *Module) SetStorage(svc storage.StorageService, bucket string) {
	m.service.SetStorage(svc, bucket)
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	products := ctx.Protected.Group("/products")
	m.handler.RegisterRoutes(products)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
