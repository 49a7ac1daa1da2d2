// Package suppliers provides the supplier directory module.
package suppliers

import (
	apphttp "labportal_backend/internal/http"
	"labportal_backend/internal/suppliers/handler"
	"labportal_backend/internal/suppliers/repository"
	"labportal_backend/internal/suppliers/service"
	"labportal_backend/platform/logger"
	"labportal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the suppliers domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new suppliers module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, products service.ProductChecker, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, products, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "suppliers"
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	suppliers := ctx.Protected.Group("/suppliers")
	m.handler.RegisterRoutes(suppliers)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
