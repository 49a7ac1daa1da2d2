// Package quotes provides the quotation workflow module: the working cart
// and the quotations assembled from it.
package quotes

import (
	"labportal_backend/internal/events"
	apphttp "labportal_backend/internal/http"
	"labportal_backend/internal/quotes/cartstore"
	"labportal_backend/internal/quotes/handler"
	"labportal_backend/internal/quotes/repository"
	"labportal_backend/internal/quotes/service"
	"labportal_backend/platform/logger"
	"labportal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the quotes domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new quotes module with all dependencies wired.
// The catalog and client readers come from internal/adapters so this module
// never imports the other domains directly.
func NewModule(
	pool *pgxpool.Pool,
	carts cartstore.Store,
	catalog service.CatalogReader,
	clients service.ClientReader,
	bus events.Bus,
	val *validator.Validator,
	log *logger.Logger,
) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, carts, catalog, clients, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "quotes"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// SetPDFGenerator injects the PDF renderer (set after construction because
// the pdf package consumes quote transport types).
func (m *Module) SetPDFGenerator(gen handler.PDFGenerator) {
	m.handler.SetPDFGenerator(gen)
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	quotes := ctx.Protected.Group("/quotes")
	m.handler.RegisterRoutes(quotes)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
