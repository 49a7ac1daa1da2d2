package service

import (
	"context"
	"fmt"

	"labportal_backend/internal/events"
	"labportal_backend/internal/quotes/cartstore"
	"labportal_backend/internal/quotes/domain"
	"labportal_backend/internal/quotes/repository"
	"labportal_backend/internal/quotes/transport"
	"labportal_backend/internal/shared/search"
	"labportal_backend/platform/logger"

	"github.com/google/uuid"
)

// CatalogReader is the narrow interface the quotes service needs to resolve
// products. Implemented by an adapter in internal/adapters that wraps the
// catalog service.
type CatalogReader interface {
	ProductSnapshot(ctx context.Context, id uuid.UUID) (*domain.ProductSnapshot, error)
	ProductOptions(ctx context.Context) ([]transport.ProductOption, error)
}

// ClientReader resolves clients without importing the clients domain.
type ClientReader interface {
	ClientSnapshot(ctx context.Context, id uuid.UUID) (*domain.ClientSnapshot, error)
	ClientOptions(ctx context.Context) ([]transport.ClientOption, error)
}

// Repository is the persistence surface the service depends on.
type Repository interface {
	NextQuotationNumber(ctx context.Context) (string, error)
	CreateWithItems(ctx context.Context, quotation *repository.Quotation, items []repository.QuotationItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*repository.Quotation, error)
	GetItemsByQuotationID(ctx context.Context, quotationID uuid.UUID) ([]repository.QuotationItem, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params repository.ListParams) (*repository.ListResult, error)
}

// Service provides business logic for the quotation workflow.
type Service struct {
	repo    Repository
	carts   cartstore.Store
	catalog CatalogReader
	clients ClientReader
	bus     events.Bus
	log     *logger.Logger
}

// New creates a new quotes service.
func New(repo Repository, carts cartstore.Store, catalog CatalogReader, clients ClientReader, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:    repo,
		carts:   carts,
		catalog: catalog,
		clients: clients,
		bus:     bus,
		log:     log,
	}
}

// Get retrieves a quotation with its line items.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*transport.QuotationResponse, error) {
	quotation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.GetItemsByQuotationID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := transport.ToQuotationResponse(quotation, items)
	return &resp, nil
}

// List retrieves quotations newest first. Database pagination handles the
// status filter; the free-text search runs in memory over the page.
func (s *Service) List(ctx context.Context, req transport.ListQuotationsRequest) (*transport.ListQuotationsResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var status *string
	if req.Status != "" {
		status = &req.Status
	}

	result, err := s.repo.List(ctx, repository.ListParams{
		Status:   status,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, err
	}

	items := make([]transport.QuotationResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, transport.ToQuotationResponse(&result.Items[i], nil))
	}

	total := result.Total
	totalPages := result.TotalPages
	if req.Search != "" {
		// The free-text filter narrows the fetched page, so the counts
		// describe the filtered slice rather than the full table.
		items = search.Filter(items, req.Search, req.Scope)
		total = len(items)
		totalPages = (total + pageSize - 1) / pageSize
	}

	return &transport.ListQuotationsResponse{
		Items:      items,
		Total:      total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: totalPages,
	}, nil
}

// UpdateStatus transitions a quotation to a new lifecycle state and
// announces the change so the client can be notified.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status transport.QuotationStatus) error {
	quotation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateStatus(ctx, id, string(status)); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.QuotationStatusChanged{
		BaseEvent:       events.NewBaseEvent(),
		QuotationID:     id,
		QuotationNumber: quotation.QuotationNumber,
		Status:          string(status),
		ClientName:      quotation.ClientName,
		ClientEmail:     quotation.ClientEmail,
	})
	return nil
}

// Delete removes a quotation and announces the removal.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.QuotationDeleted{
		BaseEvent:   events.NewBaseEvent(),
		QuotationID: id,
	})
	return nil
}

func opErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
