package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"labportal_backend/internal/suppliers/repository"
	"labportal_backend/internal/suppliers/transport"
	"labportal_backend/platform/apperr"
	"labportal_backend/platform/logger"
	"labportal_backend/platform/phone"
)

// rfcPattern matches Mexican RFC tax identifiers for both companies (12
// characters) and individuals (13 characters).
var rfcPattern = regexp.MustCompile(`^[A-ZÑ&]{3,4}[0-9]{6}[A-Z0-9]{3}$`)

// ProductChecker reports whether any product still references a supplier.
// Implemented by an adapter wrapping the catalog repository.
type ProductChecker interface {
	HasProductsWithSupplier(ctx context.Context, supplierID uuid.UUID) (bool, error)
}

// Service provides business logic for suppliers.
type Service struct {
	repo     *repository.Repo
	products ProductChecker
	log      *logger.Logger
}

// New creates a new suppliers service.
func New(repo *repository.Repo, products ProductChecker, log *logger.Logger) *Service {
	return &Service{repo: repo, products: products, log: log}
}

// Create creates a supplier. The phone number is normalized to E.164 and the
// RFC is uppercased and checked against the SAT format.
func (s *Service) Create(ctx context.Context, req transport.CreateSupplierRequest) (transport.SupplierResponse, error) {
	rfc := strings.ToUpper(strings.TrimSpace(req.RFC))
	if !rfcPattern.MatchString(rfc) {
		return transport.SupplierResponse{}, apperr.Validation("invalid RFC format")
	}

	supplier, err := s.repo.Create(ctx, repository.CreateSupplierParams{
		Name:    strings.TrimSpace(req.Name),
		Company: strings.TrimSpace(req.Company),
		Phone:   phone.NormalizeE164(req.Phone),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		RFC:     rfc,
		Country: strings.TrimSpace(req.Country),
		Address: strings.TrimSpace(req.Address),
	})
	if err != nil {
		return transport.SupplierResponse{}, err
	}
	return toResponse(supplier), nil
}

// Update updates a supplier.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateSupplierRequest) (transport.SupplierResponse, error) {
	var rfc *string
	if req.RFC != nil {
		v := strings.ToUpper(strings.TrimSpace(*req.RFC))
		if !rfcPattern.MatchString(v) {
			return transport.SupplierResponse{}, apperr.Validation("invalid RFC format")
		}
		rfc = &v
	}

	var phoneNumber *string
	if req.Phone != nil {
		v := phone.NormalizeE164(*req.Phone)
		phoneNumber = &v
	}

	supplier, err := s.repo.Update(ctx, repository.UpdateSupplierParams{
		ID:      id,
		Name:    req.Name,
		Company: req.Company,
		Phone:   phoneNumber,
		Email:   req.Email,
		RFC:     rfc,
		Country: req.Country,
		Address: req.Address,
	})
	if err != nil {
		return transport.SupplierResponse{}, err
	}
	return toResponse(supplier), nil
}

// Delete deletes a supplier. Suppliers still referenced by products are
// protected so catalog rows never lose their source.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	inUse, err := s.products.HasProductsWithSupplier(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return apperr.Conflict("supplier is referenced by existing products")
	}
	return s.repo.Delete(ctx, id)
}

// Get retrieves a supplier by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.SupplierResponse, error) {
	supplier, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.SupplierResponse{}, err
	}
	return toResponse(supplier), nil
}

// List retrieves suppliers with search and pagination.
func (s *Service) List(ctx context.Context, req transport.ListSuppliersRequest) (transport.SupplierListResponse, error) {
	page := req.Page
	pageSize := req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	suppliers, total, err := s.repo.List(ctx, repository.ListSuppliersParams{
		Search: strings.TrimSpace(req.Search),
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	})
	if err != nil {
		return transport.SupplierListResponse{}, err
	}

	items := make([]transport.SupplierResponse, 0, len(suppliers))
	for _, supplier := range suppliers {
		items = append(items, toResponse(supplier))
	}

	totalPages := (total + pageSize - 1) / pageSize
	return transport.SupplierListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func toResponse(s repository.Supplier) transport.SupplierResponse {
	return transport.SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Company:   s.Company,
		Phone:     s.Phone,
		Email:     s.Email,
		RFC:       s.RFC,
		Country:   s.Country,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
