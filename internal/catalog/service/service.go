package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"labportal_backend/internal/adapters/storage"
	"labportal_backend/internal/catalog/repository"
	"labportal_backend/internal/catalog/transport"
	"labportal_backend/internal/events"
	"labportal_backend/platform/apperr"
	"labportal_backend/platform/logger"
)

// Service provides business logic for the product catalog.
type Service struct {
	repo        repository.Repository
	bus         events.Bus
	log         *logger.Logger
	storageSvc  storage.StorageService
	imageBucket string
}

// New creates a new catalog service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// SetStorage injects the object storage used for product images.
func (s *Service) SetStorage(svc storage.StorageService, bucket string) {
	s.storageSvc = svc
	s.imageBucket = bucket
}

// Create creates a product.
func (s *Service) Create(ctx context.Context, req transport.CreateProductRequest) (transport.ProductResponse, error) {
	if req.UnitPrice.IsNegative() {
		return transport.ProductResponse{}, apperr.Validation("unit price cannot be negative")
	}

	product, err := s.repo.CreateProduct(ctx, repository.CreateProductParams{
		Code:          strings.TrimSpace(req.Code),
		Name:          strings.TrimSpace(req.Name),
		Specification: req.Specification,
		UnitPrice:     req.UnitPrice,
		StockQuantity: req.StockQuantity,
		SupplierID:    req.SupplierID,
		ImageKey:      req.ImageKey,
	})
	if err != nil {
		return transport.ProductResponse{}, err
	}
	return s.toResponse(ctx, product), nil
}

// Update updates a product. A price change is announced on the event bus;
// carts in progress keep the price they snapshotted at add-time.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateProductRequest) (transport.ProductResponse, error) {
	if req.UnitPrice != nil && req.UnitPrice.IsNegative() {
		return transport.ProductResponse{}, apperr.Validation("unit price cannot be negative")
	}

	var oldPrice *decimal.Decimal
	if req.UnitPrice != nil {
		current, err := s.repo.GetProductByID(ctx, id)
		if err != nil {
			return transport.ProductResponse{}, err
		}
		oldPrice = &current.UnitPrice
	}

	product, err := s.repo.UpdateProduct(ctx, repository.UpdateProductParams{
		ID:            id,
		Code:          req.Code,
		Name:          req.Name,
		Specification: req.Specification,
		UnitPrice:     req.UnitPrice,
		StockQuantity: req.StockQuantity,
		SupplierID:    req.SupplierID,
		ImageKey:      req.ImageKey,
	})
	if err != nil {
		return transport.ProductResponse{}, err
	}

	if oldPrice != nil && !oldPrice.Equal(product.UnitPrice) {
		s.bus.Publish(ctx, events.ProductPriceChanged{
			BaseEvent: events.NewBaseEvent(),
			ProductID: product.ID,
			OldPrice:  *oldPrice,
			NewPrice:  product.UnitPrice,
		})
	}

	return s.toResponse(ctx, product), nil
}

// Delete deletes a product.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteProduct(ctx, id)
}

// Get retrieves a product by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.ProductResponse, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return transport.ProductResponse{}, err
	}
	return s.toResponse(ctx, product), nil
}

// List retrieves products with search and pagination.
func (s *Service) List(ctx context.Context, req transport.ListProductsRequest) (transport.ProductListResponse, error) {
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

	var supplierID *uuid.UUID
	if req.SupplierID != "" {
		id, err := uuid.Parse(req.SupplierID)
		if err != nil {
			return transport.ProductListResponse{}, apperr.Validation("invalid supplier id")
		}
		supplierID = &id
	}

	products, total, err := s.repo.ListProducts(ctx, repository.ListProductsParams{
		Search:     strings.TrimSpace(req.Search),
		SupplierID: supplierID,
		Offset:     (page - 1) * pageSize,
		Limit:      pageSize,
	})
	if err != nil {
		return transport.ProductListResponse{}, err
	}

	items := make([]transport.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, s.toResponse(ctx, p))
	}

	totalPages := (total + pageSize - 1) / pageSize
	return transport.ProductListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// PresignImageUpload creates a presigned PUT URL for a product image.
func (s *Service) PresignImageUpload(ctx context.Context, req transport.PresignImageUploadRequest) (*storage.PresignedURL, error) {
	if s.storageSvc == nil {
		return nil, apperr.Internal("object storage is not configured")
	}
	return s.storageSvc.GenerateUploadURL(ctx, s.imageBucket, "products", req.FileName, req.ContentType, req.SizeBytes)
}

func (s *Service) toResponse(ctx context.Context, p repository.Product) transport.ProductResponse {
	resp := transport.ProductResponse{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		Specification: p.Specification,
		UnitPrice:     p.UnitPrice,
		StockQuantity: p.StockQuantity,
		SupplierID:    p.SupplierID,
		SupplierName:  p.SupplierName,
		ImageKey:      p.ImageKey,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}

	if s.storageSvc != nil && p.ImageKey != nil && *p.ImageKey != "" {
		url, err := s.storageSvc.GenerateDownloadURL(ctx, s.imageBucket, *p.ImageKey)
		if err != nil {
			s.log.Warn("failed to presign product image", "productId", p.ID, "error", err)
		} else {
			resp.ImageURL = url.URL
		}
	}
	return resp
}
