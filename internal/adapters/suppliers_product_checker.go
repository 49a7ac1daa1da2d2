package adapters

import (
	"context"

	"github.com/google/uuid"

	catrepo "labportal_backend/internal/catalog/repository"
)

// SuppliersProductChecker adapts the catalog repository for the suppliers
// domain, satisfying suppliers/service.ProductChecker.
type SuppliersProductChecker struct {
	repo catrepo.Repository
}

// NewSuppliersProductChecker creates a new product checker adapter.
func NewSuppliersProductChecker(repo catrepo.Repository) *SuppliersProductChecker {
	return &SuppliersProductChecker{repo: repo}
}

// HasProductsWithSupplier reports whether any catalog product still
// references the supplier.
func (a *SuppliersProductChecker) HasProductsWithSupplier(ctx context.Context, supplierID uuid.UUID) (bool, error) {
	return a.repo.HasProductsWithSupplier(ctx, supplierID)
}
