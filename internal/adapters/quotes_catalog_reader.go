// Package adapters wires narrow cross-domain interfaces to the repositories
// that back them, so domain modules never import each other directly.
package adapters

import (
	"context"

	"github.com/google/uuid"

	catrepo "labportal_backend/internal/catalog/repository"
	"labportal_backend/internal/quotes/domain"
	"labportal_backend/internal/quotes/transport"
)

// QuotesCatalogReader adapts the catalog repository for the quotes domain,
// satisfying quotes/service.CatalogReader.
type QuotesCatalogReader struct {
	repo catrepo.Repository
}

// NewQuotesCatalogReader creates a new catalog reader adapter.
func NewQuotesCatalogReader(repo catrepo.Repository) *QuotesCatalogReader {
	return &QuotesCatalogReader{repo: repo}
}

// ProductSnapshot returns the point-in-time product data a cart line item
// captures when the product is added.
func (a *QuotesCatalogReader) ProductSnapshot(ctx context.Context, id uuid.UUID) (*domain.ProductSnapshot, error) {
	product, err := a.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot := &domain.ProductSnapshot{
		ID:            product.ID,
		Code:          product.Code,
		Name:          product.Name,
		UnitPrice:     product.UnitPrice,
		StockQuantity: product.StockQuantity,
		SupplierName:  product.SupplierName,
	}
	if product.Specification != nil {
		snapshot.Specification = *product.Specification
	}
	return snapshot, nil
}

// ProductOptions returns the slim product list for the quotation builder picker.
func (a *QuotesCatalogReader) ProductOptions(ctx context.Context) ([]transport.ProductOption, error) {
	products, err := a.repo.ListProductOptions(ctx)
	if err != nil {
		return nil, err
	}

	options := make([]transport.ProductOption, 0, len(products))
	for _, p := range products {
		options = append(options, transport.ProductOption{
			ID:           p.ID,
			Code:         p.Code,
			Name:         p.Name,
			UnitPrice:    p.UnitPrice,
			SupplierName: p.SupplierName,
		})
	}
	return options, nil
}
