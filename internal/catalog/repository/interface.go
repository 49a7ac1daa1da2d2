package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a catalog product. SupplierName is denormalized from the
// suppliers table on read.
type Product struct {
	ID            uuid.UUID       `db:"id"`
	Code          string          `db:"code"`
	Name          string          `db:"name"`
	Specification *string         `db:"specification"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
	StockQuantity int             `db:"stock_quantity"`
	SupplierID    *uuid.UUID      `db:"supplier_id"`
	SupplierName  string          `db:"supplier_name"`
	ImageKey      *string         `db:"image_key"`
	CreatedAt     string          `db:"created_at"`
	UpdatedAt     string          `db:"updated_at"`
}

// CreateProductParams contains data for creating a product.
type CreateProductParams struct {
	Code          string
	Name          string
	Specification *string
	UnitPrice     decimal.Decimal
	StockQuantity int
	SupplierID    *uuid.UUID
	ImageKey      *string
}

// UpdateProductParams contains data for updating a product.
// Nil fields are left unchanged.
type UpdateProductParams struct {
	ID            uuid.UUID
	Code          *string
	Name          *string
	Specification *string
	UnitPrice     *decimal.Decimal
	StockQuantity *int
	SupplierID    *uuid.UUID
	ImageKey      *string
}

// ListProductsParams defines filters for listing products.
type ListProductsParams struct {
	Search     string
	SupplierID *uuid.UUID
	Offset     int
	Limit      int
}

// Repository defines catalog storage operations.
type Repository interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (Product, error)
	UpdateProduct(ctx context.Context, params UpdateProductParams) (Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	GetProductByID(ctx context.Context, id uuid.UUID) (Product, error)
	ListProducts(ctx context.Context, params ListProductsParams) ([]Product, int, error)
	ListProductOptions(ctx context.Context) ([]Product, error)
	HasProductsWithSupplier(ctx context.Context, supplierID uuid.UUID) (bool, error)
}
