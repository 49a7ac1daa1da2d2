package transport

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Code          string          `json:"code" validate:"required,min=1,max=100"`
	Name          string          `json:"name" validate:"required,min=1,max=300"`
	Specification *string         `json:"specification" validate:"omitempty,max=5000"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	StockQuantity int             `json:"stockQuantity" validate:"min=0"`
	SupplierID    *uuid.UUID      `json:"supplierId"`
	ImageKey      *string         `json:"imageKey" validate:"omitempty,max=1000"`
}

// UpdateProductRequest is the request body for updating a product.
// Absent fields are left unchanged.
type UpdateProductRequest struct {
	Code          *string          `json:"code" validate:"omitempty,min=1,max=100"`
	Name          *string          `json:"name" validate:"omitempty,min=1,max=300"`
	Specification *string          `json:"specification" validate:"omitempty,max=5000"`
	UnitPrice     *decimal.Decimal `json:"unitPrice"`
	StockQuantity *int             `json:"stockQuantity" validate:"omitempty,min=0"`
	SupplierID    *uuid.UUID       `json:"supplierId"`
	ImageKey      *string          `json:"imageKey" validate:"omitempty,max=1000"`
}

// ListProductsRequest defines the query parameters for listing products.
type ListProductsRequest struct {
	Search     string `form:"search"`
	SupplierID string `form:"supplierId" validate:"omitempty,uuid"`
	Page       int    `form:"page"`
	PageSize   int    `form:"pageSize"`
}

// PresignImageUploadRequest is the request body for a product image upload URL.
type PresignImageUploadRequest struct {
	FileName    string `json:"fileName" validate:"required,min=1,max=500"`
	ContentType string `json:"contentType" validate:"required"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,min=1"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// ProductResponse is the API representation of a product.
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Specification *string         `json:"specification,omitempty"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	StockQuantity int             `json:"stockQuantity"`
	SupplierID    *uuid.UUID      `json:"supplierId,omitempty"`
	SupplierName  string          `json:"supplierName"`
	ImageKey      *string         `json:"imageKey,omitempty"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     string          `json:"updatedAt"`
}

// ProductListResponse is the paginated product list payload.
type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}
