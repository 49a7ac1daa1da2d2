package transport

import "github.com/google/uuid"

// ── Requests ──────────────────────────────────────────────────────────────────

// CreateSupplierRequest is the request body for creating a supplier.
type CreateSupplierRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Company string `json:"company" validate:"required,min=1,max=200"`
	Phone   string `json:"phone" validate:"required,max=30"`
	Email   string `json:"email" validate:"required,email"`
	RFC     string `json:"rfc" validate:"required,min=12,max=13"`
	Country string `json:"country" validate:"required,max=100"`
	Address string `json:"address" validate:"max=500"`
}

// UpdateSupplierRequest is the request body for updating a supplier.
// Absent fields are left unchanged.
type UpdateSupplierRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Company *string `json:"company" validate:"omitempty,min=1,max=200"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
	Email   *string `json:"email" validate:"omitempty,email"`
	RFC     *string `json:"rfc" validate:"omitempty,min=12,max=13"`
	Country *string `json:"country" validate:"omitempty,max=100"`
	Address *string `json:"address" validate:"omitempty,max=500"`
}

// ListSuppliersRequest defines the query parameters for listing suppliers.
type ListSuppliersRequest struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// SupplierResponse is the API representation of a supplier.
type SupplierResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	RFC       string    `json:"rfc"`
	Country   string    `json:"country"`
	Address   string    `json:"address"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

// SupplierListResponse is the paginated supplier list payload.
type SupplierListResponse struct {
	Items      []SupplierResponse `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalPages int                `json:"totalPages"`
}
