package transport

import "github.com/google/uuid"

// ── Requests ──────────────────────────────────────────────────────────────────

// CreateClientRequest is the request body for creating a client.
type CreateClientRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Company string `json:"company" validate:"required,min=1,max=200"`
	Phone   string `json:"phone" validate:"required,max=30"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"max=500"`
}

// UpdateClientRequest is the request body for updating a client.
// Absent fields are left unchanged.
type UpdateClientRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Company *string `json:"company" validate:"omitempty,min=1,max=200"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address" validate:"omitempty,max=500"`
}

// ListClientsRequest defines the query parameters for listing clients.
type ListClientsRequest struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// ClientResponse is the API representation of a client.
type ClientResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

// ClientListResponse is the paginated client list payload.
type ClientListResponse struct {
	Items      []ClientResponse `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
}
