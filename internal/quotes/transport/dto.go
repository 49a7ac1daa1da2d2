package transport

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"labportal_backend/internal/quotes/domain"
	"labportal_backend/internal/quotes/repository"
)

// QuotationStatus defines the lifecycle state of a quotation.
type QuotationStatus string

const (
	QuotationStatusPending  QuotationStatus = "pending"
	QuotationStatusSent     QuotationStatus = "sent"
	QuotationStatusAccepted QuotationStatus = "accepted"
	QuotationStatusRejected QuotationStatus = "rejected"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// AddCartItemRequest is the request body for adding a product to the cart.
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// UpdateCartItemRequest is the request body for changing a line item quantity.
// Non-positive quantities are accepted and leave the item unchanged.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// AssembleQuotationRequest is the request body for turning the cart into a
// persisted quotation.
type AssembleQuotationRequest struct {
	ClientID uuid.UUID `json:"clientId" validate:"required"`
}

// UpdateQuotationStatusRequest is the request body for updating a quotation's status.
type UpdateQuotationStatusRequest struct {
	Status QuotationStatus `json:"status" validate:"required,oneof=pending sent accepted rejected"`
}

// ListQuotationsRequest defines the query parameters for listing quotations.
// The status filter is applied by the database; search narrows the returned
// page in memory, and the response counts then reflect the filtered slice.
type ListQuotationsRequest struct {
	Status   string `form:"status" validate:"omitempty,oneof=pending sent accepted rejected"`
	Search   string `form:"search"`
	Scope    string `form:"scope" validate:"omitempty,oneof=all clientName clientCompany status"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// CartItemResponse is a single line item of the working cart.
type CartItemResponse struct {
	ProductID    uuid.UUID       `json:"productId"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	SupplierName string          `json:"supplierName"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Quantity     int             `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// CartResponse is the full working cart with its running total.
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

// QuotationItemResponse is a persisted quotation line item.
type QuotationItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"productId"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	SupplierName string          `json:"supplierName"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Quantity     int             `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// QuotationResponse is the API representation of a quotation.
type QuotationResponse struct {
	ID              uuid.UUID               `json:"id"`
	QuotationNumber string                  `json:"quotationNumber"`
	Status          string                  `json:"status"`
	ClientID        uuid.UUID               `json:"clientId"`
	ClientName      string                  `json:"clientName"`
	ClientCompany   string                  `json:"clientCompany"`
	ClientPhone     string                  `json:"clientPhone"`
	ClientEmail     string                  `json:"clientEmail"`
	ClientAddress   string                  `json:"clientAddress"`
	Total           decimal.Decimal         `json:"total"`
	ItemCount       int                     `json:"itemCount"`
	CreatedAt       time.Time               `json:"createdAt"`
	Items           []QuotationItemResponse `json:"items,omitempty"`
}

// SearchFields exposes the columns the in-memory filter can match against.
func (q QuotationResponse) SearchFields() map[string]string {
	return map[string]string{
		"clientName":    q.ClientName,
		"clientCompany": q.ClientCompany,
		"status":        q.Status,
	}
}

// ListQuotationsResponse is the paginated list payload.
type ListQuotationsResponse struct {
	Items      []QuotationResponse `json:"items"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"pageSize"`
	TotalPages int                 `json:"totalPages"`
}

// WorkspaceResponse bundles everything the quotation builder screen needs
// in a single round trip.
type WorkspaceResponse struct {
	Quotations []QuotationResponse `json:"quotations"`
	Clients    []ClientOption      `json:"clients"`
	Products   []ProductOption     `json:"products"`
	Cart       CartResponse        `json:"cart"`
}

// ClientOption is the slim client representation used by pickers.
type ClientOption struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Company string    `json:"company"`
}

// ProductOption is the slim product representation used by pickers.
type ProductOption struct {
	ID           uuid.UUID       `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	SupplierName string          `json:"supplierName"`
}

// ── Mapping ───────────────────────────────────────────────────────────────────

// ToCartResponse converts the domain cart into its API shape.
func ToCartResponse(cart *domain.Cart) CartResponse {
	items := cart.Items()
	resp := CartResponse{
		Items: make([]CartItemResponse, 0, len(items)),
		Total: cart.Total(),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, CartItemResponse{
			ProductID:    item.ProductID,
			Code:         item.Code,
			Name:         item.Name,
			SupplierName: item.SupplierName,
			UnitPrice:    item.UnitPrice,
			Quantity:     item.Quantity,
			Subtotal:     item.Subtotal,
		})
	}
	return resp
}

// ToQuotationResponse converts a database quotation into its API shape.
func ToQuotationResponse(q *repository.Quotation, items []repository.QuotationItem) QuotationResponse {
	resp := QuotationResponse{
		ID:              q.ID,
		QuotationNumber: q.QuotationNumber,
		Status:          q.Status,
		ClientID:        q.ClientID,
		ClientName:      q.ClientName,
		ClientCompany:   q.ClientCompany,
		ClientPhone:     q.ClientPhone,
		ClientEmail:     q.ClientEmail,
		ClientAddress:   q.ClientAddress,
		Total:           q.Total,
		ItemCount:       q.ItemCount,
		CreatedAt:       q.CreatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, QuotationItemResponse{
			ID:           item.ID,
			ProductID:    item.ProductID,
			Code:         item.Code,
			Name:         item.Name,
			SupplierName: item.SupplierName,
			UnitPrice:    item.UnitPrice,
			Quantity:     item.Quantity,
			Subtotal:     item.Subtotal,
		})
	}
	return resp
}
