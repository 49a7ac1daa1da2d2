// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"labportal_backend/platform/events"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Auth Domain Events
// =============================================================================

// UserSignedIn is published after a successful staff sign-in.
type UserSignedIn struct {
	BaseEvent
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
}

func (e UserSignedIn) EventName() string { return "auth.user.signed_in" }

// =============================================================================
// Quotes Domain Events
// =============================================================================

// QuotationCreated is published when a quotation is assembled and persisted.
type QuotationCreated struct {
	BaseEvent
	QuotationID     uuid.UUID       `json:"quotationId"`
	QuotationNumber string          `json:"quotationNumber"`
	ClientID        uuid.UUID       `json:"clientId"`
	ClientName      string          `json:"clientName"`
	ClientEmail     string          `json:"clientEmail"`
	Total           decimal.Decimal `json:"total"`
	ItemCount       int             `json:"itemCount"`
}

func (e QuotationCreated) EventName() string { return "quotes.quotation.created" }

// QuotationStatusChanged is published when a quotation moves to a new
// lifecycle state.
type QuotationStatusChanged struct {
	BaseEvent
	QuotationID     uuid.UUID `json:"quotationId"`
	QuotationNumber string    `json:"quotationNumber"`
	Status          string    `json:"status"`
	ClientName      string    `json:"clientName"`
	ClientEmail     string    `json:"clientEmail"`
}

func (e QuotationStatusChanged) EventName() string { return "quotes.quotation.status_changed" }

// QuotationDeleted is published when a quotation is removed.
type QuotationDeleted struct {
	BaseEvent
	QuotationID uuid.UUID `json:"quotationId"`
}

func (e QuotationDeleted) EventName() string { return "quotes.quotation.deleted" }

// =============================================================================
// Catalog Domain Events
// =============================================================================

// ProductPriceChanged is published when a product's unit price is updated.
// Carts in progress are intentionally NOT touched: line items hold a price
// snapshot taken at add-time.
type ProductPriceChanged struct {
	BaseEvent
	ProductID uuid.UUID       `json:"productId"`
	OldPrice  decimal.Decimal `json:"oldPrice"`
	NewPrice  decimal.Decimal `json:"newPrice"`
}

func (e ProductPriceChanged) EventName() string { return "catalog.product.price_changed" }
