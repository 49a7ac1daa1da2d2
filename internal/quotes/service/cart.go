package service

import (
	"context"
	"errors"
	"time"

	"labportal_backend/internal/events"
	"labportal_backend/internal/quotes/repository"
	"labportal_backend/internal/quotes/transport"
	"labportal_backend/platform/apperr"

	"github.com/google/uuid"
)

// Sentinel errors for the quotation assembly preconditions. Callers can test
// for them with errors.Is; both carry validation semantics so the HTTP layer
// maps them to 400 responses.
var (
	ErrMissingClient  = apperr.Validation("a client must be selected before generating a quotation")
	ErrEmptyCart      = apperr.Validation("the cart has no items")
	ErrUnknownProduct = apperr.Validation("product does not exist")
)

// Cart returns the user's working cart.
func (s *Service) Cart(ctx context.Context, userID uuid.UUID) (*transport.CartResponse, error) {
	cart, err := s.carts.Load(ctx, userID)
	if err != nil {
		return nil, opErr("load cart", err)
	}
	resp := transport.ToCartResponse(cart)
	return &resp, nil
}

// AddProduct resolves the product and adds it to the user's cart. Adding a
// product already in the cart merges into the existing line item. The line
// item snapshots the product's current price; later price changes do not
// touch it.
func (s *Service) AddProduct(ctx context.Context, userID uuid.UUID, req transport.AddCartItemRequest) (*transport.CartResponse, error) {
	product, err := s.catalog.ProductSnapshot(ctx, req.ProductID)
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) && appErr.Kind == apperr.KindNotFound {
			return nil, ErrUnknownProduct
		}
		return nil, opErr("resolve product", err)
	}

	cart, err := s.carts.Load(ctx, userID)
	if err != nil {
		return nil, opErr("load cart", err)
	}

	if err := cart.Add(*product, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.carts.Save(ctx, userID, cart); err != nil {
		return nil, opErr("save cart", err)
	}

	resp := transport.ToCartResponse(cart)
	return &resp, nil
}

// UpdateQuantity changes the quantity of the line item at the given position.
// Non-positive quantities leave the item as it was.
func (s *Service) UpdateQuantity(ctx context.Context, userID uuid.UUID, index int, quantity int) (*transport.CartResponse, error) {
	cart, err := s.carts.Load(ctx, userID)
	if err != nil {
		return nil, opErr("load cart", err)
	}

	if err := cart.UpdateQuantity(index, quantity); err != nil {
		return nil, err
	}

	if err := s.carts.Save(ctx, userID, cart); err != nil {
		return nil, opErr("save cart", err)
	}

	resp := transport.ToCartResponse(cart)
	return &resp, nil
}

// RemoveItem deletes the line item at the given position.
func (s *Service) RemoveItem(ctx context.Context, userID uuid.UUID, index int) (*transport.CartResponse, error) {
	cart, err := s.carts.Load(ctx, userID)
	if err != nil {
		return nil, opErr("load cart", err)
	}

	if err := cart.Remove(index); err != nil {
		return nil, err
	}

	if err := s.carts.Save(ctx, userID, cart); err != nil {
		return nil, opErr("save cart", err)
	}

	resp := transport.ToCartResponse(cart)
	return &resp, nil
}

// ClearCart discards the user's working cart.
func (s *Service) ClearCart(ctx context.Context, userID uuid.UUID) error {
	if err := s.carts.Clear(ctx, userID); err != nil {
		return opErr("clear cart", err)
	}
	return nil
}

// Assemble turns the working cart into a persisted quotation. The client is
// validated first, then the cart. The cart is cleared only after the
// quotation is stored, so a failed insert leaves the cart intact.
func (s *Service) Assemble(ctx context.Context, userID uuid.UUID, req transport.AssembleQuotationRequest) (*transport.QuotationResponse, error) {
	if req.ClientID == uuid.Nil {
		return nil, ErrMissingClient
	}
	client, err := s.clients.ClientSnapshot(ctx, req.ClientID)
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) && appErr.Kind == apperr.KindNotFound {
			return nil, ErrMissingClient
		}
		return nil, opErr("resolve client", err)
	}

	cart, err := s.carts.Load(ctx, userID)
	if err != nil {
		return nil, opErr("load cart", err)
	}
	if cart.Len() == 0 {
		return nil, ErrEmptyCart
	}

	number, err := s.repo.NextQuotationNumber(ctx)
	if err != nil {
		return nil, opErr("generate quotation number", err)
	}

	now := time.Now()
	quotation := repository.Quotation{
		ID:              uuid.New(),
		QuotationNumber: number,
		Status:          string(transport.QuotationStatusPending),
		ClientID:        client.ID,
		ClientName:      client.Name,
		ClientCompany:   client.Company,
		ClientPhone:     client.Phone,
		ClientEmail:     client.Email,
		ClientAddress:   client.Address,
		Total:           cart.Total(),
		ItemCount:       cart.Len(),
		CreatedBy:       userID,
		CreatedAt:       now,
	}

	lineItems := cart.Items()
	items := make([]repository.QuotationItem, len(lineItems))
	for i, it := range lineItems {
		items[i] = repository.QuotationItem{
			ID:           uuid.New(),
			QuotationID:  quotation.ID,
			ProductID:    it.ProductID,
			Code:         it.Code,
			Name:         it.Name,
			SupplierName: it.SupplierName,
			UnitPrice:    it.UnitPrice,
			Quantity:     it.Quantity,
			Subtotal:     it.Subtotal,
			SortOrder:    i,
		}
	}

	if err := s.repo.CreateWithItems(ctx, &quotation, items); err != nil {
		return nil, opErr("persist quotation", err)
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		// The quotation is already stored; log and move on.
		s.log.Error("failed to clear cart after assembly", "userId", userID, "error", err)
	}

	s.bus.Publish(ctx, events.QuotationCreated{
		BaseEvent:       events.NewBaseEvent(),
		QuotationID:     quotation.ID,
		QuotationNumber: quotation.QuotationNumber,
		ClientID:        client.ID,
		ClientName:      client.Name,
		ClientEmail:     client.Email,
		Total:           quotation.Total,
		ItemCount:       quotation.ItemCount,
	})

	resp := transport.ToQuotationResponse(&quotation, items)
	return &resp, nil
}
