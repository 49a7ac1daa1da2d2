// Package domain holds the quotation-assembly domain types: the in-progress
// cart, its line items, and the snapshots they are built from.
//
// A Cart is a plain in-memory value. It performs no I/O; persistence of carts
// between requests is the cartstore package's concern.
package domain

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"labportal_backend/platform/apperr"
)

// ProductSnapshot is the catalog's view of a product at the moment it is
// added to a cart. Line items copy these fields; later catalog edits do not
// reach carts already in progress.
type ProductSnapshot struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Specification string          `json:"specification"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	StockQuantity int             `json:"stockQuantity"`
	SupplierName  string          `json:"supplierName"`
}

// ClientSnapshot is the client directory's view of a client at assembly time.
type ClientSnapshot struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Company string    `json:"company"`
	Phone   string    `json:"phone"`
	Email   string    `json:"email"`
	Address string    `json:"address"`
}

// LineItem is one product entry within a cart. Subtotal is derived and is
// recomputed on every mutation; it always equals UnitPrice * Quantity.
type LineItem struct {
	ProductID    uuid.UUID       `json:"productId"`
	Name         string          `json:"name"`
	Code         string          `json:"code"`
	SupplierName string          `json:"supplierName"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Quantity     int             `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// ErrInvalidQuantity is returned when adding a non-positive quantity.
var ErrInvalidQuantity = apperr.Validation("quantity must be greater than zero")

// ErrIndexOutOfRange is returned for cart operations on a position that
// does not exist.
var ErrIndexOutOfRange = apperr.Validation("no cart item at that position")

// Cart is the ordered working set of line items for an in-progress
// quotation. At most one line item exists per product: adding a product
// already present merges into the existing item. Not safe for concurrent
// use; the cart store serializes access per user.
type Cart struct {
	items []LineItem
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add puts quantity units of the product into the cart. If the product is
// already present, its quantity is incremented and the subtotal recomputed;
// otherwise a new line item is appended, preserving insertion order.
func (c *Cart) Add(product ProductSnapshot, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	for i := range c.items {
		if c.items[i].ProductID == product.ID {
			c.items[i].Quantity += quantity
			c.items[i].Subtotal = c.items[i].UnitPrice.Mul(decimal.NewFromInt(int64(c.items[i].Quantity)))
			return nil
		}
	}

	c.items = append(c.items, LineItem{
		ProductID:    product.ID,
		Name:         product.Name,
		Code:         product.Code,
		SupplierName: product.SupplierName,
		UnitPrice:    product.UnitPrice,
		Quantity:     quantity,
		Subtotal:     product.UnitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	})
	return nil
}

// UpdateQuantity replaces the quantity of the item at index and recomputes
// its subtotal. A non-positive quantity is silently ignored, mirroring the
// edit-in-place behavior of the quotation form.
func (c *Cart) UpdateQuantity(index, quantity int) error {
	if index < 0 || index >= len(c.items) {
		return ErrIndexOutOfRange
	}
	if quantity <= 0 {
		return nil
	}

	c.items[index].Quantity = quantity
	c.items[index].Subtotal = c.items[index].UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	return nil
}

// Remove deletes the item at index; later items shift down by one.
func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.items) {
		return ErrIndexOutOfRange
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	return nil
}

// Total returns the sum of all current subtotals, recomputed on demand.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal)
	}
	return total
}

// Clear resets the cart to an empty sequence.
func (c *Cart) Clear() {
	c.items = nil
}

// Len returns the number of line items.
func (c *Cart) Len() int {
	return len(c.items)
}

// Items returns a copy of the line items. Mutating the returned slice does
// not affect the cart.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// MarshalJSON serializes the cart's line items for external storage.
func (c *Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.items)
}

// UnmarshalJSON restores a cart from its serialized line items.
func (c *Cart) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &c.items)
}
