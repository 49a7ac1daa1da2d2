package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func snapshot(id uuid.UUID, price string) ProductSnapshot {
	return ProductSnapshot{
		ID:           id,
		Code:         "LAB-001",
		Name:         "Centrifuge",
		UnitPrice:    decimal.RequireFromString(price),
		SupplierName: "Equipos del Norte",
	}
}

func TestCartAddMergesDuplicateProduct(t *testing.T) {
	p1 := uuid.New()
	cart := NewCart()

	if err := cart.Add(snapshot(p1, "100"), 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := cart.Total(); !got.Equal(decimal.RequireFromString("200")) {
		t.Fatalf("expected total 200, got %s", got)
	}

	if err := cart.Add(snapshot(p1, "100"), 3); err != nil {
		t.Fatalf("second add: %v", err)
	}

	if cart.Len() != 1 {
		t.Fatalf("expected single merged line item, got %d", cart.Len())
	}
	item := cart.Items()[0]
	if item.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", item.Quantity)
	}
	if !item.Subtotal.Equal(decimal.RequireFromString("500")) {
		t.Fatalf("expected subtotal 500, got %s", item.Subtotal)
	}
	if got := cart.Total(); !got.Equal(decimal.RequireFromString("500")) {
		t.Fatalf("expected total 500, got %s", got)
	}

	if err := cart.Remove(0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if cart.Len() != 0 {
		t.Fatalf("expected empty cart, got %d items", cart.Len())
	}
	if !cart.Total().IsZero() {
		t.Fatalf("expected zero total, got %s", cart.Total())
	}
}

func TestCartAddLeavesUnrelatedItemsUntouched(t *testing.T) {
	p1, p2 := uuid.New(), uuid.New()
	cart := NewCart()

	if err := cart.Add(snapshot(p1, "10.50"), 1); err != nil {
		t.Fatalf("add p1: %v", err)
	}
	if err := cart.Add(snapshot(p2, "3.25"), 4); err != nil {
		t.Fatalf("add p2: %v", err)
	}
	if err := cart.Add(snapshot(p1, "10.50"), 2); err != nil {
		t.Fatalf("merge p1: %v", err)
	}

	items := cart.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	// Insertion order preserved, merge does not reorder.
	if items[0].ProductID != p1 || items[1].ProductID != p2 {
		t.Fatal("items out of insertion order")
	}
	if items[1].Quantity != 4 || !items[1].Subtotal.Equal(decimal.RequireFromString("13")) {
		t.Fatalf("unrelated item changed: %+v", items[1])
	}
}

func TestCartAddRejectsNonPositiveQuantity(t *testing.T) {
	cart := NewCart()
	for _, qty := range []int{0, -1} {
		if err := cart.Add(snapshot(uuid.New(), "5"), qty); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("quantity %d: expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
	if cart.Len() != 0 {
		t.Fatal("failed add must not mutate the cart")
	}
}

func TestCartUpdateQuantityRecomputesSubtotal(t *testing.T) {
	cart := NewCart()
	if err := cart.Add(snapshot(uuid.New(), "19.99"), 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := cart.UpdateQuantity(0, 3); err != nil {
		t.Fatalf("update: %v", err)
	}
	item := cart.Items()[0]
	if item.Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", item.Quantity)
	}
	if !item.Subtotal.Equal(decimal.RequireFromString("59.97")) {
		t.Fatalf("expected subtotal 59.97, got %s", item.Subtotal)
	}
}

func TestCartUpdateQuantityIgnoresNonPositive(t *testing.T) {
	cart := NewCart()
	if err := cart.Add(snapshot(uuid.New(), "7"), 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	// Silent no-op, not an error.
	if err := cart.UpdateQuantity(0, 0); err != nil {
		t.Fatalf("update to 0: %v", err)
	}
	if err := cart.UpdateQuantity(0, -5); err != nil {
		t.Fatalf("update to -5: %v", err)
	}

	item := cart.Items()[0]
	if item.Quantity != 2 || !item.Subtotal.Equal(decimal.RequireFromString("14")) {
		t.Fatalf("non-positive update must not change the item: %+v", item)
	}
}

func TestCartUpdateQuantityOutOfRange(t *testing.T) {
	cart := NewCart()
	if err := cart.UpdateQuantity(0, 1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestCartRemoveShiftsLaterItems(t *testing.T) {
	p1, p2, p3 := uuid.New(), uuid.New(), uuid.New()
	cart := NewCart()
	for _, p := range []uuid.UUID{p1, p2, p3} {
		if err := cart.Add(snapshot(p, "1"), 1); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	if err := cart.Remove(1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	items := cart.Items()
	if len(items) != 2 || items[0].ProductID != p1 || items[1].ProductID != p3 {
		t.Fatalf("expected [p1 p3] after removal, got %v", items)
	}

	if err := cart.Remove(5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestCartSubtotalInvariantHoldsThroughMutations(t *testing.T) {
	cart := NewCart()
	p1, p2 := uuid.New(), uuid.New()

	steps := []func() error{
		func() error { return cart.Add(snapshot(p1, "0.10"), 3) },
		func() error { return cart.Add(snapshot(p2, "99.999"), 7) },
		func() error { return cart.UpdateQuantity(0, 11) },
		func() error { return cart.Add(snapshot(p1, "0.10"), 1) },
		func() error { return cart.Remove(1) },
	}

	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		expectedTotal := decimal.Zero
		for _, item := range cart.Items() {
			want := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			if !item.Subtotal.Equal(want) {
				t.Fatalf("step %d: subtotal %s != unitPrice*quantity %s", i, item.Subtotal, want)
			}
			expectedTotal = expectedTotal.Add(item.Subtotal)
		}
		if !cart.Total().Equal(expectedTotal) {
			t.Fatalf("step %d: total %s != sum of subtotals %s", i, cart.Total(), expectedTotal)
		}
	}
}

func TestCartClearEmptiesAndTotalIsZero(t *testing.T) {
	cart := NewCart()
	if err := cart.Add(snapshot(uuid.New(), "12"), 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	cart.Clear()
	if cart.Len() != 0 || !cart.Total().IsZero() {
		t.Fatalf("expected cleared cart, len=%d total=%s", cart.Len(), cart.Total())
	}
}

func TestCartJSONRoundTrip(t *testing.T) {
	cart := NewCart()
	if err := cart.Add(snapshot(uuid.New(), "49.90"), 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	raw, err := json.Marshal(cart)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	restored := NewCart()
	if err := json.Unmarshal(raw, restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if restored.Len() != 1 {
		t.Fatalf("expected 1 item after round trip, got %d", restored.Len())
	}
	if !restored.Total().Equal(cart.Total()) {
		t.Fatalf("total changed across round trip: %s != %s", restored.Total(), cart.Total())
	}
}
