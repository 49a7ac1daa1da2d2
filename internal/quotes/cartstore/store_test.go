package cartstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"labportal_backend/internal/quotes/domain"
)

func sampleCart(t *testing.T) *domain.Cart {
	t.Helper()
	cart := domain.NewCart()
	err := cart.Add(domain.ProductSnapshot{
		ID:        uuid.New(),
		Code:      "MIC-200",
		Name:      "Binocular microscope",
		UnitPrice: decimal.RequireFromString("1499.50"),
	}, 2)
	if err != nil {
		t.Fatalf("build cart: %v", err)
	}
	return cart
}

func runStoreTests(t *testing.T, store Store) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("load missing returns empty cart", func(t *testing.T) {
		cart, err := store.Load(ctx, userID)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if cart.Len() != 0 {
			t.Fatalf("expected empty cart, got %d items", cart.Len())
		}
	})

	t.Run("save then load round trips", func(t *testing.T) {
		saved := sampleCart(t)
		if err := store.Save(ctx, userID, saved); err != nil {
			t.Fatalf("save: %v", err)
		}

		loaded, err := store.Load(ctx, userID)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if loaded.Len() != 1 {
			t.Fatalf("expected 1 item, got %d", loaded.Len())
		}
		if !loaded.Total().Equal(saved.Total()) {
			t.Fatalf("total changed: %s != %s", loaded.Total(), saved.Total())
		}
	})

	t.Run("carts are isolated per user", func(t *testing.T) {
		other, err := store.Load(ctx, uuid.New())
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if other.Len() != 0 {
			t.Fatal("another user must not see this cart")
		}
	})

	t.Run("clear removes the cart", func(t *testing.T) {
		if err := store.Clear(ctx, userID); err != nil {
			t.Fatalf("clear: %v", err)
		}
		cart, err := store.Load(ctx, userID)
		if err != nil {
			t.Fatalf("load after clear: %v", err)
		}
		if cart.Len() != 0 {
			t.Fatal("expected empty cart after clear")
		}
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, NewMemoryStore())
}

func TestMemoryStoreLoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	userID := uuid.New()

	if err := store.Save(ctx, userID, sampleCart(t)); err != nil {
		t.Fatalf("save: %v", err)
	}

	first, err := store.Load(ctx, userID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	first.Clear()

	second, err := store.Load(ctx, userID)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if second.Len() != 1 {
		t.Fatal("mutating a loaded cart must not affect the stored one")
	}
}

func TestRedisStore(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	runStoreTests(t, NewRedisStore(client, time.Hour))
}

func TestRedisStoreExpiresCarts(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	store := NewRedisStore(client, time.Minute)
	userID := uuid.New()

	if err := store.Save(ctx, userID, sampleCart(t)); err != nil {
		t.Fatalf("save: %v", err)
	}

	srv.FastForward(2 * time.Minute)

	cart, err := store.Load(ctx, userID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cart.Len() != 0 {
		t.Fatal("expected cart to expire after the TTL")
	}
}
