// Package cartstore persists the in-progress cart between requests,
// keyed by the signed-in user. The cart itself stays a plain value;
// the store only carries it across HTTP round trips.
package cartstore

import (
	"context"

	"github.com/google/uuid"

	"labportal_backend/internal/quotes/domain"
)

// Store loads and saves a user's working cart. Load returns a fresh
// empty cart when the user has none yet.
type Store interface {
	Load(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	Save(ctx context.Context, userID uuid.UUID, cart *domain.Cart) error
	Clear(ctx context.Context, userID uuid.UUID) error
}
