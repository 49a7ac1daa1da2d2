package cartstore

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"labportal_backend/internal/quotes/domain"
)

// MemoryStore keeps carts in process memory. It is the default when
// Redis is not configured; carts do not survive a restart.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[uuid.UUID][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[uuid.UUID][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, userID uuid.UUID) (*domain.Cart, error) {
	s.mu.RLock()
	raw, ok := s.carts[userID]
	s.mu.RUnlock()

	cart := domain.NewCart()
	if !ok {
		return cart, nil
	}
	if err := json.Unmarshal(raw, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *MemoryStore) Save(_ context.Context, userID uuid.UUID, cart *domain.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.carts[userID] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	delete(s.carts, userID)
	s.mu.Unlock()
	return nil
}
