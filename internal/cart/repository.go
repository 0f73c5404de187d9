package cart

import (
	"context"

	"github.com/talkincode/bocmarket/internal/domain"
	"github.com/talkincode/bocmarket/internal/store"
)

// Repository is the full-blob cart collection.
type Repository interface {
	Load(ctx context.Context) ([]domain.CartItem, error)
	SaveAll(ctx context.Context, items []domain.CartItem) error
	// Clear removes the cart key entirely rather than writing an
	// empty blob, matching the stored data format.
	Clear(ctx context.Context) error
}

// BoltRepository is the bolt-backed Repository implementation.
type BoltRepository struct {
	store *store.Store
}

func NewBoltRepository(s *store.Store) *BoltRepository {
	return &BoltRepository{store: s}
}

func (r *BoltRepository) Load(ctx context.Context) ([]domain.CartItem, error) {
	var items []domain.CartItem
	ok, err := r.store.GetJSON(domain.CartKeyName, &items)
	if err != nil {
		return nil, err
	}
	if !ok || items == nil {
		return []domain.CartItem{}, nil
	}
	return items, nil
}

func (r *BoltRepository) SaveAll(ctx context.Context, items []domain.CartItem) error {
	return r.store.PutJSON(domain.CartKeyName, items)
}

func (r *BoltRepository) Clear(ctx context.Context) error {
	return r.store.Remove(domain.CartKeyName)
}
