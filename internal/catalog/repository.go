package catalog

import (
	"context"

	"github.com/talkincode/bocmarket/internal/domain"
	"github.com/talkincode/bocmarket/internal/store"
)

// Repository is the full-blob product collection. Load returns the
// whole catalog; SaveAll rewrites it under a single key, which makes
// catalog-only updates atomic at the store level.
type Repository interface {
	Load(ctx context.Context) ([]domain.Product, error)
	SaveAll(ctx context.Context, products []domain.Product) error
}

// BoltRepository is the bolt-backed Repository implementation.
type BoltRepository struct {
	store *store.Store
}

func NewBoltRepository(s *store.Store) *BoltRepository {
	return &BoltRepository{store: s}
}

func (r *BoltRepository) Load(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	ok, err := r.store.GetJSON(domain.ProductsKey, &products)
	if err != nil {
		return nil, err
	}
	if !ok || products == nil {
		return []domain.Product{}, nil
	}
	return products, nil
}

func (r *BoltRepository) SaveAll(ctx context.Context, products []domain.Product) error {
	return r.store.PutJSON(domain.ProductsKey, products)
}
