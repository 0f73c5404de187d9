package ledger

import (
	"context"

	"github.com/talkincode/bocmarket/internal/domain"
	"github.com/talkincode/bocmarket/internal/store"
)

// SalesRepository is the append-only sales ledger. Committed sales
// are never updated or deleted; Append is a read-modify-write of the
// full blob under a single key.
type SalesRepository interface {
	List(ctx context.Context) ([]domain.Sale, error)
	GetByID(ctx context.Context, id string) (*domain.Sale, error)
	Append(ctx context.Context, sale domain.Sale) error
	// ReplaceAll exists for backup restore only.
	ReplaceAll(ctx context.Context, sales []domain.Sale) error
}

// BoltSalesRepository is the bolt-backed SalesRepository.
type BoltSalesRepository struct {
	store *store.Store
}

func NewBoltSalesRepository(s *store.Store) *BoltSalesRepository {
	return &BoltSalesRepository{store: s}
}

func (r *BoltSalesRepository) List(ctx context.Context) ([]domain.Sale, error) {
	var sales []domain.Sale
	ok, err := r.store.GetJSON(domain.SalesKey, &sales)
	if err != nil {
		return nil, err
	}
	if !ok || sales == nil {
		return []domain.Sale{}, nil
	}
	return sales, nil
}

func (r *BoltSalesRepository) GetByID(ctx context.Context, id string) (*domain.Sale, error) {
	sales, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range sales {
		if sales[i].ID == id {
			return &sales[i], nil
		}
	}
	return nil, nil
}

func (r *BoltSalesRepository) Append(ctx context.Context, sale domain.Sale) error {
	sales, err := r.List(ctx)
	if err != nil {
		return err
	}
	return r.store.PutJSON(domain.SalesKey, append(sales, sale))
}

func (r *BoltSalesRepository) ReplaceAll(ctx context.Context, sales []domain.Sale) error {
	return r.store.PutJSON(domain.SalesKey, sales)
}
