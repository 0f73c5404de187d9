package ledger

import (
	"context"

	"github.com/talkincode/bocmarket/internal/domain"
	"github.com/talkincode/bocmarket/internal/store"
)

// ReturnsRepository is the append-only returns ledger.
type ReturnsRepository interface {
	List(ctx context.Context) ([]domain.Return, error)
	Append(ctx context.Context, ret domain.Return) error
}

// BoltReturnsRepository is the bolt-backed ReturnsRepository.
type BoltReturnsRepository struct {
	store *store.Store
}

func NewBoltReturnsRepository(s *store.Store) *BoltReturnsRepository {
	return &BoltReturnsRepository{store: s}
}

func (r *BoltReturnsRepository) List(ctx context.Context) ([]domain.Return, error) {
	var returns []domain.Return
	ok, err := r.store.GetJSON(domain.ReturnsKey, &returns)
	if err != nil {
		return nil, err
	}
	if !ok || returns == nil {
		return []domain.Return{}, nil
	}
	return returns, nil
}

func (r *BoltReturnsRepository) Append(ctx context.Context, ret domain.Return) error {
	returns, err := r.List(ctx)
	if err != nil {
		return err
	}
	return r.store.PutJSON(domain.ReturnsKey, append(returns, ret))
}
