package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/talkincode/bocmarket/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// Service owns the product catalog: CRUD plus the variant-sum
// invariant (quantity == sum of variant quantities whenever a product
// has variants), which it re-derives on every mutation.
type Service struct {
	repo Repository
	node *snowflake.Node
}

func NewService(repo Repository, node *snowflake.Node) *Service {
	return &Service{repo: repo, node: node}
}

// List returns the current catalog. Missing or unreadable data
// degrades to an empty catalog; read failures never reach callers.
func (s *Service) List(ctx context.Context) []domain.Product {
	products, err := s.repo.Load(ctx)
	if err != nil {
		zap.L().Error("failed to load products", zap.Error(err))
		return []domain.Product{}
	}
	return products
}

// Add assigns a fresh id and creation timestamp, appends the product
// and persists the full catalog. On a persistence error the prior
// catalog is returned unchanged (logged, not surfaced).
func (s *Service) Add(ctx context.Context, input domain.Product) []domain.Product {
	products := s.List(ctx)

	input.ID = s.node.Generate().String()
	input.CreatedAt = time.Now()
	normalize(&input)

	updated := append(append([]domain.Product{}, products...), input)
	if err := s.repo.SaveAll(ctx, updated); err != nil {
		zap.L().Error("failed to save products", zap.Error(err))
		return products
	}
	return updated
}

// Update merges a partial patch into the product with the given id.
// The id and creation timestamp are never altered. Returns
// ErrProductNotFound when the id is absent.
func (s *Service) Update(ctx context.Context, id string, patch map[string]interface{}) (*domain.Product, error) {
	products, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range products {
		if products[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrProductNotFound
	}

	updated := products[idx]
	if err := mergePatch(&updated, patch); err != nil {
		return nil, err
	}
	updated.ID = products[idx].ID
	updated.CreatedAt = products[idx].CreatedAt
	normalize(&updated)

	products[idx] = updated
	if err := s.repo.SaveAll(ctx, products); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the product with the given id, returning false when
// it was not present (a no-op, not an error).
func (s *Service) Delete(ctx context.Context, id string) bool {
	products, err := s.repo.Load(ctx)
	if err != nil {
		zap.L().Error("failed to load products", zap.Error(err))
		return false
	}

	filtered := products[:0:0]
	for _, p := range products {
		if p.ID != id {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == len(products) {
		return false
	}
	if err := s.repo.SaveAll(ctx, filtered); err != nil {
		zap.L().Error("failed to save products", zap.Error(err))
		return false
	}
	return true
}

// mergePatch decodes a loose field map onto an existing product.
func mergePatch(p *domain.Product, patch map[string]interface{}) error {
	clean := make(map[string]interface{}, len(patch))
	for k, v := range patch {
		if k == "id" || k == "createdAt" {
			continue
		}
		clean[k] = v
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           p,
		WeaklyTypedInput: true,
		TagName:          "json",
	})
	if err != nil {
		return err
	}
	return dec.Decode(clean)
}

// normalize re-derives the total quantity for variant products.
func normalize(p *domain.Product) {
	if p.Variants == nil {
		p.Variants = []domain.Variant{}
	}
	if p.HasVariants {
		p.Quantity = p.VariantTotal()
	}
}
