package cart

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/talkincode/bocmarket/internal/domain"
)

// Failure signals for cart mutations. A failed mutation leaves the
// stored cart unchanged.
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrVariantNotFound   = errors.New("variant not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrItemNotFound      = errors.New("cart item not found")
)

// ProductSource supplies the current catalog for stock validation.
type ProductSource interface {
	Load(ctx context.Context) ([]domain.Product, error)
}

// StateWriter syncs the hasCartItems/cartItemsCount convenience flags
// whenever the cart is persisted.
type StateWriter interface {
	MergeAppState(ctx context.Context, patch map[string]interface{}) error
}

// Service owns the pending cart lines. Every mutation validates
// against current catalog stock at the time of the call; this is a
// point-in-time check, not a standing reservation.
type Service struct {
	repo     Repository
	products ProductSource
	state    StateWriter
}

func NewService(repo Repository, products ProductSource, state StateWriter) *Service {
	return &Service{repo: repo, products: products, state: state}
}

// Get returns the pending cart lines, empty on missing or malformed
// stored data.
func (s *Service) Get(ctx context.Context) []domain.CartItem {
	items, err := s.repo.Load(ctx)
	if err != nil {
		zap.L().Error("failed to load cart", zap.Error(err))
		return []domain.CartItem{}
	}
	return items
}

// AddToCart appends a line for the product (and optional variant),
// merging quantities when a line with the same cart key already
// exists. The whole operation is rejected when the requested or
// merged quantity exceeds the available stock.
func (s *Service) AddToCart(ctx context.Context, productID string, quantity int, variantName string) ([]domain.CartItem, error) {
	products, err := s.products.Load(ctx)
	if err != nil {
		return nil, err
	}

	var product *domain.Product
	for i := range products {
		if products[i].ID == productID {
			product = &products[i]
			break
		}
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	available := product.Quantity
	if variantName != "" && product.HasVariants {
		variant := product.Variant(variantName)
		if variant == nil {
			return nil, ErrVariantNotFound
		}
		available = variant.Quantity
	}
	if quantity > available {
		return nil, ErrInsufficientStock
	}

	items := s.Get(ctx)
	key := domain.CartKey(productID, variantName)

	merged := false
	for i := range items {
		if items[i].CartItemKey == key {
			newQuantity := items[i].Quantity + quantity
			if newQuantity > available {
				return nil, ErrInsufficientStock
			}
			items[i].Quantity = newQuantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, domain.CartItem{
			CartItemKey: key,
			ProductID:   productID,
			Quantity:    quantity,
			VariantName: variantName,
		})
	}

	if err := s.save(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateQuantity overwrites the quantity of an existing line. A
// quantity of zero or less removes the line instead. Unlike
// AddToCart, no stock re-check happens here; callers are expected to
// have validated the new quantity.
func (s *Service) UpdateQuantity(ctx context.Context, cartItemKey string, quantity int) ([]domain.CartItem, error) {
	if quantity <= 0 {
		return s.Remove(ctx, cartItemKey), nil
	}

	items := s.Get(ctx)
	idx := -1
	for i := range items {
		if items[i].CartItemKey == cartItemKey {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrItemNotFound
	}

	items[idx].Quantity = quantity
	if err := s.save(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Remove filters out the line with the given key. An absent key is a
// no-op returning the unchanged cart.
func (s *Service) Remove(ctx context.Context, cartItemKey string) []domain.CartItem {
	items := s.Get(ctx)
	filtered := items[:0:0]
	for _, item := range items {
		if item.CartItemKey != cartItemKey {
			filtered = append(filtered, item)
		}
	}
	if err := s.save(ctx, filtered); err != nil {
		zap.L().Error("failed to save cart", zap.Error(err))
		return s.Get(ctx)
	}
	return filtered
}

// Clear unconditionally empties the cart and resets the cart flags.
func (s *Service) Clear(ctx context.Context) []domain.CartItem {
	if err := s.repo.Clear(ctx); err != nil {
		zap.L().Error("failed to clear cart", zap.Error(err))
		return []domain.CartItem{}
	}
	if err := s.state.MergeAppState(ctx, map[string]interface{}{
		"hasCartItems":   false,
		"cartItemsCount": 0,
	}); err != nil {
		zap.L().Error("failed to sync cart flags", zap.Error(err))
	}
	return []domain.CartItem{}
}

// VerifyEmpty reports whether the cart is empty and how many lines it
// holds.
func (s *Service) VerifyEmpty(ctx context.Context) (bool, int) {
	items := s.Get(ctx)
	return len(items) == 0, len(items)
}

func (s *Service) save(ctx context.Context, items []domain.CartItem) error {
	if err := s.repo.SaveAll(ctx, items); err != nil {
		return err
	}
	if err := s.state.MergeAppState(ctx, map[string]interface{}{
		"hasCartItems":   len(items) > 0,
		"cartItemsCount": len(items),
	}); err != nil {
		zap.L().Error("failed to sync cart flags", zap.Error(err))
	}
	return nil
}
