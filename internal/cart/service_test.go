package cart

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/talkincode/bocmarket/internal/catalog"
	"github.com/talkincode/bocmarket/internal/domain"
	"github.com/talkincode/bocmarket/internal/settings"
	"github.com/talkincode/bocmarket/internal/store"
)

func setupCart(t *testing.T, products []domain.Product) (*Service, *settings.Manager) {
	t.Helper()
	kv, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })

	productRepo := catalog.NewBoltRepository(kv)
	if err := productRepo.SaveAll(context.Background(), products); err != nil {
		t.Fatalf("seed products: %v", err)
	}
	mgr := settings.NewManager(kv)
	return NewService(NewBoltRepository(kv), productRepo, mgr), mgr
}

func simpleProduct() domain.Product {
	return domain.Product{ID: "p1", Name: "CD Álbum", Price: 12, Quantity: 5}
}

func variantProduct() domain.Product {
	return domain.Product{
		ID: "p2", Name: "Camiseta", Price: 20, Quantity: 4, HasVariants: true,
		Variants: []domain.Variant{{Name: "S", Quantity: 1}, {Name: "M", Quantity: 3}},
	}
}

func TestAddToCart(t *testing.T) {
	svc, _ := setupCart(t, []domain.Product{simpleProduct()})
	ctx := context.Background()

	items, err := svc.AddToCart(ctx, "p1", 2, "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(items))
	}
	if items[0].CartItemKey != "p1" || items[0].Quantity != 2 {
		t.Errorf("unexpected line %+v", items[0])
	}
}

func TestAddToCartMergesSameKey(t *testing.T) {
	svc, _ := setupCart(t, []domain.Product{simpleProduct()})
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "p1", 2, ""); err != nil {
		t.Fatalf("first add: %v", err)
	}
	items, err := svc.AddToCart(ctx, "p1", 3, "")
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected merged line, got %d lines", len(items))
	}
	if items[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5", items[0].Quantity)
	}
}

func TestAddToCartMergedQuantityExceedsStock(t *testing.T) {
	svc, _ := setupCart(t, []domain.Product{simpleProduct()})
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "p1", 4, ""); err != nil {
		t.Fatalf("first add: %v", err)
	}
	_, err := svc.AddToCart(ctx, "p1", 2, "")
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
	// The stored cart must be unchanged by the rejected call.
	items := svc.Get(ctx)
	if len(items) != 1 || items[0].Quantity != 4 {
		t.Errorf("cart mutated by rejected add: %+v", items)
	}
}

func TestAddToCartVariantStock(t *testing.T) {
	svc, _ := setupCart(t, []domain.Product{variantProduct()})
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "p2", 2, "S"); !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("err = %v, want ErrInsufficientStock (variant S has 1)", err)
	}

	items, err := svc.AddToCart(ctx, "p2", 2, "M")
	if err != nil {
		t.Fatalf("add variant: %v", err)
	}
	if items[0].CartItemKey != "p2_M" {
		t.Errorf("key = %q, want p2_M", items[0].CartItemKey)
	}
}

func TestAddToCartUnknownProductAndVariant(t *testing.T) {
	svc, _ := setupCart(t, []domain.Product{variantProduct()})
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "nope", 1, ""); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("err = %v, want ErrProductNotFound", err)
	}
	if _, err := svc.AddToCart(ctx, "p2", 1, "XL"); !errors.Is(err, ErrVariantNotFound) {
		t.Errorf("err = %v, want ErrVariantNotFound", err)
	}
}

func TestUpdateQuantity(t *testing.T) {
	svc, _ := setupCart(t, []domain.Product{simpleProduct()})
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "p1", 2, ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	items, err := svc.UpdateQuantity(ctx, "p1", 4)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if items[0].Quantity != 4 {
		t.Errorf("quantity = %d, want 4", items[0].Quantity)
	}
}

func TestUpdateQuantityBeyondStock(t *testing.T) {
	svc, _ := setupCart(t, []domain.Product{simpleProduct()})
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "p1", 2, ""); err != nil {
		t.Fatalf("add: %v", err)
	}

	// Quantity updates do not re-check stock; only AddToCart does.
	// Checkout validates again, so an over-stock line fails there.
	items, err := svc.UpdateQuantity(ctx, "p1", 50)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if items[0].Quantity != 50 {
		t.Errorf("quantity = %d, want 50", items[0].Quantity)
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	svc, _ := setupCart(t, []domain.Product{simpleProduct()})
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "p1", 2, ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	items, err := svc.UpdateQuantity(ctx, "p1", 0)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty cart, got %+v", items)
	}
}

func TestUpdateQuantityMissingLine(t *testing.T) {
	svc, _ := setupCart(t, []domain.Product{simpleProduct()})

	_, err := svc.UpdateQuantity(context.Background(), "nope", 2)
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("err = %v, want ErrItemNotFound", err)
	}
}

func TestRemoveAbsentKeyIsNoop(t *testing.T) {
	svc, _ := setupCart(t, []domain.Product{simpleProduct()})
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "p1", 1, ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	items := svc.Remove(ctx, "absent")
	if len(items) != 1 {
		t.Errorf("no-op remove changed the cart: %+v", items)
	}
}

func TestClearResetsFlags(t *testing.T) {
	svc, mgr := setupCart(t, []domain.Product{simpleProduct()})
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "p1", 2, ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !mgr.BoolFlag(ctx, "hasCartItems") {
		t.Fatal("expected hasCartItems after add")
	}

	items := svc.Clear(ctx)
	if len(items) != 0 {
		t.Errorf("expected empty cart, got %+v", items)
	}
	if mgr.BoolFlag(ctx, "hasCartItems") {
		t.Error("hasCartItems not reset")
	}
	if mgr.IntFlag(ctx, "cartItemsCount") != 0 {
		t.Error("cartItemsCount not reset")
	}
}

func TestVerifyEmpty(t *testing.T) {
	svc, _ := setupCart(t, []domain.Product{simpleProduct()})
	ctx := context.Background()

	empty, count := svc.VerifyEmpty(ctx)
	if !empty || count != 0 {
		t.Errorf("empty=%v count=%d, want true 0", empty, count)
	}

	if _, err := svc.AddToCart(ctx, "p1", 1, ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	empty, count = svc.VerifyEmpty(ctx)
	if empty || count != 1 {
		t.Errorf("empty=%v count=%d, want false 1", empty, count)
	}
}
