package backup

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/talkincode/bocmarket/internal/catalog"
	"github.com/talkincode/bocmarket/internal/domain"
	"github.com/talkincode/bocmarket/internal/ledger"
	"github.com/talkincode/bocmarket/internal/settings"
	"github.com/talkincode/bocmarket/internal/store"
)

type backupFixture struct {
	kv       *store.Store
	products catalog.Repository
	sales    ledger.SalesRepository
	settings *settings.Manager
	svc      *Service
}

func setupBackup(t *testing.T) *backupFixture {
	t.Helper()
	kv, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })

	productRepo := catalog.NewBoltRepository(kv)
	salesRepo := ledger.NewBoltSalesRepository(kv)
	mgr := settings.NewManager(kv)
	return &backupFixture{
		kv:       kv,
		products: productRepo,
		sales:    salesRepo,
		settings: mgr,
		svc:      NewService(kv, productRepo, salesRepo, mgr),
	}
}

func TestCreate(t *testing.T) {
	f := setupBackup(t)
	ctx := context.Background()

	if err := f.products.SaveAll(ctx, []domain.Product{{ID: "p1", Name: "Taza", Price: 8, Quantity: 4}}); err != nil {
		t.Fatalf("seed products: %v", err)
	}
	if err := f.sales.Append(ctx, domain.Sale{ID: "s1", Date: time.Now(), TotalAmount: 8}); err != nil {
		t.Fatalf("seed sale: %v", err)
	}

	b, err := f.svc.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(b.Products) != 1 || len(b.Sales) != 1 {
		t.Errorf("snapshot = %d products, %d sales", len(b.Products), len(b.Sales))
	}
	if b.Version == "" || b.BackupDate == "" {
		t.Errorf("missing version or date: %+v", b)
	}

	// The snapshot is persisted under its own key.
	var stored domain.Backup
	ok, err := f.kv.GetJSON(domain.BackupKey, &stored)
	if err != nil || !ok {
		t.Fatalf("stored snapshot missing: ok=%v err=%v", ok, err)
	}
	if len(stored.Products) != 1 {
		t.Errorf("stored products = %d", len(stored.Products))
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	f := setupBackup(t)
	ctx := context.Background()

	raw := map[string]interface{}{
		"products": []map[string]interface{}{
			{"id": "p1", "name": "Camiseta", "price": 20, "quantity": 6,
				"hasVariants": true,
				"variants":    []map[string]interface{}{{"name": "S", "quantity": 6}},
				"createdAt":   "2026-01-05T10:00:00Z"},
		},
		"sales": []map[string]interface{}{
			{"id": "s1", "date": "2026-02-01T12:00:00Z", "totalAmount": 20,
				"paymentMethod": "efectivo", "timestamp": 1769947200000},
		},
		"emailConfig": map[string]interface{}{
			"defaultEmail": "caja@bocmarket.example", "enableEmailNotifications": true,
		},
		"backupDate": "2026-02-02T00:00:00Z",
		"version":    "1.0.0",
	}
	if err := f.svc.Restore(ctx, raw); err != nil {
		t.Fatalf("restore: %v", err)
	}

	products, _ := f.products.Load(ctx)
	if len(products) != 1 || products[0].Name != "Camiseta" {
		t.Fatalf("products = %+v", products)
	}
	if products[0].CreatedAt.IsZero() {
		t.Error("createdAt not decoded")
	}
	sales, _ := f.sales.List(ctx)
	if len(sales) != 1 || sales[0].PaymentMethod != domain.PaymentMethodCash {
		t.Errorf("sales = %+v", sales)
	}
	cfg := f.settings.EmailConfig(ctx)
	if cfg.DefaultEmail != "caja@bocmarket.example" || !cfg.EnableEmailNotifications {
		t.Errorf("email config = %+v", cfg)
	}

	state := f.settings.AppState(ctx)
	if state["hasProducts"] != true {
		t.Errorf("app state not synced: %+v", state)
	}
}

func TestRestoreClearsCart(t *testing.T) {
	f := setupBackup(t)
	ctx := context.Background()

	if err := f.kv.PutJSON(domain.CartKeyName, []domain.CartItem{{CartItemKey: "p1", ProductID: "p1", Quantity: 1}}); err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	raw := map[string]interface{}{
		"products": []map[string]interface{}{},
		"sales":    []map[string]interface{}{},
	}
	if err := f.svc.Restore(ctx, raw); err != nil {
		t.Fatalf("restore: %v", err)
	}
	_, ok, _ := f.kv.Get(domain.CartKeyName)
	if ok {
		t.Error("cart key should be removed on restore")
	}
}

func TestRestoreRejectsEmptyPayload(t *testing.T) {
	f := setupBackup(t)

	if err := f.svc.Restore(context.Background(), nil); err == nil {
		t.Error("expected error for empty payload")
	}
}
