package report

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/talkincode/bocmarket/internal/domain"
	"github.com/talkincode/bocmarket/internal/ledger"
	"github.com/talkincode/bocmarket/internal/store"
)

func setupReport(t *testing.T, sales []domain.Sale) *Service {
	t.Helper()
	kv, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })

	repo := ledger.NewBoltSalesRepository(kv)
	if err := repo.ReplaceAll(context.Background(), sales); err != nil {
		t.Fatalf("seed sales: %v", err)
	}
	return NewService(repo)
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleSales() []domain.Sale {
	return []domain.Sale{
		{
			ID: "s1", Date: day("2026-03-10 09:30"), TotalAmount: 44,
			PaymentMethod: domain.PaymentMethodCash,
			Items: []domain.SaleItem{
				{ProductID: "p1", ProductName: "Camiseta", Quantity: 2, UnitPrice: 20, TotalPrice: 40},
				{ProductID: "p3", ProductName: "Pegatina", Quantity: 2, UnitPrice: 2, TotalPrice: 4},
			},
		},
		{
			ID: "s2", Date: day("2026-03-10 17:10"), TotalAmount: 12,
			PaymentMethod: domain.PaymentMethodCard,
			Items: []domain.SaleItem{
				{ProductID: "p2", ProductName: "CD Álbum", Quantity: 1, UnitPrice: 12, TotalPrice: 12},
			},
		},
		{
			ID: "s3", Date: day("2026-03-11 11:00"), TotalAmount: 100,
			PaymentMethod: domain.PaymentMethodCash,
			Items: []domain.SaleItem{
				{ProductID: "p1", ProductName: "Camiseta", Quantity: 5, UnitPrice: 20, TotalPrice: 100},
			},
		},
	}
}

func TestDaily(t *testing.T) {
	svc := setupReport(t, sampleSales())

	rep, err := svc.Daily(context.Background(), "2026-03-10")
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if rep.Date != "2026-03-10" {
		t.Errorf("date = %q", rep.Date)
	}
	if rep.SalesCount != 2 || rep.TotalSales != 2 {
		t.Errorf("counts = %d/%d, want 2/2", rep.SalesCount, rep.TotalSales)
	}
	if rep.TotalAmount != 56 {
		t.Errorf("total = %v, want 56", rep.TotalAmount)
	}
	if rep.TotalItems != 5 {
		t.Errorf("items = %d, want 5", rep.TotalItems)
	}
	if rep.PaymentMethods.Efectivo != 44 || rep.PaymentMethods.Tarjeta != 12 {
		t.Errorf("breakdown = %+v", rep.PaymentMethods)
	}
}

func TestDailyAcceptsTimestampInput(t *testing.T) {
	svc := setupReport(t, sampleSales())

	rep, err := svc.Daily(context.Background(), "2026-03-11T08:00:00Z")
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if rep.SalesCount != 1 {
		t.Errorf("count = %d, want 1", rep.SalesCount)
	}
}

func TestDailyEmptyDay(t *testing.T) {
	svc := setupReport(t, sampleSales())

	rep, err := svc.Daily(context.Background(), "2026-03-12")
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if rep.SalesCount != 0 || rep.TotalAmount != 0 {
		t.Errorf("expected empty report, got %+v", rep)
	}
	if rep.Sales == nil || rep.TopProducts == nil {
		t.Error("expected empty slices, not nil")
	}
}

func TestDailyBadDate(t *testing.T) {
	svc := setupReport(t, nil)

	if _, err := svc.Daily(context.Background(), "not a date"); err == nil {
		t.Error("expected parse error")
	}
}

func TestTopProducts(t *testing.T) {
	sales := []domain.Sale{
		{Date: day("2026-03-10 10:00"), Items: []domain.SaleItem{
			{ProductName: "A", Quantity: 1, TotalPrice: 5},
			{ProductName: "B", Quantity: 3, TotalPrice: 9},
		}},
		{Date: day("2026-03-10 11:00"), Items: []domain.SaleItem{
			{ProductName: "A", Quantity: 1, TotalPrice: 5},
			{ProductName: "C", Quantity: 2, TotalPrice: 4},
		}},
	}
	svc := setupReport(t, sales)

	rep, err := svc.Daily(context.Background(), "2026-03-10")
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if len(rep.TopProducts) != 3 {
		t.Fatalf("expected 3 ranked products, got %d", len(rep.TopProducts))
	}
	if rep.TopProducts[0].Name != "B" || rep.TopProducts[0].Quantity != 3 {
		t.Errorf("rank 1 = %+v", rep.TopProducts[0])
	}
	// A and C both aggregate across sales; A has quantity 2 and revenue 10.
	if rep.TopProducts[1].Name != "A" || rep.TopProducts[1].Revenue != 10 {
		t.Errorf("rank 2 = %+v", rep.TopProducts[1])
	}
}

func TestExportCSVLayout(t *testing.T) {
	svc := setupReport(t, sampleSales())

	out, err := svc.ExportCSV(context.Background(), "2026-03-10")
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	for _, want := range []string{
		"Reporte de Ventas Diarias\n",
		"Fecha,2026-03-10\n",
		"Total de Ventas,€56.00\n",
		"Número de Ventas,2\n",
		"Total de Productos,5\n",
		"Detalle de Ventas\n",
		"Timestamp,Total,Método de Pago,Productos\n",
		"Camiseta x2; Pegatina x2",
		"Resumen por Método de Pago\n",
		"Método,Cantidad,Total\n",
		"efectivo,1,€44.00\n",
		"tarjeta,1,€12.00\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %q\n---\n%s", want, out)
		}
	}
}

func TestExportCSVEmptyDayMethodCounts(t *testing.T) {
	svc := setupReport(t, nil)

	out, err := svc.ExportCSV(context.Background(), "2026-03-10")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "efectivo,0,€0.00") || !strings.Contains(out, "tarjeta,0,€0.00") {
		t.Errorf("empty-day summary wrong:\n%s", out)
	}
}
