package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/talkincode/bocmarket/internal/domain"
)

// checkDefaultData seeds sample products the first time the store is
// opened, so a fresh install is immediately usable.
func (a *Application) checkDefaultData() {
	_, ok, err := a.kvstore.Get(domain.ProductsKey)
	if err != nil {
		zap.S().Errorf("default data check failed: %v", err)
		return
	}
	if !ok {
		a.InitializeDefaultData()
	}
}

// InitializeDefaultData writes the starter catalog.
func (a *Application) InitializeDefaultData() {
	now := time.Now()
	products := []domain.Product{
		{
			ID:          a.node.Generate().String(),
			Name:        "Camiseta del Grupo",
			Price:       15.99,
			Quantity:    25,
			HasVariants: true,
			Variants: []domain.Variant{
				{Name: "Talla S", Quantity: 8},
				{Name: "Talla M", Quantity: 10},
				{Name: "Talla L", Quantity: 7},
			},
			CreatedAt: now,
		},
		{
			ID:          a.node.Generate().String(),
			Name:        "CD Álbum Debut",
			Price:       12.50,
			Quantity:    50,
			HasVariants: false,
			Variants:    []domain.Variant{},
			CreatedAt:   now,
		},
		{
			ID:          a.node.Generate().String(),
			Name:        "Taza Promocional",
			Price:       8.99,
			Quantity:    15,
			HasVariants: true,
			Variants: []domain.Variant{
				{Name: "Blanca", Quantity: 8},
				{Name: "Negra", Quantity: 7},
			},
			CreatedAt: now,
		},
	}
	if err := a.kvstore.PutJSON(domain.ProductsKey, products); err != nil {
		zap.S().Errorf("default data seed failed: %v", err)
		return
	}
	zap.L().Info("default catalog initialized", zap.Int("products", len(products)))
}

// CreateDemoData replaces the catalog and sales history with
// demonstration data.
func (a *Application) CreateDemoData() error {
	now := time.Now()
	products := []domain.Product{
		{
			ID:          a.node.Generate().String(),
			Name:        "Camiseta Banda Demo",
			Price:       25.99,
			Quantity:    50,
			HasVariants: true,
			Variants: []domain.Variant{
				{Name: "S", Quantity: 10},
				{Name: "M", Quantity: 15},
				{Name: "L", Quantity: 15},
				{Name: "XL", Quantity: 10},
			},
			CreatedAt: now,
		},
		{
			ID:        a.node.Generate().String(),
			Name:      "CD Último Álbum",
			Price:     15.99,
			Quantity:  30,
			Variants:  []domain.Variant{},
			CreatedAt: now,
		},
		{
			ID:        a.node.Generate().String(),
			Name:      "Taza Logo Banda",
			Price:     8.50,
			Quantity:  25,
			Variants:  []domain.Variant{},
			CreatedAt: now,
		},
		{
			ID:        a.node.Generate().String(),
			Name:      "Poster Concierto",
			Price:     12.00,
			Quantity:  40,
			Variants:  []domain.Variant{},
			CreatedAt: now,
		},
	}

	sales := []domain.Sale{
		{
			ID:   a.node.Generate().String(),
			Date: now,
			Items: []domain.SaleItem{
				{
					ProductID:   products[0].ID,
					ProductName: products[0].Name,
					Quantity:    2,
					UnitPrice:   products[0].Price,
					TotalPrice:  products[0].Price * 2,
				},
			},
			TotalAmount:   products[0].Price * 2,
			PaymentMethod: domain.PaymentMethodCash,
			Timestamp:     now.UnixMilli(),
		},
		{
			ID:   a.node.Generate().String(),
			Date: now,
			Items: []domain.SaleItem{
				{
					ProductID:   products[1].ID,
					ProductName: products[1].Name,
					Quantity:    1,
					UnitPrice:   products[1].Price,
					TotalPrice:  products[1].Price,
				},
				{
					ProductID:   products[2].ID,
					ProductName: products[2].Name,
					Quantity:    1,
					UnitPrice:   products[2].Price,
					TotalPrice:  products[2].Price,
				},
			},
			TotalAmount:   products[1].Price + products[2].Price,
			PaymentMethod: domain.PaymentMethodCard,
			Timestamp:     now.UnixMilli(),
		},
	}

	if err := a.kvstore.PutJSON(domain.ProductsKey, products); err != nil {
		return err
	}
	if err := a.kvstore.PutJSON(domain.SalesKey, sales); err != nil {
		return err
	}

	err := a.settingsMgr.MergeAppState(context.Background(), map[string]interface{}{
		"hasProducts":    true,
		"productsCount":  len(products),
		"hasCartItems":   false,
		"cartItemsCount": 0,
	})
	if err != nil {
		return err
	}

	zap.L().Info("demo data created",
		zap.Int("products", len(products)), zap.Int("sales", len(sales)))
	return nil
}
