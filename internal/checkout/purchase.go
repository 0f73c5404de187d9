package checkout

import (
	"context"
	"fmt"
	"time"

	evbus "github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	"github.com/talkincode/bocmarket/internal/cart"
	"github.com/talkincode/bocmarket/internal/catalog"
	"github.com/talkincode/bocmarket/internal/domain"
	"github.com/talkincode/bocmarket/internal/ledger"
)

// PurchaseService converts the pending cart into a committed sale:
// validate every line against current stock, snapshot names and
// prices into a sale record, decrement inventory and persist
// catalog, sale and cart in that order. The store offers no cross-key
// transaction, so a failure between those writes can leave a partial
// commit; the engine reports failure without rolling back.
type PurchaseService struct {
	products catalog.Repository
	cart     *cart.Service
	sales    ledger.SalesRepository
	node     *snowflake.Node
	bus      evbus.Bus
}

func NewPurchaseService(products catalog.Repository, cartSvc *cart.Service,
	sales ledger.SalesRepository, node *snowflake.Node, bus evbus.Bus) *PurchaseService {
	return &PurchaseService{
		products: products,
		cart:     cartSvc,
		sales:    sales,
		node:     node,
		bus:      bus,
	}
}

// ProcessPurchase checks out the whole cart with the given payment
// method. Any single failing line aborts the entire purchase; there
// is no partial checkout.
func (s *PurchaseService) ProcessPurchase(ctx context.Context, paymentMethod string) *domain.PurchaseResult {
	if paymentMethod == "" {
		paymentMethod = domain.PaymentMethodCash
	}

	items := s.cart.Get(ctx)
	if len(items) == 0 {
		return &domain.PurchaseResult{Success: false, Message: "cart is empty"}
	}

	products, err := s.products.Load(ctx)
	if err != nil {
		zap.L().Error("failed to load products for checkout", zap.Error(err))
		return &domain.PurchaseResult{Success: false, Message: "could not load purchase data"}
	}

	byID := make(map[string]*domain.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	// Validation pass: nothing is mutated until every line checks out.
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return &domain.PurchaseResult{
				Success: false,
				Message: fmt.Sprintf("product not found: %s", item.ProductID),
			}
		}
		if item.VariantName != "" {
			variant := product.Variant(item.VariantName)
			if variant == nil {
				return &domain.PurchaseResult{
					Success: false,
					Message: fmt.Sprintf("variant not found: %s - %s", product.Name, item.VariantName),
				}
			}
			if variant.Quantity < item.Quantity {
				return &domain.PurchaseResult{
					Success: false,
					Message: fmt.Sprintf("insufficient stock for %s - %s: available %d, requested %d",
						product.Name, item.VariantName, variant.Quantity, item.Quantity),
				}
			}
		} else if product.Quantity < item.Quantity {
			return &domain.PurchaseResult{
				Success: false,
				Message: fmt.Sprintf("insufficient stock for %s: available %d, requested %d",
					product.Name, product.Quantity, item.Quantity),
			}
		}
	}

	// Construction pass: snapshot names and prices.
	now := time.Now()
	sale := domain.Sale{
		ID:            s.node.Generate().String(),
		Date:          now,
		Items:         make([]domain.SaleItem, 0, len(items)),
		PaymentMethod: paymentMethod,
		Timestamp:     now.UnixMilli(),
	}
	for _, item := range items {
		product := byID[item.ProductID]
		lineTotal := product.Price * float64(item.Quantity)
		sale.Items = append(sale.Items, domain.SaleItem{
			ProductID:   item.ProductID,
			ProductName: product.Name,
			Variant:     item.VariantName,
			Quantity:    item.Quantity,
			UnitPrice:   product.Price,
			TotalPrice:  lineTotal,
		})
		sale.TotalAmount += lineTotal
	}

	// Inventory update pass. For variant products the total quantity
	// is re-derived from all variants, not just the touched ones.
	for i := range products {
		product := &products[i]
		lines := linesFor(items, product.ID)
		if len(lines) == 0 {
			continue
		}
		if product.HasVariants {
			for _, line := range lines {
				if variant := product.Variant(line.VariantName); variant != nil {
					variant.Quantity -= line.Quantity
				}
			}
			product.Quantity = product.VariantTotal()
		} else {
			for _, line := range lines {
				product.Quantity -= line.Quantity
			}
		}
	}

	// Commit pass: catalog, then sale record, then cart clear. Every
	// step is attempted; a late failure reports an error even though
	// earlier writes may have landed.
	saveErr := s.products.SaveAll(ctx, products)
	if saveErr != nil {
		zap.L().Error("failed to save catalog on checkout", zap.Error(saveErr))
	}
	saleErr := s.sales.Append(ctx, sale)
	if saleErr != nil {
		zap.L().Error("failed to record sale", zap.Error(saleErr))
	}
	emptyCart := s.cart.Clear(ctx)

	if saveErr != nil || saleErr != nil {
		return &domain.PurchaseResult{Success: false, Message: "could not save purchase data"}
	}

	if s.bus != nil {
		s.bus.Publish(domain.TopicSaleCommitted, &sale)
	}
	zap.L().Info("purchase committed",
		zap.String("sale_id", sale.ID),
		zap.String("payment_method", sale.PaymentMethod),
		zap.Float64("total", sale.TotalAmount),
		zap.Int("lines", len(sale.Items)),
	)

	return &domain.PurchaseResult{
		Success:   true,
		Message:   "purchase completed",
		Sale:      &sale,
		EmptyCart: len(emptyCart) == 0,
	}
}

func linesFor(items []domain.CartItem, productID string) []domain.CartItem {
	var lines []domain.CartItem
	for _, item := range items {
		if item.ProductID == productID {
			lines = append(lines, item)
		}
	}
	return lines
}
