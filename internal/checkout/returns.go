package checkout

import (
	"context"
	"fmt"
	"time"

	evbus "github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	"github.com/talkincode/bocmarket/internal/catalog"
	"github.com/talkincode/bocmarket/internal/domain"
	"github.com/talkincode/bocmarket/internal/ledger"
)

// ReturnService processes post-sale returns: validate the requested
// lines against the original sale, restore catalog stock and append a
// return record. Restocking is best-effort for products deleted since
// the sale; the two commit writes are not atomic across keys (same
// accepted risk as the purchase engine).
type ReturnService struct {
	products catalog.Repository
	sales    ledger.SalesRepository
	returns  ledger.ReturnsRepository
	node     *snowflake.Node
	bus      evbus.Bus
}

func NewReturnService(products catalog.Repository, sales ledger.SalesRepository,
	returns ledger.ReturnsRepository, node *snowflake.Node, bus evbus.Bus) *ReturnService {
	return &ReturnService{
		products: products,
		sales:    sales,
		returns:  returns,
		node:     node,
		bus:      bus,
	}
}

// ProcessReturn validates and commits one return against a previously
// committed sale.
func (s *ReturnService) ProcessReturn(ctx context.Context, req domain.ReturnRequest) *domain.ReturnResult {
	if req.OriginalSaleID == "" || len(req.Items) == 0 || req.Reason == "" {
		return &domain.ReturnResult{Success: false, Message: "incomplete return request"}
	}

	sale, err := s.sales.GetByID(ctx, req.OriginalSaleID)
	if err != nil {
		zap.L().Error("failed to load sales for return", zap.Error(err))
		return &domain.ReturnResult{Success: false, Message: "could not load return data"}
	}
	if sale == nil {
		return &domain.ReturnResult{Success: false, Message: "original sale not found"}
	}

	// Every requested line must match a line of the original sale by
	// (product, variant), and must not exceed its quantity. Cumulative
	// quantities across multiple partial returns of the same sale are
	// not tracked.
	for _, item := range req.Items {
		original := findSaleItem(sale.Items, item.ProductID, item.Variant)
		if original == nil {
			return &domain.ReturnResult{
				Success: false,
				Message: fmt.Sprintf("product %s does not belong to this sale", item.ProductName),
			}
		}
		if item.Quantity > original.Quantity {
			return &domain.ReturnResult{
				Success: false,
				Message: fmt.Sprintf("return quantity exceeds the original sale quantity for %s", item.ProductName),
			}
		}
	}

	now := time.Now()
	ret := domain.Return{
		ID:             s.node.Generate().String(),
		Date:           now,
		Items:          req.Items,
		Reason:         req.Reason,
		OriginalSaleID: req.OriginalSaleID,
		Timestamp:      now.UnixMilli(),
	}
	for _, item := range req.Items {
		ret.TotalAmount += item.TotalPrice
	}

	products, err := s.products.Load(ctx)
	if err != nil {
		zap.L().Error("failed to load products for return", zap.Error(err))
		return &domain.ReturnResult{Success: false, Message: "could not load return data"}
	}

	// Restore inventory. A product deleted since the sale is skipped
	// with a warning; that alone does not abort the return.
	for _, item := range req.Items {
		var product *domain.Product
		for i := range products {
			if products[i].ID == item.ProductID {
				product = &products[i]
				break
			}
		}
		if product == nil {
			zap.L().Warn("returned product no longer in catalog",
				zap.String("product_id", item.ProductID))
			continue
		}
		if item.Variant != "" && product.HasVariants {
			if variant := product.Variant(item.Variant); variant != nil {
				variant.Quantity += item.Quantity
			}
			product.Quantity = product.VariantTotal()
		} else {
			product.Quantity += item.Quantity
		}
	}

	saveErr := s.products.SaveAll(ctx, products)
	if saveErr != nil {
		zap.L().Error("failed to save catalog on return", zap.Error(saveErr))
	}
	retErr := s.returns.Append(ctx, ret)
	if retErr != nil {
		zap.L().Error("failed to record return", zap.Error(retErr))
	}
	if saveErr != nil || retErr != nil {
		return &domain.ReturnResult{Success: false, Message: "could not save return data"}
	}

	if s.bus != nil {
		s.bus.Publish(domain.TopicReturnCommitted, &ret)
	}
	zap.L().Info("return committed",
		zap.String("return_id", ret.ID),
		zap.String("original_sale_id", ret.OriginalSaleID),
		zap.Float64("total", ret.TotalAmount),
	)

	return &domain.ReturnResult{Success: true, Message: "return processed", Return: &ret}
}

func findSaleItem(items []domain.SaleItem, productID, variant string) *domain.SaleItem {
	for i := range items {
		if items[i].ProductID == productID && items[i].Variant == variant {
			return &items[i]
		}
	}
	return nil
}
