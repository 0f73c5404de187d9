package report

import (
	"context"
	"sort"

	"github.com/araddon/dateparse"
	"github.com/montanaflynn/stats"
	"go.uber.org/zap"

	"github.com/talkincode/bocmarket/internal/domain"
	"github.com/talkincode/bocmarket/internal/ledger"
)

// Service aggregates the sales ledger into daily reports and the
// fixed-layout export consumed by the share/email collaborators.
type Service struct {
	sales ledger.SalesRepository
}

func NewService(sales ledger.SalesRepository) *Service {
	return &Service{sales: sales}
}

// Daily builds the report for one calendar day. The date argument
// accepts any common format (ISO timestamp, plain date); only the
// date part is used for filtering. An unreadable ledger degrades to
// an empty report.
func (s *Service) Daily(ctx context.Context, date string) (*domain.DailyReport, error) {
	day, err := dateparse.ParseAny(date)
	if err != nil {
		return nil, err
	}
	dateStr := day.Format("2006-01-02")

	sales, err := s.sales.List(ctx)
	if err != nil {
		zap.L().Error("failed to load sales for report", zap.Error(err))
		sales = []domain.Sale{}
	}

	daily := make([]domain.Sale, 0)
	for _, sale := range sales {
		if sale.Date.Format("2006-01-02") == dateStr {
			daily = append(daily, sale)
		}
	}

	rep := &domain.DailyReport{
		Date:        dateStr,
		TotalSales:  len(daily),
		SalesCount:  len(daily),
		Sales:       daily,
		TopProducts: []domain.ProductRank{},
	}

	amounts := make([]float64, 0, len(daily))
	for _, sale := range daily {
		amounts = append(amounts, sale.TotalAmount)
		for _, item := range sale.Items {
			rep.TotalItems += item.Quantity
		}
		switch sale.PaymentMethod {
		case domain.PaymentMethodCash:
			rep.PaymentMethods.Efectivo += sale.TotalAmount
		case domain.PaymentMethodCard:
			rep.PaymentMethods.Tarjeta += sale.TotalAmount
		}
	}
	if len(amounts) > 0 {
		if total, err := stats.Sum(amounts); err == nil {
			rep.TotalAmount = total
		}
	}

	rep.TopProducts = topProducts(daily, 5)
	return rep, nil
}

// topProducts ranks products by quantity sold. Ties keep the order in
// which products first appear in the day's sales.
func topProducts(sales []domain.Sale, limit int) []domain.ProductRank {
	index := make(map[string]int)
	ranks := make([]domain.ProductRank, 0)
	for _, sale := range sales {
		for _, item := range sale.Items {
			i, ok := index[item.ProductName]
			if !ok {
				i = len(ranks)
				index[item.ProductName] = i
				ranks = append(ranks, domain.ProductRank{Name: item.ProductName})
			}
			ranks[i].Quantity += item.Quantity
			ranks[i].Revenue += item.TotalPrice
		}
	}
	sort.SliceStable(ranks, func(a, b int) bool {
		return ranks[a].Quantity > ranks[b].Quantity
	})
	if len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks
}
