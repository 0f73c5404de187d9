package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/talkincode/bocmarket/internal/domain"
)

// The export layout (section labels, column order, currency
// formatting) is consumed by existing spreadsheet users and must not
// change.

type saleRow struct {
	Timestamp string `csv:"Timestamp"`
	Total     string `csv:"Total"`
	Method    string `csv:"Método de Pago"`
	Products  string `csv:"Productos"`
}

type methodRow struct {
	Method string `csv:"Método"`
	Count  int    `csv:"Cantidad"`
	Total  string `csv:"Total"`
}

// ExportCSV renders the daily report as the labeled-section CSV text
// handed to the export/share collaborators.
func (s *Service) ExportCSV(ctx context.Context, date string) (string, error) {
	rep, err := s.Daily(ctx, date)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Reporte de Ventas Diarias\n")
	fmt.Fprintf(&b, "Fecha,%s\n", rep.Date)
	fmt.Fprintf(&b, "Total de Ventas,€%.2f\n", rep.TotalAmount)
	fmt.Fprintf(&b, "Número de Ventas,%d\n", rep.SalesCount)
	fmt.Fprintf(&b, "Total de Productos,%d\n\n", rep.TotalItems)

	b.WriteString("Detalle de Ventas\n")
	rows := make([]saleRow, 0, len(rep.Sales))
	for _, sale := range rep.Sales {
		parts := make([]string, 0, len(sale.Items))
		for _, item := range sale.Items {
			parts = append(parts, fmt.Sprintf("%s x%d", item.ProductName, item.Quantity))
		}
		method := sale.PaymentMethod
		if method == "" {
			method = "N/A"
		}
		rows = append(rows, saleRow{
			Timestamp: sale.Date.Format(time.RFC3339),
			Total:     fmt.Sprintf("€%.2f", sale.TotalAmount),
			Method:    method,
			Products:  strings.Join(parts, "; "),
		})
	}
	detail, err := gocsv.MarshalString(&rows)
	if err != nil {
		return "", err
	}
	b.WriteString(detail)

	b.WriteString("\nResumen por Método de Pago\n")
	summary := []methodRow{
		{Method: domain.PaymentMethodCash, Count: presenceCount(rep.PaymentMethods.Efectivo),
			Total: fmt.Sprintf("€%.2f", rep.PaymentMethods.Efectivo)},
		{Method: domain.PaymentMethodCard, Count: presenceCount(rep.PaymentMethods.Tarjeta),
			Total: fmt.Sprintf("€%.2f", rep.PaymentMethods.Tarjeta)},
	}
	methods, err := gocsv.MarshalString(&summary)
	if err != nil {
		return "", err
	}
	b.WriteString(methods)

	return b.String(), nil
}

// presenceCount preserves the historical summary column: 1 when the
// method saw revenue that day, 0 otherwise.
func presenceCount(amount float64) int {
	if amount > 0 {
		return 1
	}
	return 0
}
