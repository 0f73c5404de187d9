package receipt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/talkincode/bocmarket/config"
	"github.com/talkincode/bocmarket/internal/domain"
	"github.com/talkincode/bocmarket/internal/settings"
)

// Sender delivers rendered receipts. gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Service renders receipt text and delivers it by email according to
// the stored email configuration. It also listens for committed sales
// to auto-send receipts when the flag is enabled.
type Service struct {
	settings *settings.Manager
	from     string
	sender   Sender
}

func NewService(mgr *settings.Manager, smtp config.SmtpConfig) *Service {
	s := &Service{settings: mgr, from: smtp.From}
	if smtp.Host != "" {
		s.sender = gomail.NewDialer(smtp.Host, smtp.Port, smtp.Username, smtp.Password)
	}
	return s
}

// WithSender overrides the delivery mechanism (used in tests).
func (s *Service) WithSender(from string, sender Sender) *Service {
	s.from = from
	s.sender = sender
	return s
}

// Render produces the receipt text for a committed sale. The layout
// is the one printed and shared since the first release.
func Render(sale *domain.Sale) string {
	var b strings.Builder
	b.WriteString("=== BOCMARKET - RECIBO ===\n\n")
	fmt.Fprintf(&b, "Fecha: %s\n", sale.Date.Format("02/01/2006 15:04:05"))
	fmt.Fprintf(&b, "ID Venta: %s\n", sale.ID)
	method := "Tarjeta"
	if sale.PaymentMethod == domain.PaymentMethodCash {
		method = "Efectivo"
	}
	fmt.Fprintf(&b, "Método de pago: %s\n\n", method)

	b.WriteString("PRODUCTOS:\n")
	b.WriteString("------------------------\n")
	for _, item := range sale.Items {
		fmt.Fprintf(&b, "%s\n", item.ProductName)
		fmt.Fprintf(&b, "  Cantidad: %d\n", item.Quantity)
		fmt.Fprintf(&b, "  Precio unitario: €%.2f\n", item.UnitPrice)
		fmt.Fprintf(&b, "  Subtotal: €%.2f\n\n", item.TotalPrice)
	}
	b.WriteString("------------------------\n")
	fmt.Fprintf(&b, "TOTAL: €%.2f\n", sale.TotalAmount)
	b.WriteString("========================\n")
	b.WriteString("\n¡Gracias por tu compra!")
	return b.String()
}

// SendReceipt emails the receipt for a sale to the configured
// address.
func (s *Service) SendReceipt(ctx context.Context, sale *domain.Sale) *domain.EmailResult {
	cfg := s.settings.EmailConfig(ctx)
	if !cfg.EnableEmailNotifications {
		return &domain.EmailResult{Success: false, Message: "email notifications are disabled"}
	}
	if cfg.DefaultEmail == "" {
		return &domain.EmailResult{Success: false, Message: "no email address configured"}
	}
	if s.sender == nil {
		return &domain.EmailResult{Success: false, Message: "smtp is not configured"}
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", cfg.DefaultEmail)
	m.SetHeader("Subject", fmt.Sprintf("Recibo de compra %s - %s",
		sale.ID, sale.Date.Format("2006-01-02")))
	m.SetBody("text/plain", Render(sale))

	if err := s.sender.DialAndSend(m); err != nil {
		zap.L().Error("failed to send receipt",
			zap.String("sale_id", sale.ID), zap.Error(err))
		return &domain.EmailResult{Success: false, Message: "could not send receipt"}
	}
	return &domain.EmailResult{
		Success: true,
		Message: fmt.Sprintf("receipt sent to %s", cfg.DefaultEmail),
	}
}

// HandleSaleCommitted is the event-bus subscriber for committed
// sales; it auto-sends the receipt when the flag is enabled.
func (s *Service) HandleSaleCommitted(sale *domain.Sale) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if !s.settings.EmailConfig(ctx).AutoSendReceipts {
		return
	}
	result := s.SendReceipt(ctx, sale)
	if !result.Success {
		zap.L().Warn("auto receipt not sent",
			zap.String("sale_id", sale.ID), zap.String("reason", result.Message))
	}
}
