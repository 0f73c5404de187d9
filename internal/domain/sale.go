package domain

import "time"

// Payment methods are persisted with the original wire values; any
// stored sales history and the CSV export depend on them.
const (
	PaymentMethodCash = "efectivo"
	PaymentMethodCard = "tarjeta"
)

// SaleItem snapshots the product name and unit price at commit time;
// later catalog edits never alter historical sales.
type SaleItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Variant     string  `json:"variant,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
}

// Sale is an immutable committed purchase. Sales live in an
// append-only ledger and are never updated or deleted.
type Sale struct {
	ID            string     `json:"id"`
	Date          time.Time  `json:"date"`
	Items         []SaleItem `json:"items"`
	TotalAmount   float64    `json:"totalAmount"`
	PaymentMethod string     `json:"paymentMethod"`
	Timestamp     int64      `json:"timestamp"`
}

// PurchaseResult is the outcome of a checkout attempt. Validation and
// persistence failures set Success=false with a human-readable
// message; no partial checkout is ever reported as success.
type PurchaseResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Sale      *Sale  `json:"sale,omitempty"`
	EmptyCart bool   `json:"emptyCart,omitempty"`
}
