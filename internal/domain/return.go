package domain

import "time"

// ReturnItem is one line of a return request. Quantity must not
// exceed the quantity of the matching line in the original sale.
type ReturnItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Variant     string  `json:"variant,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
}

// Return is a committed post-sale return, linked to the original sale
// by id. Returns are append-only like sales.
type Return struct {
	ID             string       `json:"id"`
	Date           time.Time    `json:"date"`
	Items          []ReturnItem `json:"items"`
	TotalAmount    float64      `json:"totalAmount"`
	Reason         string       `json:"reason"`
	OriginalSaleID string       `json:"originalSaleId"`
	Timestamp      int64        `json:"timestamp"`
}

// ReturnRequest is the collaborator-facing input for ProcessReturn.
type ReturnRequest struct {
	OriginalSaleID string       `json:"originalSaleId"`
	Items          []ReturnItem `json:"items"`
	Reason         string       `json:"reason"`
}

// ReturnResult is the outcome of a return attempt.
type ReturnResult struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Return  *Return `json:"return,omitempty"`
}
