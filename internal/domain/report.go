package domain

// PaymentBreakdown is revenue per payment method for one day.
type PaymentBreakdown struct {
	Efectivo float64 `json:"efectivo"`
	Tarjeta  float64 `json:"tarjeta"`
}

// ProductRank is one row of the top-product ranking.
type ProductRank struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// DailyReport aggregates the sales of one calendar day.
// TotalSales duplicates SalesCount for compatibility with existing
// report consumers.
type DailyReport struct {
	Date           string           `json:"date"`
	TotalSales     int              `json:"totalSales"`
	TotalAmount    float64          `json:"totalAmount"`
	SalesCount     int              `json:"salesCount"`
	TotalItems     int              `json:"totalItems"`
	Sales          []Sale           `json:"sales"`
	PaymentMethods PaymentBreakdown `json:"paymentMethods"`
	TopProducts    []ProductRank    `json:"topProducts"`
}
