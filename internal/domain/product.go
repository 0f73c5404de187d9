package domain

import "time"

// Variant is a named sub-unit of a product carrying its own stock
// count (a size, a color). Names are unique within a product.
type Variant struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Product is a sellable catalog item. When HasVariants is set,
// Quantity must always equal the sum of the variant quantities; every
// mutator is responsible for re-deriving it after a stock change.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	HasVariants bool      `json:"hasVariants"`
	Variants    []Variant `json:"variants"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Variant returns the named variant, or nil when absent.
func (p *Product) Variant(name string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].Name == name {
			return &p.Variants[i]
		}
	}
	return nil
}

// VariantTotal sums the stock of all variants.
func (p *Product) VariantTotal() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Quantity
	}
	return total
}
