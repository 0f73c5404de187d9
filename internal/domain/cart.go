package domain

// CartItem is one pending line awaiting checkout. CartItemKey is the
// natural key used for merge-on-add and removal: the product id alone,
// or productId + "_" + variantName when a variant is selected.
type CartItem struct {
	CartItemKey string `json:"cartItemKey"`
	ProductID   string `json:"productId"`
	Quantity    int    `json:"quantity"`
	VariantName string `json:"variantName,omitempty"`
}

// CartKey builds the composite cart line key.
func CartKey(productID, variantName string) string {
	if variantName == "" {
		return productID
	}
	return productID + "_" + variantName
}
