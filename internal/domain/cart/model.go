package cart

// Item is one shop product variant in the cart. VariantID is the uniqueness
// key; adding the same variant again merges quantities.
type Item struct {
	ID        string  `json:"id"`
	VariantID string  `json:"variant_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Cart is the whole cart document. It is persisted as one JSON blob and
// rewritten in full on every mutation.
type Cart struct {
	Items []Item `json:"items"`
}

// Find returns the index of the item with the given variant, or -1.
func (c *Cart) Find(variantID string) int {
	for i := range c.Items {
		if c.Items[i].VariantID == variantID {
			return i
		}
	}
	return -1
}

// Totals summarizes the cart for display.
type Totals struct {
	Count    int     `json:"count"`
	Subtotal float64 `json:"subtotal"`
}

// Totals sums item quantities and prices.
func (c *Cart) Totals() Totals {
	var t Totals
	for _, item := range c.Items {
		t.Count += item.Quantity
		t.Subtotal += item.Price * float64(item.Quantity)
	}
	return t
}
