package domain

// CartItem is one line of the remote cart. Quantity zero never survives: the
// backend deletes the row and so does every local copy.
type CartItem struct {
	ID       int64   `json:"id"`
	Quantity int     `json:"quantity"`
	Size     int     `json:"size,omitempty"`
	Sneaker  Sneaker `json:"sneaker"`
}

// LineTotal is unit price times quantity for a single cart line.
func (i CartItem) LineTotal() float64 {
	return i.Sneaker.Price * float64(i.Quantity)
}

// CartTotal sums line totals. It is recomputed on every call; the cart total
// is a derived value and is never cached anywhere in the storefront.
func CartTotal(items []CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}
