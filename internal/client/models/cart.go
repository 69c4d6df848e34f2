package models

// LineItem is one cart entry. Qty is at least 1 for every stored line.
type LineItem struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	Price    Price  `json:"price"`
	ImageURL string `json:"image_url,omitempty"`
	Qty      int    `json:"qty"`
}

// Subtotal is price times quantity, with non-numeric prices counting as 0.
func (li LineItem) Subtotal() float64 {
	return li.Price.Float() * float64(li.Qty)
}
