package models

// CartLine is a client-held snapshot of an item plus a quantity.
type CartLine struct {
	ItemID    string  `json:"_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Category  string  `json:"category,omitempty"`
	Quantity  int     `json:"quantity"`
	VariantID *int64  `json:"variant_id,omitempty"`
}

// LineFromItem snapshots the display fields of item.
func LineFromItem(item Item, quantity int) CartLine {
	return CartLine{
		ItemID:    item.ID,
		Name:      item.Name,
		Price:     item.Price,
		Image:     item.Image,
		Category:  item.Category,
		Quantity:  quantity,
		VariantID: item.VariantID,
	}
}
