package model

// CartLine is one line of the session cart. At most one line exists per
// distinct (menu item id, customization set) pair; adding the same
// combination again increments Quantity instead of appending a line.
type CartLine struct {
	MenuItemID     string                  `json:"menu_item_id"`
	Name           string                  `json:"name"`
	Price          float64                 `json:"price"`
	Quantity       int                     `json:"quantity"`
	Customizations []SelectedCustomization `json:"customizations"`
	ImageURL       string                  `json:"image_url,omitempty"`
}

// LineTotal is the extended price of the line including customizations.
func (l CartLine) LineTotal() float64 {
	unit := l.Price
	for _, c := range l.Customizations {
		unit += c.PriceModifier
	}
	return unit * float64(l.Quantity)
}

// CartView is the cart snapshot returned over the API. Total and ItemCount
// are derived values, never stored.
type CartView struct {
	Lines     []CartLine `json:"lines"`
	ItemCount int        `json:"item_count"`
	Total     float64    `json:"total"`
}
