package model

import (
	"time"
)

// OrderStatus is the lifecycle state of a placed order.
type OrderStatus string

const (
	OrderReceived OrderStatus = "received"
)

// Order is a finalized cart, persisted when the session checks out.
type Order struct {
	ID           string      `json:"id"`
	RestaurantID string      `json:"restaurant_id"`
	SessionID    string      `json:"session_id"`
	CustomerID   string      `json:"customer_id"`
	Lines        []CartLine  `json:"lines"`
	ItemCount    int         `json:"item_count"`
	Total        float64     `json:"total"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
}
