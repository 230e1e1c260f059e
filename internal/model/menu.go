package model

import (
	"time"
)

// MenuItem is a single orderable dish. Immutable for the duration of a chat
// session; the catalog layer mutates it only between sessions.
type MenuItem struct {
	ID           string   `json:"id"`
	RestaurantID string   `json:"restaurant_id"`
	CategoryID   string   `json:"category_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	ImageURL     string   `json:"image_url,omitempty"`
	IsAvailable  bool     `json:"is_available"`
	IsFeatured   bool     `json:"is_featured"`
	DietaryTags  []string `json:"dietary_tags"`
	Allergens    []string `json:"allergens"`
	PrepTime     int      `json:"preparation_time"`
	Calories     *int     `json:"calories,omitempty"`

	AverageRating *float64 `json:"average_rating,omitempty"`
	ReviewCount   *int     `json:"review_count,omitempty"`

	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MenuCategory groups menu items. Category roles (beverages, appetizers,
// desserts) are detected by case-insensitive substring match on the name.
type MenuCategory struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	SortOrder    int       `json:"sort_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// SelectedCustomization is one chosen customization option on a cart line.
type SelectedCustomization struct {
	Name          string  `json:"name"`
	PriceModifier float64 `json:"price_modifier"`
}
