// Package model defines data structures for the storefront platform.
package model

import (
	"time"
)

// ApprovalStatus is the review state of a self-registered restaurant.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Restaurant is a tenant storefront profile.
type Restaurant struct {
	ID             string          `json:"id"`
	OwnerID        string          `json:"owner_id,omitempty"`
	Name           string          `json:"name"`
	Slug           string          `json:"slug"`
	Description    string          `json:"description"`
	CuisineType    string          `json:"cuisine_type"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email,omitempty"`
	Address        string          `json:"address"`
	City           string          `json:"city"`
	State          string          `json:"state"`
	Zip            string          `json:"zip,omitempty"`
	Hours          Hours           `json:"hours"`
	IsActive       bool            `json:"is_active"`
	ApprovalStatus ApprovalStatus  `json:"approval_status"`
	AverageRating  *float64        `json:"average_rating,omitempty"`
	ReviewCount    *int            `json:"review_count,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// DayHours is one weekday's opening window.
type DayHours struct {
	Open     string `json:"open"`
	Close    string `json:"close"`
	IsClosed bool   `json:"is_closed"`
}

// Hours holds per-weekday opening windows.
type Hours struct {
	Monday    DayHours `json:"monday"`
	Tuesday   DayHours `json:"tuesday"`
	Wednesday DayHours `json:"wednesday"`
	Thursday  DayHours `json:"thursday"`
	Friday    DayHours `json:"friday"`
	Saturday  DayHours `json:"saturday"`
	Sunday    DayHours `json:"sunday"`
}

// Weekdays returns day names and hours in display order.
func (h Hours) Weekdays() []struct {
	Name  string
	Hours DayHours
} {
	return []struct {
		Name  string
		Hours DayHours
	}{
		{"Monday", h.Monday},
		{"Tuesday", h.Tuesday},
		{"Wednesday", h.Wednesday},
		{"Thursday", h.Thursday},
		{"Friday", h.Friday},
		{"Saturday", h.Saturday},
		{"Sunday", h.Sunday},
	}
}

// CreateRestaurantRequest is the owner self-registration payload.
type CreateRestaurantRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	CuisineType string `json:"cuisine_type"`
	Phone       string `json:"phone"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip,omitempty"`
	Hours       Hours  `json:"hours"`
}
