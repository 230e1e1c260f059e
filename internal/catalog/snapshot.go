// Package catalog provides the read-only menu snapshot a chat session
// operates against. A snapshot is taken when the session opens and stays
// fixed for the session's lifetime; catalog order is preserved everywhere.
package catalog

import (
	"strings"

	"github.com/plateworks/storefront/internal/model"
)

// Snapshot is a restaurant's menu frozen for one session.
type Snapshot struct {
	Restaurant model.Restaurant
	Items      []model.MenuItem
	Categories []model.MenuCategory
}

// ItemByID returns the item with the given id, or nil.
func (s *Snapshot) ItemByID(id string) *model.MenuItem {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return &s.Items[i]
		}
	}
	return nil
}

// ItemByName returns the item whose name matches exactly, case-insensitive.
func (s *Snapshot) ItemByName(name string) *model.MenuItem {
	for i := range s.Items {
		if strings.EqualFold(s.Items[i].Name, name) {
			return &s.Items[i]
		}
	}
	return nil
}

// CategoryByID returns the category with the given id, or nil.
func (s *Snapshot) CategoryByID(id string) *model.MenuCategory {
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			return &s.Categories[i]
		}
	}
	return nil
}

// CategoryByKeyword returns the first category whose name contains the
// keyword, case-insensitive. Heuristic coupling to category naming; see the
// upsell design notes.
func (s *Snapshot) CategoryByKeyword(keyword string) *model.MenuCategory {
	for i := range s.Categories {
		if strings.Contains(strings.ToLower(s.Categories[i].Name), keyword) {
			return &s.Categories[i]
		}
	}
	return nil
}

// CategoryName returns the category name for an item, or "General".
func (s *Snapshot) CategoryName(item model.MenuItem) string {
	if cat := s.CategoryByID(item.CategoryID); cat != nil {
		return cat.Name
	}
	return "General"
}

// Available returns items with IsAvailable set, preserving catalog order.
func (s *Snapshot) Available() []model.MenuItem {
	var out []model.MenuItem
	for _, item := range s.Items {
		if item.IsAvailable {
			out = append(out, item)
		}
	}
	return out
}

// Featured returns items with IsFeatured set, preserving catalog order.
func (s *Snapshot) Featured() []model.MenuItem {
	var out []model.MenuItem
	for _, item := range s.Items {
		if item.IsFeatured {
			out = append(out, item)
		}
	}
	return out
}

// InCategory returns items in the given category, preserving catalog order.
func (s *Snapshot) InCategory(categoryID string) []model.MenuItem {
	var out []model.MenuItem
	for _, item := range s.Items {
		if item.CategoryID == categoryID {
			out = append(out, item)
		}
	}
	return out
}

// Truncate bounds a result list to at most n items.
func Truncate(items []model.MenuItem, n int) []model.MenuItem {
	if len(items) > n {
		return items[:n]
	}
	return items
}
