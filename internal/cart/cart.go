// Package cart implements the session-scoped cart store. A cart has a single
// writer (the owning session); callers serialize access through the session
// lock, so the store itself carries no locking.
package cart

import (
	"sort"
	"strconv"
	"strings"

	"github.com/plateworks/storefront/internal/model"
)

// Cart is an ordered collection of lines with quantities and per-line
// customizations.
type Cart struct {
	lines []model.CartLine
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// lineKey canonicalizes the (item id, customization set) identity that the
// merge invariant is keyed on. Customizations are order-insensitive.
func lineKey(itemID string, customizations []model.SelectedCustomization) string {
	parts := make([]string, len(customizations))
	for i, c := range customizations {
		parts[i] = c.Name + "=" + strconv.FormatFloat(c.PriceModifier, 'f', -1, 64)
	}
	sort.Strings(parts)
	return itemID + "|" + strings.Join(parts, ",")
}

// Add merges a line into the cart: an existing line with the same item id and
// customization set has its quantity incremented; otherwise the line is
// appended.
func (c *Cart) Add(line model.CartLine) {
	if line.Quantity <= 0 {
		return
	}
	key := lineKey(line.MenuItemID, line.Customizations)
	for i := range c.lines {
		if lineKey(c.lines[i].MenuItemID, c.lines[i].Customizations) == key {
			c.lines[i].Quantity += line.Quantity
			return
		}
	}
	c.lines = append(c.lines, line)
}

// SetQuantity sets the quantity for every line of the given item id.
// Quantities of zero or less remove the line.
func (c *Cart) SetQuantity(itemID string, quantity int) {
	if quantity <= 0 {
		c.Remove(itemID)
		return
	}
	for i := range c.lines {
		if c.lines[i].MenuItemID == itemID {
			c.lines[i].Quantity = quantity
		}
	}
}

// Remove drops all lines for the given item id.
func (c *Cart) Remove(itemID string) {
	kept := c.lines[:0]
	for _, line := range c.lines {
		if line.MenuItemID != itemID {
			kept = append(kept, line)
		}
	}
	c.lines = kept
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []model.CartLine {
	out := make([]model.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// ItemCount is the derived sum of line quantities.
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Total is the derived sum of (unit price + customization modifiers) x
// quantity over all lines.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, line := range c.lines {
		total += line.LineTotal()
	}
	return total
}

// Contains reports whether any line references the given item id.
func (c *Cart) Contains(itemID string) bool {
	for _, line := range c.lines {
		if line.MenuItemID == itemID {
			return true
		}
	}
	return false
}

// ItemIDs returns the set of item ids present in the cart.
func (c *Cart) ItemIDs() map[string]bool {
	ids := make(map[string]bool, len(c.lines))
	for _, line := range c.lines {
		ids[line.MenuItemID] = true
	}
	return ids
}

// View builds the API snapshot with derived totals.
func (c *Cart) View() model.CartView {
	return model.CartView{
		Lines:     c.Lines(),
		ItemCount: c.ItemCount(),
		Total:     c.Total(),
	}
}
