package assistant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plateworks/storefront/internal/model"
)

func TestBuildSystemPromptIncludesCatalog(t *testing.T) {
	snap := testSnapshot()
	snap.Restaurant.City = "Portland"
	snap.Restaurant.State = "OR"
	snap.Restaurant.Hours.Monday = model.DayHours{Open: "11:00", Close: "22:00"}
	snap.Restaurant.Hours.Sunday = model.DayHours{IsClosed: true}

	prompt := BuildSystemPrompt(snap)

	assert.Contains(t, prompt, "EXCLUSIVELY for Sakura Sushi House, located in Portland, OR")
	assert.Contains(t, prompt, "Monday: 11:00 - 22:00")
	assert.Contains(t, prompt, "Sunday: Closed")

	// Every item appears with price, category and availability marker.
	assert.Contains(t, prompt, "Veggie Roll - $8.50")
	assert.Contains(t, prompt, "Category: Sushi Rolls")
	assert.Contains(t, prompt, "Dietary Info: vegan, vegetarian")
	assert.Contains(t, prompt, "✓ Currently Available")
	assert.Contains(t, prompt, "✗ Not Available")
	assert.Contains(t, prompt, "⭐ CUSTOMER FAVORITE")

	// Featured items drive the popularity section.
	assert.Contains(t, prompt, "HIGHEST RATED / MOST POPULAR DISHES:\nGyoza, Spicy Tuna Roll, Salmon Nigiri, Mochi Ice Cream")

	// The display convention and safety protocol are always present.
	assert.Contains(t, prompt, `Then ONLY list items using "SHOW: [exact item name]" format`)
	assert.Contains(t, prompt, "⚠️ CRITICAL ALLERGEN SAFETY PROTOCOL")
	assert.Contains(t, prompt, "NEVER make up menu items")
}

func TestBuildSystemPromptEmptyCatalogDefaults(t *testing.T) {
	snap := testSnapshot()
	snap.Items = nil
	snap.Restaurant.Phone = ""
	snap.Restaurant.Address = ""

	prompt := BuildSystemPrompt(snap)
	assert.Contains(t, prompt, "Ask for recommendations")
	assert.Equal(t, 2, strings.Count(prompt, "Available upon request"))
}
