package assistant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateworks/storefront/internal/catalog"
	"github.com/plateworks/storefront/internal/model"
)

func TestDirectFilterVeganVegetarian(t *testing.T) {
	snap := testSnapshot()

	intro, items := DirectFilter(IntentVeganVegetarian, snap)
	assert.Equal(t, "Here are our vegan and vegetarian options:", intro)
	// Catalog order, unavailable items excluded.
	assert.Equal(t, []string{"Edamame", "Veggie Roll", "Mochi Ice Cream", "Green Tea", "Ramune Soda"}, itemNames(items))
}

func TestDirectFilterGlutenFree(t *testing.T) {
	snap := testSnapshot()

	intro, items := DirectFilter(IntentGlutenFree, snap)
	assert.Equal(t, "Here are our gluten-free options:", intro)
	assert.Equal(t, []string{"Edamame", "Salmon Nigiri", "Green Tea", "Ramune Soda"}, itemNames(items))
}

func TestDirectFilterFishMatchesNameAndDescription(t *testing.T) {
	snap := testSnapshot()

	intro, items := DirectFilter(IntentFish, snap)
	assert.Equal(t, "Here are our fish options:", intro)
	assert.Equal(t, []string{"Spicy Tuna Roll", "Salmon Nigiri"}, itemNames(items))

	intro, items = DirectFilter(IntentNoFish, snap)
	assert.Equal(t, "Here are our dishes without fish:", intro)
	for _, item := range items {
		assert.NotContains(t, strings.ToLower(item.Name+" "+item.Description), "salmon")
		assert.NotContains(t, strings.ToLower(item.Name+" "+item.Description), "tuna")
	}
	assert.Equal(t, []string{"Gyoza", "Edamame", "Veggie Roll", "Mochi Ice Cream", "Green Tea", "Ramune Soda"}, itemNames(items))
}

func TestDirectFilterPopularIsFeaturedAndAvailable(t *testing.T) {
	snap := testSnapshot()

	intro, items := DirectFilter(IntentPopular, snap)
	assert.Equal(t, "Here are our most popular dishes:", intro)
	assert.Equal(t, []string{"Gyoza", "Spicy Tuna Roll", "Salmon Nigiri", "Mochi Ice Cream"}, itemNames(items))
}

func TestDirectFilterDeterministic(t *testing.T) {
	snap := testSnapshot()

	_, first := DirectFilter(IntentVeganVegetarian, snap)
	for i := 0; i < 10; i++ {
		_, again := DirectFilter(IntentVeganVegetarian, snap)
		assert.Equal(t, itemNames(first), itemNames(again))
	}
}

func TestDirectFilterEmptyResultFallsThrough(t *testing.T) {
	snap := &catalog.Snapshot{
		Restaurant: model.Restaurant{ID: "rest-2", Name: "Steak Only"},
		Items: []model.MenuItem{
			{ID: "i1", Name: "Ribeye", Price: 32, IsAvailable: true},
		},
	}

	_, items := DirectFilter(IntentVeganVegetarian, snap)
	assert.Empty(t, items)
}

func TestDirectFilterTruncatesToTwelve(t *testing.T) {
	snap := &catalog.Snapshot{Restaurant: model.Restaurant{ID: "rest-3"}}
	for i := 0; i < 20; i++ {
		snap.Items = append(snap.Items, model.MenuItem{
			ID:          string(rune('a' + i)),
			Name:        "Dish",
			IsAvailable: true,
			DietaryTags: []string{"vegan"},
		})
	}

	_, items := DirectFilter(IntentVeganVegetarian, snap)
	assert.Len(t, items, 12)
}

func TestAllergyNotice(t *testing.T) {
	notice := AllergyNotice("(555) 010-2030")
	assert.Contains(t, notice, "⚠️ IMPORTANT ALLERGY NOTICE")
	assert.Contains(t, notice, "(555) 010-2030")
	assert.Contains(t, notice, "Cross-contamination risks")
	assert.Contains(t, notice, "**I cannot guarantee**")

	require.NotContains(t, AllergyNotice(""), "contact us directly at  ")
	assert.Contains(t, AllergyNotice(""), "contact us directly at the restaurant")
	assert.Contains(t, AllergyNotice("   "), "the restaurant")
}
