package assistant

import (
	"github.com/plateworks/storefront/internal/catalog"
	"github.com/plateworks/storefront/internal/model"
)

// testSnapshot builds a small sushi catalog covering the filter and upsell
// scenarios: dietary tags, seafood mentions, featured flags, an unavailable
// item, and beverage/appetizer/dessert categories.
func testSnapshot() *catalog.Snapshot {
	return &catalog.Snapshot{
		Restaurant: model.Restaurant{
			ID:          "rest-1",
			Name:        "Sakura Sushi House",
			CuisineType: "Japanese",
			Phone:       "(555) 010-2030",
		},
		Categories: []model.MenuCategory{
			{ID: "cat-app", RestaurantID: "rest-1", Name: "Appetizers", SortOrder: 0, IsActive: true},
			{ID: "cat-roll", RestaurantID: "rest-1", Name: "Sushi Rolls", SortOrder: 1, IsActive: true},
			{ID: "cat-nig", RestaurantID: "rest-1", Name: "Nigiri & Sashimi", SortOrder: 2, IsActive: true},
			{ID: "cat-des", RestaurantID: "rest-1", Name: "Desserts", SortOrder: 3, IsActive: true},
			{ID: "cat-bev", RestaurantID: "rest-1", Name: "Beverages", SortOrder: 4, IsActive: true},
		},
		Items: []model.MenuItem{
			{
				ID: "item-gyoza", RestaurantID: "rest-1", CategoryID: "cat-app",
				Name: "Gyoza", Description: "Pan-fried pork dumplings",
				Price: 7.95, IsAvailable: true, IsFeatured: true,
				Allergens: []string{"wheat", "soy"},
			},
			{
				ID: "item-edamame", RestaurantID: "rest-1", CategoryID: "cat-app",
				Name: "Edamame", Description: "Steamed soybeans with sea salt",
				Price: 5.50, IsAvailable: true,
				DietaryTags: []string{"vegan", "vegetarian", "gluten-free"},
			},
			{
				ID: "item-veggie", RestaurantID: "rest-1", CategoryID: "cat-roll",
				Name: "Veggie Roll", Description: "Avocado, cucumber and pickled radish",
				Price: 8.50, IsAvailable: true,
				DietaryTags: []string{"vegan", "vegetarian"},
			},
			{
				ID: "item-tuna", RestaurantID: "rest-1", CategoryID: "cat-roll",
				Name: "Spicy Tuna Roll", Description: "Fresh tuna with spicy mayo",
				Price: 11.50, IsAvailable: true, IsFeatured: true,
				Allergens: []string{"fish"},
			},
			{
				ID: "item-salmon", RestaurantID: "rest-1", CategoryID: "cat-nig",
				Name: "Salmon Nigiri", Description: "Fresh Atlantic salmon over rice",
				Price: 6.95, IsAvailable: true, IsFeatured: true,
				DietaryTags: []string{"gluten-free"}, Allergens: []string{"fish"},
			},
			{
				ID: "item-mochi", RestaurantID: "rest-1", CategoryID: "cat-des",
				Name: "Mochi Ice Cream", Description: "Three pieces, rotating flavors",
				Price: 6.50, IsAvailable: true, IsFeatured: true,
				DietaryTags: []string{"vegetarian"},
			},
			{
				ID: "item-tea", RestaurantID: "rest-1", CategoryID: "cat-bev",
				Name: "Green Tea", Description: "Hot sencha",
				Price: 2.95, IsAvailable: true,
				DietaryTags: []string{"vegan", "vegetarian", "gluten-free"},
			},
			{
				ID: "item-ramune", RestaurantID: "rest-1", CategoryID: "cat-bev",
				Name: "Ramune Soda", Description: "Japanese marble soda",
				Price: 3.95, IsAvailable: true,
				DietaryTags: []string{"vegan", "vegetarian", "gluten-free"},
			},
			{
				ID: "item-secret", RestaurantID: "rest-1", CategoryID: "cat-roll",
				Name: "Chef's Secret Roll", Description: "Off-menu special",
				Price: 9.99, IsAvailable: false,
				DietaryTags: []string{"vegetarian"},
			},
		},
	}
}

func newTestSession(userID string) *Session {
	return NewSession(testSnapshot(), userID)
}

func itemNames(items []model.MenuItem) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return names
}
