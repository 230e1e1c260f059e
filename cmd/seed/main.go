// Command seed provisions the database schema and loads a demo storefront
// with a curated menu, for local development and the hosted demo.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/google/uuid"
	"github.com/jaswdr/faker"
	"go.uber.org/zap"

	"github.com/plateworks/storefront/internal/config"
	"github.com/plateworks/storefront/internal/model"
	"github.com/plateworks/storefront/internal/store/postgres"
	"github.com/plateworks/storefront/pkg/logger"
)

type seedItem struct {
	category    string
	name        string
	description string
	price       float64
	featured    bool
	available   bool
	tags        []string
	allergens   []string
}

var demoMenu = []seedItem{
	{"Appetizers", "Edamame", "Steamed soybeans with sea salt", 5.50, false, true, []string{"vegan", "vegetarian", "gluten-free"}, []string{"soy"}},
	{"Appetizers", "Gyoza", "Pan-fried pork dumplings with ponzu dipping sauce", 7.95, true, true, nil, []string{"wheat", "soy"}},
	{"Appetizers", "Miso Soup", "Traditional soup with tofu, wakame and scallion", 3.95, false, true, []string{"vegetarian"}, []string{"soy"}},
	{"Appetizers", "Seaweed Salad", "Marinated wakame with sesame dressing", 6.50, false, true, []string{"vegan", "vegetarian"}, []string{"sesame", "soy"}},

	{"Sushi Rolls", "Veggie Roll", "Avocado, cucumber and pickled radish", 8.50, false, true, []string{"vegan", "vegetarian"}, []string{"soy"}},
	{"Sushi Rolls", "California Roll", "Crab, avocado and cucumber with tobiko", 9.95, true, true, nil, []string{"shellfish", "egg"}},
	{"Sushi Rolls", "Spicy Tuna Roll", "Fresh tuna with spicy mayo and scallion", 11.50, true, true, nil, []string{"fish", "egg", "soy"}},
	{"Sushi Rolls", "Dragon Roll", "Eel and cucumber topped with avocado", 14.95, true, true, nil, []string{"fish", "soy"}},
	{"Sushi Rolls", "Tempura Shrimp Roll", "Crispy shrimp tempura with unagi sauce", 12.95, false, true, nil, []string{"shellfish", "wheat"}},

	{"Nigiri & Sashimi", "Salmon Nigiri", "Two pieces of fresh Atlantic salmon over rice", 6.95, true, true, []string{"gluten-free"}, []string{"fish"}},
	{"Nigiri & Sashimi", "Tuna Sashimi", "Five slices of premium bluefin tuna", 13.95, false, true, []string{"gluten-free"}, []string{"fish"}},
	{"Nigiri & Sashimi", "Unagi Nigiri", "Grilled freshwater eel with sweet glaze", 7.95, false, true, nil, []string{"fish", "soy", "wheat"}},

	{"Desserts", "Mochi Ice Cream", "Three pieces, rotating daily flavors", 6.50, true, true, []string{"vegetarian"}, []string{"dairy"}},
	{"Desserts", "Matcha Cheesecake", "Green tea cheesecake with black sesame crust", 7.95, false, true, []string{"vegetarian"}, []string{"dairy", "egg", "wheat", "sesame"}},

	{"Beverages", "Green Tea", "Hot sencha, bottomless", 2.95, false, true, []string{"vegan", "vegetarian", "gluten-free"}, nil},
	{"Beverages", "Ramune Soda", "Japanese marble soda, original flavor", 3.95, false, true, []string{"vegan", "vegetarian", "gluten-free"}, nil},
	{"Beverages", "Yuzu Lemonade", "Sparkling lemonade with yuzu citrus", 4.50, false, true, []string{"vegan", "vegetarian", "gluten-free"}, nil},
}

func main() {
	schemaOnly := flag.Bool("schema-only", false, "apply schema without demo data")
	flag.Parse()

	log := logger.Global()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	store, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal("failed to apply schema", zap.Error(err))
	}
	log.Info("schema applied")

	if *schemaOnly {
		return
	}

	f := faker.New()

	allDay := model.DayHours{Open: "11:00", Close: "22:00"}
	rest, err := store.Restaurants.Create(ctx, "demo-owner", &model.CreateRestaurantRequest{
		Name:        "Sakura Sushi House",
		Slug:        "sakura-sushi-house",
		Description: "Fresh, traditional sushi and Japanese comfort food in the heart of downtown.",
		CuisineType: "Japanese",
		Phone:       f.Phone().Number(),
		Email:       "hello@sakurasushi.example",
		Address:     f.Address().StreetAddress(),
		City:        f.Address().City(),
		State:       f.Address().StateAbbr(),
		Zip:         f.Address().PostCode(),
		Hours: model.Hours{
			Monday:    allDay,
			Tuesday:   allDay,
			Wednesday: allDay,
			Thursday:  allDay,
			Friday:    model.DayHours{Open: "11:00", Close: "23:00"},
			Saturday:  model.DayHours{Open: "12:00", Close: "23:00"},
			Sunday:    model.DayHours{IsClosed: true},
		},
	})
	if err != nil {
		log.Fatal("failed to create demo restaurant", zap.Error(err))
	}

	// The demo storefront skips the review queue.
	if err := store.Restaurants.SetApproval(ctx, rest.ID, model.ApprovalApproved); err != nil {
		log.Fatal("failed to approve demo restaurant", zap.Error(err))
	}

	categoryIDs := make(map[string]string)
	order := 0
	for _, it := range demoMenu {
		if _, ok := categoryIDs[it.category]; ok {
			continue
		}
		cat := &model.MenuCategory{
			ID:           uuid.Must(uuid.NewV7()).String(),
			RestaurantID: rest.ID,
			Name:         it.category,
			SortOrder:    order,
			IsActive:     true,
			CreatedAt:    time.Now(),
		}
		if err := store.Menu.CreateCategory(ctx, cat); err != nil {
			log.Fatal("failed to create category", zap.String("name", it.category), zap.Error(err))
		}
		categoryIDs[it.category] = cat.ID
		order++
	}

	now := time.Now()
	items := make([]*model.MenuItem, 0, len(demoMenu))
	for i, it := range demoMenu {
		calories := f.IntBetween(80, 900)
		rating := float64(f.IntBetween(38, 50)) / 10.0
		reviews := f.IntBetween(12, 420)

		tags := it.tags
		if tags == nil {
			tags = []string{}
		}
		allergens := it.allergens
		if allergens == nil {
			allergens = []string{}
		}

		items = append(items, &model.MenuItem{
			ID:            uuid.Must(uuid.NewV7()).String(),
			RestaurantID:  rest.ID,
			CategoryID:    categoryIDs[it.category],
			Name:          it.name,
			Description:   it.description,
			Price:         it.price,
			IsAvailable:   it.available,
			IsFeatured:    it.featured,
			DietaryTags:   tags,
			Allergens:     allergens,
			PrepTime:      f.IntBetween(5, 25),
			Calories:      &calories,
			AverageRating: &rating,
			ReviewCount:   &reviews,
			SortOrder:     i,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	if err := store.Menu.BulkCreateItems(ctx, items); err != nil {
		log.Fatal("failed to insert menu items", zap.Error(err))
	}

	log.Info("demo storefront seeded",
		zap.String("restaurant_id", rest.ID),
		zap.Int("categories", len(categoryIDs)),
		zap.Int("items", len(items)),
	)
}
