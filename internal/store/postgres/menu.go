package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plateworks/storefront/internal/model"
)

// MenuRepository reads and writes menu categories and items.
type MenuRepository struct {
	pool *pgxpool.Pool
}

// Categories returns a restaurant's active categories in display order.
func (m *MenuRepository) Categories(ctx context.Context, restaurantID string) ([]model.MenuCategory, error) {
	rows, err := m.pool.Query(ctx, `
		SELECT id, restaurant_id, name, description, sort_order, is_active, created_at
		FROM menu_categories
		WHERE restaurant_id = $1 AND is_active
		ORDER BY sort_order, name`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var out []model.MenuCategory
	for rows.Next() {
		var c model.MenuCategory
		if err := rows.Scan(&c.ID, &c.RestaurantID, &c.Name, &c.Description,
			&c.SortOrder, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Items returns a restaurant's menu items in catalog order.
func (m *MenuRepository) Items(ctx context.Context, restaurantID string) ([]model.MenuItem, error) {
	rows, err := m.pool.Query(ctx, `
		SELECT id, restaurant_id, category_id, name, description, price, image_url,
		       is_available, is_featured, dietary_tags, allergens, preparation_time,
		       calories, average_rating, review_count, sort_order, created_at, updated_at
		FROM menu_items
		WHERE restaurant_id = $1
		ORDER BY sort_order, name`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var out []model.MenuItem
	for rows.Next() {
		var i model.MenuItem
		if err := rows.Scan(&i.ID, &i.RestaurantID, &i.CategoryID, &i.Name, &i.Description,
			&i.Price, &i.ImageURL, &i.IsAvailable, &i.IsFeatured, &i.DietaryTags,
			&i.Allergens, &i.PrepTime, &i.Calories, &i.AverageRating, &i.ReviewCount,
			&i.SortOrder, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

// CreateCategory inserts a menu category.
func (m *MenuRepository) CreateCategory(ctx context.Context, c *model.MenuCategory) error {
	_, err := m.pool.Exec(ctx, `
		INSERT INTO menu_categories (id, restaurant_id, name, description, sort_order, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.RestaurantID, c.Name, c.Description, c.SortOrder, c.IsActive, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

// BulkCreateItems inserts menu items with COPY.
func (m *MenuRepository) BulkCreateItems(ctx context.Context, items []*model.MenuItem) error {
	_, err := m.pool.CopyFrom(
		ctx,
		pgx.Identifier{"menu_items"},
		[]string{
			"id", "restaurant_id", "category_id", "name", "description", "price",
			"image_url", "is_available", "is_featured", "dietary_tags", "allergens",
			"preparation_time", "calories", "average_rating", "review_count",
			"sort_order", "created_at", "updated_at",
		},
		pgx.CopyFromSlice(len(items), func(i int) ([]interface{}, error) {
			return []interface{}{
				items[i].ID,
				items[i].RestaurantID,
				items[i].CategoryID,
				items[i].Name,
				items[i].Description,
				items[i].Price,
				items[i].ImageURL,
				items[i].IsAvailable,
				items[i].IsFeatured,
				items[i].DietaryTags,
				items[i].Allergens,
				items[i].PrepTime,
				items[i].Calories,
				items[i].AverageRating,
				items[i].ReviewCount,
				items[i].SortOrder,
				items[i].CreatedAt,
				items[i].UpdatedAt,
			}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to bulk insert menu items: %w", err)
	}
	return nil
}
