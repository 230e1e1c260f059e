package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plateworks/storefront/internal/catalog"
	"github.com/plateworks/storefront/internal/model"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// RestaurantRepository reads and writes restaurant profiles.
type RestaurantRepository struct {
	pool *pgxpool.Pool
}

const restaurantColumns = `id, owner_id, name, slug, description, cuisine_type, phone, email,
	address, city, state, zip, hours, is_active, approval_status, created_at, updated_at`

func scanRestaurant(row pgx.Row) (*model.Restaurant, error) {
	var r model.Restaurant
	var hours []byte
	err := row.Scan(&r.ID, &r.OwnerID, &r.Name, &r.Slug, &r.Description, &r.CuisineType,
		&r.Phone, &r.Email, &r.Address, &r.City, &r.State, &r.Zip, &hours,
		&r.IsActive, &r.ApprovalStatus, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(hours, &r.Hours); err != nil {
		return nil, fmt.Errorf("failed to decode hours: %w", err)
	}
	return &r, nil
}

// Create inserts a self-registered restaurant in pending-approval state.
func (r *RestaurantRepository) Create(ctx context.Context, ownerID string, req *model.CreateRestaurantRequest) (*model.Restaurant, error) {
	now := time.Now()
	rest := &model.Restaurant{
		ID:             uuid.Must(uuid.NewV7()).String(),
		OwnerID:        ownerID,
		Name:           req.Name,
		Slug:           req.Slug,
		Description:    req.Description,
		CuisineType:    req.CuisineType,
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		Zip:            req.Zip,
		Hours:          req.Hours,
		IsActive:       true,
		ApprovalStatus: model.ApprovalPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	hours, err := json.Marshal(rest.Hours)
	if err != nil {
		return nil, fmt.Errorf("failed to encode hours: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO restaurants (
			id, owner_id, name, slug, description, cuisine_type, phone, email,
			address, city, state, zip, hours, is_active, approval_status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		rest.ID, rest.OwnerID, rest.Name, rest.Slug, rest.Description, rest.CuisineType,
		rest.Phone, rest.Email, rest.Address, rest.City, rest.State, rest.Zip,
		hours, rest.IsActive, rest.ApprovalStatus, rest.CreatedAt, rest.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert restaurant: %w", err)
	}
	return rest, nil
}

// SetApproval moves a restaurant through the review workflow.
func (r *RestaurantRepository) SetApproval(ctx context.Context, id string, status model.ApprovalStatus) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE restaurants SET approval_status = $2, updated_at = now() WHERE id = $1`,
		id, status)
	if err != nil {
		return fmt.Errorf("failed to update approval status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Get returns one restaurant by id.
func (r *RestaurantRepository) Get(ctx context.Context, id string) (*model.Restaurant, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id)
	return scanRestaurant(row)
}

// List returns active, approved restaurants for the browse page.
func (r *RestaurantRepository) List(ctx context.Context, limit, offset int) ([]model.Restaurant, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+restaurantColumns+`
		 FROM restaurants
		 WHERE is_active AND approval_status = 'approved'
		 ORDER BY name
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}
	defer rows.Close()

	var out []model.Restaurant
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rest)
	}
	return out, rows.Err()
}

// LoadSnapshot assembles the session catalog snapshot: the restaurant profile
// plus its categories and menu items in catalog order.
func (r *RestaurantRepository) LoadSnapshot(ctx context.Context, restaurantID string) (*catalog.Snapshot, error) {
	rest, err := r.Get(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	menu := &MenuRepository{pool: r.pool}
	categories, err := menu.Categories(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	items, err := menu.Items(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	return &catalog.Snapshot{
		Restaurant: *rest,
		Items:      items,
		Categories: categories,
	}, nil
}
