// Package postgres implements the datastore behind the catalog and order
// collaborators. The chat pipeline never touches it directly; it reads a
// catalog snapshot taken at session open.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store bundles the repositories over one connection pool.
type Store struct {
	pool *pgxpool.Pool

	Restaurants *RestaurantRepository
	Menu        *MenuRepository
	Orders      *OrderRepository
}

// Connect opens the connection pool and wires the repositories.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{
		pool:        pool,
		Restaurants: &RestaurantRepository{pool: pool},
		Menu:        &MenuRepository{pool: pool},
		Orders:      &OrderRepository{pool: pool},
	}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
