package postgres

import (
	"context"
	"fmt"
)

// schema is the full DDL, idempotent so the seed tool can run repeatedly.
const schema = `
CREATE TABLE IF NOT EXISTS restaurants (
	id              UUID PRIMARY KEY,
	owner_id        TEXT NOT NULL DEFAULT '',
	name            TEXT NOT NULL,
	slug            TEXT NOT NULL UNIQUE,
	description     TEXT NOT NULL DEFAULT '',
	cuisine_type    TEXT NOT NULL DEFAULT '',
	phone           TEXT NOT NULL DEFAULT '',
	email           TEXT NOT NULL DEFAULT '',
	address         TEXT NOT NULL DEFAULT '',
	city            TEXT NOT NULL DEFAULT '',
	state           TEXT NOT NULL DEFAULT '',
	zip             TEXT NOT NULL DEFAULT '',
	hours           JSONB NOT NULL DEFAULT '{}',
	is_active       BOOLEAN NOT NULL DEFAULT TRUE,
	approval_status TEXT NOT NULL DEFAULT 'pending',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS menu_categories (
	id            UUID PRIMARY KEY,
	restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
	name          TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	sort_order    INT NOT NULL DEFAULT 0,
	is_active     BOOLEAN NOT NULL DEFAULT TRUE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS menu_items (
	id               UUID PRIMARY KEY,
	restaurant_id    UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
	category_id      UUID NOT NULL REFERENCES menu_categories(id) ON DELETE CASCADE,
	name             TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	price            DOUBLE PRECISION NOT NULL,
	image_url        TEXT NOT NULL DEFAULT '',
	is_available     BOOLEAN NOT NULL DEFAULT TRUE,
	is_featured      BOOLEAN NOT NULL DEFAULT FALSE,
	dietary_tags     TEXT[] NOT NULL DEFAULT '{}',
	allergens        TEXT[] NOT NULL DEFAULT '{}',
	preparation_time INT NOT NULL DEFAULT 0,
	calories         INT,
	average_rating   DOUBLE PRECISION,
	review_count     INT,
	sort_order       INT NOT NULL DEFAULT 0,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_menu_items_restaurant ON menu_items (restaurant_id, sort_order);
CREATE INDEX IF NOT EXISTS idx_menu_categories_restaurant ON menu_categories (restaurant_id, sort_order);

CREATE TABLE IF NOT EXISTS orders (
	id            UUID PRIMARY KEY,
	restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
	session_id    UUID NOT NULL,
	customer_id   TEXT NOT NULL DEFAULT '',
	lines         JSONB NOT NULL,
	item_count    INT NOT NULL,
	total         DOUBLE PRECISION NOT NULL,
	status        TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_orders_restaurant ON orders (restaurant_id, created_at);
`

// EnsureSchema creates all tables and indexes if missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
