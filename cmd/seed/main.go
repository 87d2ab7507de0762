// seed crea el esquema de la base y carga datos mínimos de arranque:
// el email del primer admin en la lista de acceso, un repartidor demo y
// un catálogo demo de ventiladores y aires acondicionados.
//
// Uso: go run ./cmd/seed [email-del-admin]
// Por defecto aprueba admin@coolbreeze.local. Es idempotente: correrlo
// dos veces no duplica filas.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/coolbreeze-api/internal/infrastructure/postgres"
	"github.com/jhoicas/coolbreeze-api/pkg/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id          UUID PRIMARY KEY,
	uid         TEXT NOT NULL UNIQUE,
	email       TEXT NOT NULL UNIQUE,
	display_name TEXT NOT NULL DEFAULT '',
	photo_url   TEXT,
	phone       TEXT,
	address     JSONB NOT NULL DEFAULT '{}',
	role        TEXT NOT NULL DEFAULT 'customer',
	is_active   BOOLEAN NOT NULL DEFAULT TRUE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS approved_emails (
	id         UUID PRIMARY KEY,
	email      TEXT NOT NULL UNIQUE,
	role       TEXT NOT NULL DEFAULT 'customer',
	is_active  BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS products (
	id              UUID PRIMARY KEY,
	name            TEXT NOT NULL,
	description     TEXT NOT NULL DEFAULT '',
	price           NUMERIC(12,2) NOT NULL,
	category        TEXT NOT NULL,
	image_urls      TEXT[] NOT NULL DEFAULT '{}',
	ratings_average NUMERIC(3,2) NOT NULL DEFAULT 0,
	ratings_count   INTEGER NOT NULL DEFAULT 0,
	features        TEXT[] NOT NULL DEFAULT '{}',
	specifications  JSONB NOT NULL DEFAULT '{}',
	in_stock        BOOLEAN NOT NULL DEFAULT TRUE,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS product_variants (
	id         UUID PRIMARY KEY,
	product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	size       TEXT NOT NULL,
	color      TEXT NOT NULL,
	stock      INTEGER NOT NULL DEFAULT 0,
	sku        TEXT,
	UNIQUE (product_id, size, color)
);

CREATE TABLE IF NOT EXISTS orders (
	id             UUID PRIMARY KEY,
	user_uid       TEXT NOT NULL,
	total_amount   NUMERIC(12,2) NOT NULL,
	shipping       JSONB NOT NULL DEFAULT '{}',
	payment_method TEXT NOT NULL DEFAULT '',
	payment_status TEXT NOT NULL DEFAULT 'Paid',
	order_status   TEXT NOT NULL DEFAULT 'Pending',
	assigned_rider TEXT,
	tracking       JSONB,
	delivery_notes TEXT,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_orders_user_uid ON orders (user_uid);
CREATE INDEX IF NOT EXISTS idx_orders_assigned_rider ON orders (assigned_rider);
CREATE INDEX IF NOT EXISTS idx_orders_order_status ON orders (order_status);

CREATE TABLE IF NOT EXISTS order_items (
	id           UUID PRIMARY KEY,
	order_id     UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	product_id   UUID NOT NULL,
	product_name TEXT NOT NULL,
	size         TEXT NOT NULL,
	color        TEXT NOT NULL,
	quantity     INTEGER NOT NULL,
	unit_price   NUMERIC(12,2) NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items (order_id);
`

func main() {
	adminEmail := "admin@coolbreeze.local"
	if len(os.Args) > 1 {
		adminEmail = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		fmt.Fprintf(os.Stderr, "Crear esquema: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Esquema creado")

	seeds := []struct {
		desc string
		sql  string
		args []any
	}{
		{
			desc: "admin aprobado " + adminEmail,
			sql: `INSERT INTO approved_emails (id, email, role)
				VALUES (gen_random_uuid(), $1, 'admin')
				ON CONFLICT (email) DO NOTHING`,
			args: []any{adminEmail},
		},
		{
			desc: "rider demo rider@coolbreeze.local",
			sql: `INSERT INTO approved_emails (id, email, role)
				VALUES (gen_random_uuid(), 'rider@coolbreeze.local', 'rider')
				ON CONFLICT (email) DO NOTHING`,
		},
		{
			desc: "producto demo: ventilador de pedestal",
			sql: `INSERT INTO products (id, name, description, price, category, features, specifications)
				VALUES ('c0a80001-0000-4000-8000-000000000001',
					'Ventilador de Pedestal TurboAir',
					'Ventilador de pedestal oscilante, 3 velocidades, motor silencioso.',
					129.99, 'fan',
					ARRAY['Oscilación 90°', 'Altura ajustable', 'Motor silencioso'],
					'{"power": "60W", "speeds": "3", "oscillation": "90"}')
				ON CONFLICT (id) DO NOTHING`,
		},
		{
			desc: "variantes ventilador",
			sql: `INSERT INTO product_variants (id, product_id, size, color, stock) VALUES
				(gen_random_uuid(), 'c0a80001-0000-4000-8000-000000000001', '16in', 'white', 25),
				(gen_random_uuid(), 'c0a80001-0000-4000-8000-000000000001', '16in', 'black', 18),
				(gen_random_uuid(), 'c0a80001-0000-4000-8000-000000000001', '20in', 'white', 10)
				ON CONFLICT (product_id, size, color) DO NOTHING`,
		},
		{
			desc: "producto demo: aire acondicionado split",
			sql: `INSERT INTO products (id, name, description, price, category, features, specifications)
				VALUES ('c0a80001-0000-4000-8000-000000000002',
					'Aire Acondicionado Split FrostLine 12000 BTU',
					'Split inverter 12000 BTU, refrigerante R32, control WiFi.',
					549.00, 'air_conditioner',
					ARRAY['Inverter', 'Control WiFi', 'Modo eco'],
					'{"btu": "12000", "type": "inverter", "refrigerant": "R32"}')
				ON CONFLICT (id) DO NOTHING`,
		},
		{
			desc: "variantes aire acondicionado",
			sql: `INSERT INTO product_variants (id, product_id, size, color, stock) VALUES
				(gen_random_uuid(), 'c0a80001-0000-4000-8000-000000000002', '12000BTU', 'white', 8),
				(gen_random_uuid(), 'c0a80001-0000-4000-8000-000000000002', '18000BTU', 'white', 4)
				ON CONFLICT (product_id, size, color) DO NOTHING`,
		},
	}

	for _, s := range seeds {
		if _, err := pool.Exec(ctx, s.sql, s.args...); err != nil {
			fmt.Fprintf(os.Stderr, "Seed %s: %v\n", s.desc, err)
			os.Exit(1)
		}
		fmt.Printf("Seed OK: %s\n", s.desc)
	}

	fmt.Println("Listo")
}
