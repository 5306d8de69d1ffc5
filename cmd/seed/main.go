// Seed: crea el esquema (idempotente) y la cuenta admin inicial.
// Uso: SEED_ADMIN_PASSWORD=... go run ./cmd/seed
package main

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"

	"github.com/tu-usuario/office-orders/internal/infrastructure/postgres"
	"github.com/tu-usuario/office-orders/pkg/config"
	"github.com/tu-usuario/office-orders/pkg/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            uuid PRIMARY KEY,
	name          text NOT NULL,
	email         text NOT NULL UNIQUE,
	password_hash text NOT NULL,
	role          text NOT NULL CHECK (role IN ('employee', 'dispatcher', 'admin')),
	department    text NOT NULL DEFAULT '',
	created_at    timestamptz NOT NULL DEFAULT now(),
	created_by    uuid
);

CREATE TABLE IF NOT EXISTS items (
	id         uuid PRIMARY KEY,
	name       text NOT NULL UNIQUE,
	price      numeric,
	available  boolean NOT NULL DEFAULT true,
	category   text NOT NULL DEFAULT '',
	created_at timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS orders (
	id            uuid PRIMARY KEY,
	employee_id   uuid NOT NULL,
	employee_name text NOT NULL,
	department    text NOT NULL DEFAULT '',
	items         jsonb NOT NULL,
	status        text NOT NULL CHECK (status IN ('pending', 'accepted', 'in-progress', 'delivered', 'cancelled')),
	note          text NOT NULL DEFAULT '',
	ordered_at    timestamptz NOT NULL DEFAULT now(),
	delivered_at  timestamptz
);

CREATE INDEX IF NOT EXISTS idx_orders_employee ON orders (employee_id, ordered_at DESC);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status, ordered_at DESC);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	if cfg.Seed.AdminPassword == "" {
		log.Fatal().Msg("SEED_ADMIN_PASSWORD es requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}
	log.Info().Msg("esquema verificado")

	// Si el admin ya existe, no se toca
	var exists bool
	if err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, cfg.Seed.AdminEmail).Scan(&exists); err != nil {
		log.Fatal().Err(err).Msg("verificar admin existente")
	}
	if exists {
		log.Info().Str("email", cfg.Seed.AdminEmail).Msg("la cuenta admin ya existe, no se hace nada")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hashear password")
	}

	id := uuid.New().String()
	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, department)
		VALUES ($1, $2, $3, $4, 'admin', '')`,
		id, cfg.Seed.AdminName, cfg.Seed.AdminEmail, string(hash),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("insertar admin")
	}

	log.Info().
		Str("id", id).
		Str("email", cfg.Seed.AdminEmail).
		Msg("cuenta admin creada; cambia el password después del primer login")
}
