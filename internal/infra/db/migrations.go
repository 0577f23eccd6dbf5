package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS services (
	id UUID PRIMARY KEY,
	provider_id UUID NOT NULL,
	name TEXT NOT NULL,
	price_cents BIGINT NOT NULL CHECK (price_cents >= 0),
	currency TEXT NOT NULL DEFAULT 'usd',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS slots (
	id UUID PRIMARY KEY,
	provider_id UUID NOT NULL,
	service_id UUID NOT NULL REFERENCES services(id),
	start_time TIMESTAMPTZ NOT NULL,
	end_time TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL DEFAULT 'AVAILABLE'
		CHECK (status IN ('AVAILABLE', 'HOLD', 'BOOKED')),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CHECK (end_time > start_time)
);

CREATE TABLE IF NOT EXISTS reservations (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL,
	slot_id UUID NOT NULL REFERENCES slots(id),
	status TEXT NOT NULL DEFAULT 'HOLD'
		CHECK (status IN ('HOLD', 'CONFIRMED', 'EXPIRED', 'CANCELLED')),
	hold_expires_at TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

-- At most one live hold per slot, enforced alongside the conditional
-- status flip on slots.
CREATE UNIQUE INDEX IF NOT EXISTS idx_reservations_active_hold
	ON reservations(slot_id) WHERE status = 'HOLD';

CREATE TABLE IF NOT EXISTS payments (
	processor_payment_id TEXT PRIMARY KEY,
	user_id UUID NOT NULL,
	reservation_id UUID NOT NULL REFERENCES reservations(id),
	amount_cents BIGINT NOT NULL,
	currency TEXT NOT NULL,
	status TEXT NOT NULL
		CHECK (status IN ('PROCESSING', 'REQUIRES_ACTION', 'SUCCEEDED', 'FAILED', 'CANCELED')),
	raw_payload JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS bookings (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL,
	service_id UUID NOT NULL,
	provider_id UUID NOT NULL,
	slot_id UUID NOT NULL REFERENCES slots(id),
	processor_payment_id TEXT NOT NULL UNIQUE,
	status TEXT NOT NULL DEFAULT 'CONFIRMED'
		CHECK (status IN ('CONFIRMED', 'COMPLETED', 'CANCELLED')),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_slots_service_status ON slots(service_id, status);
CREATE INDEX IF NOT EXISTS idx_reservations_expiry
	ON reservations(hold_expires_at) WHERE status = 'HOLD';
CREATE INDEX IF NOT EXISTS idx_bookings_user ON bookings(user_id);
`

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schemaSQL)
	return err
}
