package repository

import (
	"context"
	"time"

	"slotbooking/internal/domain/reservation"
	"slotbooking/internal/infra"
	"slotbooking/internal/infra/db"
	"slotbooking/internal/pkg/pgconv"
	"slotbooking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

func (r *ReservationRepository) Create(ctx context.Context, dbtx db.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	_, err := dbtx.Exec(ctx, `
		INSERT INTO reservations (id, user_id, slot_id, status, hold_expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`, res.ID(), res.UserID(), res.SlotID(), res.Status().String(), res.HoldExpiresAt())
	if err != nil {
		if isUniqueViolation(err) {
			// The partial unique index on (slot_id) WHERE status = 'HOLD'
			// rejects a second live hold on the same slot.
			return uuid.Nil, infra.WrapRepoErr("slot already held", err, infra.KindConflict)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}
	return res.ID(), nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, slot_id, status, hold_expires_at, created_at, updated_at
		FROM reservations WHERE id = $1
	`, id)
	return scanReservation(row)
}

// TransitionStatus is the reservation counterpart of the conditional slot
// flip; it only succeeds when the stored status still matches the expected one.
func (r *ReservationRepository) TransitionStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, from, to reservation.Status) (bool, error) {
	if dbtx == nil {
		dbtx = r.pool
	}
	tag, err := dbtx.Exec(ctx, `
		UPDATE reservations SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2
	`, id, from.String(), to.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to transition reservation status", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ExpireOverdue expires up to limit HOLD reservations whose hold_expires_at
// has passed and returns their slot ids so the caller can release the slots.
// SKIP LOCKED keeps concurrent sweeps from stepping on each other.
func (r *ReservationRepository) ExpireOverdue(ctx context.Context, now time.Time, limit int) ([]commands.ExpiredHold, error) {
	rows, err := r.pool.Query(ctx, `
		UPDATE reservations SET status = 'EXPIRED', updated_at = now()
		WHERE id IN (
			SELECT id FROM reservations
			WHERE status = 'HOLD' AND hold_expires_at < $1
			ORDER BY hold_expires_at
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, slot_id
	`, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to expire overdue holds", err)
	}
	defer rows.Close()

	var expired []commands.ExpiredHold
	for rows.Next() {
		var e commands.ExpiredHold
		if scanErr := rows.Scan(&e.ReservationID, &e.SlotID); scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan expired hold", scanErr)
		}
		expired = append(expired, e)
	}
	if rows.Err() != nil {
		return nil, infra.WrapRepoErr("failed to iterate expired holds", rows.Err())
	}
	return expired, nil
}

type reservationRow interface {
	Scan(dest ...any) error
}

func scanReservation(row reservationRow) (*reservation.Reservation, error) {
	var (
		id, userID, slotID   uuid.UUID
		status               string
		holdExpiresAt        time.Time
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &userID, &slotID, &status, &holdExpiresAt, &createdAt, &updatedAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan reservation", err)
	}

	return reservation.ReconstructReservation(
		id, userID, slotID,
		reservation.Status(status),
		holdExpiresAt,
		createdAt, updatedAt,
	), nil
}
