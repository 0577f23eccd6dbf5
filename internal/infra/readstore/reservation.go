package readstore

import (
	"context"

	"slotbooking/internal/infra"
	"slotbooking/internal/pkg/pgconv"
	"slotbooking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationReadStore struct {
	pool *pgxpool.Pool
}

func NewReservationReadStore(pool *pgxpool.Pool) *ReservationReadStore {
	return &ReservationReadStore{pool: pool}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, slot_id, status, hold_expires_at, created_at, updated_at
		FROM reservations WHERE id = $1
	`, id)

	var view queries.ReservationView
	err := row.Scan(&view.ID, &view.UserID, &view.SlotID, &view.Status, &view.HoldExpiresAt, &view.CreatedAt, &view.UpdatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return &view, nil
}

func (r *ReservationReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.ReservationView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, slot_id, status, hold_expires_at, created_at, updated_at
		FROM reservations
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations by user", err)
	}
	defer rows.Close()

	var views []*queries.ReservationView
	for rows.Next() {
		var view queries.ReservationView
		if scanErr := rows.Scan(&view.ID, &view.UserID, &view.SlotID, &view.Status, &view.HoldExpiresAt, &view.CreatedAt, &view.UpdatedAt); scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", scanErr)
		}
		views = append(views, &view)
	}
	if rows.Err() != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation rows", rows.Err())
	}
	return views, nil
}
