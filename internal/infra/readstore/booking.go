package readstore

import (
	"context"

	"slotbooking/internal/infra"
	"slotbooking/internal/pkg/pgconv"
	"slotbooking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingReadStore struct {
	pool *pgxpool.Pool
}

func NewBookingReadStore(pool *pgxpool.Pool) *BookingReadStore {
	return &BookingReadStore{pool: pool}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, service_id, provider_id, slot_id, processor_payment_id, status, created_at
		FROM bookings WHERE id = $1
	`, id)

	var view queries.BookingView
	err := row.Scan(&view.ID, &view.UserID, &view.ServiceID, &view.ProviderID, &view.SlotID, &view.ProcessorPaymentID, &view.Status, &view.CreatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return &view, nil
}
