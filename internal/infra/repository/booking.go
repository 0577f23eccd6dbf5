package repository

import (
	"context"

	"slotbooking/internal/domain/booking"
	"slotbooking/internal/infra"
	"slotbooking/internal/infra/db"
	"slotbooking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// CreateIfAbsent inserts the booking unless one already exists for the same
// processor payment id. Returns false when the row was already there, which
// is how replayed success callbacks are detected.
func (r *BookingRepository) CreateIfAbsent(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (bool, error) {
	if dbtx == nil {
		dbtx = r.pool
	}
	tag, err := dbtx.Exec(ctx, `
		INSERT INTO bookings (id, user_id, service_id, provider_id, slot_id, processor_payment_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (processor_payment_id) DO NOTHING
	`, b.ID, b.UserID, b.ServiceID, b.ProviderID, b.SlotID, b.ProcessorPaymentID, string(b.Status))
	if err != nil {
		return false, infra.WrapRepoErr("failed to create booking", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *BookingRepository) FindByProcessorPaymentID(ctx context.Context, processorPaymentID string) (*booking.Booking, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, service_id, provider_id, slot_id, processor_payment_id, status, created_at
		FROM bookings WHERE processor_payment_id = $1
	`, processorPaymentID)
	return scanBooking(row)
}

type bookingRow interface {
	Scan(dest ...any) error
}

func scanBooking(row bookingRow) (*booking.Booking, error) {
	var (
		b      booking.Booking
		status string
	)
	err := row.Scan(&b.ID, &b.UserID, &b.ServiceID, &b.ProviderID, &b.SlotID, &b.ProcessorPaymentID, &status, &b.CreatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan booking", err)
	}
	b.Status = booking.Status(status)
	return &b, nil
}
