package repository

import (
	"context"

	"slotbooking/internal/domain/payment"
	"slotbooking/internal/infra"
	"slotbooking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

// Upsert inserts or updates the payment shadow keyed by the processor payment
// id. The WHERE clause on the conflict arm keeps terminal statuses from
// regressing when a stale or replayed callback arrives out of order.
func (r *PaymentRepository) Upsert(ctx context.Context, p *payment.Payment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO payments (processor_payment_id, user_id, reservation_id, amount_cents, currency, status, raw_payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (processor_payment_id) DO UPDATE
		SET status = EXCLUDED.status,
		    raw_payload = COALESCE(EXCLUDED.raw_payload, payments.raw_payload),
		    updated_at = now()
		WHERE payments.status NOT IN ('SUCCEEDED', 'FAILED', 'CANCELED')
	`, p.ProcessorPaymentID, p.UserID, p.ReservationID, p.AmountCents, p.Currency, p.Status.String(), p.RawPayload)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert payment", err)
	}
	return nil
}

// UpdateStatus updates an existing shadow row without needing the full
// correlation context, e.g. for callbacks whose metadata is incomplete. The
// same terminal-status guard applies.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, processorPaymentID string, status payment.Status, rawPayload []byte) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE payments
		SET status = $2,
		    raw_payload = COALESCE($3, raw_payload),
		    updated_at = now()
		WHERE processor_payment_id = $1
		  AND status NOT IN ('SUCCEEDED', 'FAILED', 'CANCELED')
	`, processorPaymentID, status.String(), rawPayload)
	if err != nil {
		return false, infra.WrapRepoErr("failed to update payment status", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PaymentRepository) FindByProcessorID(ctx context.Context, processorPaymentID string) (*payment.Payment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT processor_payment_id, user_id, reservation_id, amount_cents, currency, status, raw_payload, created_at, updated_at
		FROM payments WHERE processor_payment_id = $1
	`, processorPaymentID)

	var (
		p      payment.Payment
		status string
	)
	err := row.Scan(&p.ProcessorPaymentID, &p.UserID, &p.ReservationID, &p.AmountCents, &p.Currency, &status, &p.RawPayload, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment", err)
	}
	p.Status = payment.Status(status)
	return &p, nil
}
