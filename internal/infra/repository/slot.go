package repository

import (
	"context"
	"time"

	"slotbooking/internal/domain/slot"
	"slotbooking/internal/infra"
	"slotbooking/internal/infra/db"
	"slotbooking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SlotRepository struct {
	pool *pgxpool.Pool
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

func (r *SlotRepository) Create(ctx context.Context, s *slot.Slot) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO slots (id, provider_id, service_id, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, s.ID(), s.ProviderID(), s.ServiceID(), s.StartTime(), s.EndTime(), s.Status().String())
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("slot already exists", err, infra.KindDuplicateKey)
		}
		if isForeignKeyViolation(err) {
			return infra.WrapRepoErr("unknown service for slot", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to create slot", err)
	}
	return nil
}

func (r *SlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error) {
	return r.findByID(ctx, r.pool, id)
}

func (r *SlotRepository) findByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*slot.Slot, error) {
	row := dbtx.QueryRow(ctx, `
		SELECT id, provider_id, service_id, start_time, end_time, status, created_at, updated_at
		FROM slots WHERE id = $1
	`, id)

	var (
		slotID, providerID, serviceID uuid.UUID
		startTime, endTime            time.Time
		status                        string
		createdAt, updatedAt          time.Time
	)
	if err := row.Scan(&slotID, &providerID, &serviceID, &startTime, &endTime, &status, &createdAt, &updatedAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find slot by ID", err)
	}

	return slot.ReconstructSlot(
		slotID, providerID, serviceID,
		startTime, endTime,
		slot.Status(status),
		createdAt, updatedAt,
	), nil
}

// TransitionStatus flips the slot status only when the current status matches
// the expected one. The rows-affected count is the race arbiter: exactly one
// of any number of concurrent callers observes true.
func (r *SlotRepository) TransitionStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, from, to slot.Status) (bool, error) {
	if dbtx == nil {
		dbtx = r.pool
	}
	tag, err := dbtx.Exec(ctx, `
		UPDATE slots SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2
	`, id, from.String(), to.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to transition slot status", err)
	}
	return tag.RowsAffected() == 1, nil
}
