package readstore

import (
	"context"

	"slotbooking/internal/infra"
	"slotbooking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SlotReadStore struct {
	pool *pgxpool.Pool
}

func NewSlotReadStore(pool *pgxpool.Pool) *SlotReadStore {
	return &SlotReadStore{pool: pool}
}

func (r *SlotReadStore) FindAvailableByService(ctx context.Context, serviceID uuid.UUID) ([]*queries.SlotView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, provider_id, service_id, start_time, end_time, status
		FROM slots
		WHERE service_id = $1 AND status = 'AVAILABLE'
		ORDER BY start_time
	`, serviceID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find available slots", err)
	}
	defer rows.Close()

	var views []*queries.SlotView
	for rows.Next() {
		var view queries.SlotView
		if scanErr := rows.Scan(&view.ID, &view.ProviderID, &view.ServiceID, &view.StartTime, &view.EndTime, &view.Status); scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan slot row", scanErr)
		}
		views = append(views, &view)
	}
	if rows.Err() != nil {
		return nil, infra.WrapRepoErr("failed to iterate slot rows", rows.Err())
	}
	return views, nil
}
