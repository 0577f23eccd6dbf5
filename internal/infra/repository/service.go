package repository

import (
	"context"

	"slotbooking/internal/infra"
	"slotbooking/internal/pkg/pgconv"
	"slotbooking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceRepository struct {
	pool *pgxpool.Pool
}

func NewServiceRepository(pool *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{pool: pool}
}

func (r *ServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.ServiceSnapshot, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, provider_id, name, price_cents, currency
		FROM services WHERE id = $1
	`, id)

	var snap commands.ServiceSnapshot
	if err := row.Scan(&snap.ID, &snap.ProviderID, &snap.Name, &snap.PriceCents, &snap.Currency); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service by ID", err)
	}
	return &snap, nil
}
