package commands

import (
	"context"
	"time"

	"slotbooking/internal/domain/slot"
	"slotbooking/internal/infra"
	"slotbooking/internal/pkg/clock"
	"slotbooking/internal/pkg/errs"

	"github.com/google/uuid"
)

type CreateSlotResult struct {
	SlotID uuid.UUID
}

type SlotCommands interface {
	CreateSlot(ctx context.Context, providerID, serviceID uuid.UUID, startTime, endTime time.Time) (*CreateSlotResult, error)
}

type slotCommandsImpl struct {
	slotRepo    SlotRepository
	serviceRepo ServiceRepository
	clock       clock.Clock
}

func NewSlotCommands(slotRepo SlotRepository, serviceRepo ServiceRepository, clk clock.Clock) SlotCommands {
	return &slotCommandsImpl{
		slotRepo:    slotRepo,
		serviceRepo: serviceRepo,
		clock:       clk,
	}
}

func (u *slotCommandsImpl) CreateSlot(ctx context.Context, providerID, serviceID uuid.UUID, startTime, endTime time.Time) (*CreateSlotResult, error) {
	svc, err := u.serviceRepo.FindByID(ctx, serviceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if svc.ProviderID != providerID {
		return nil, ErrNotAuthorized
	}

	slotEntity, err := slot.NewSlot(providerID, serviceID, startTime, endTime, u.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidSlotWindow)
	}

	if err := u.slotRepo.Create(ctx, slotEntity); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &CreateSlotResult{SlotID: slotEntity.ID()}, nil
}
