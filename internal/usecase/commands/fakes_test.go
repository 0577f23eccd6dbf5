//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"slotbooking/internal/domain/booking"
	"slotbooking/internal/domain/payment"
	"slotbooking/internal/domain/reservation"
	"slotbooking/internal/domain/slot"
	"slotbooking/internal/infra"
	"slotbooking/internal/infra/db"
	"slotbooking/internal/usecase/commands"

	"github.com/google/uuid"
)

var errNoRows = errors.New("no rows in result set")

// fakeSlotRepo keeps slot status in memory with the same conditional-update
// semantics the SQL implementation has.
type fakeSlotRepo struct {
	mu    sync.Mutex
	slots map[uuid.UUID]*slot.Slot
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[uuid.UUID]*slot.Slot)}
}

func (f *fakeSlotRepo) seed(s *slot.Slot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slots[s.ID()] = s
}

func (f *fakeSlotRepo) Create(_ context.Context, s *slot.Slot) error {
	f.seed(s)
	return nil
}

func (f *fakeSlotRepo) FindByID(_ context.Context, id uuid.UUID) (*slot.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[id]
	if !ok {
		return nil, infra.WrapRepoErr("slot not found", errNoRows, infra.KindNotFound)
	}
	return s, nil
}

func (f *fakeSlotRepo) TransitionStatus(_ context.Context, _ db.DBTX, id uuid.UUID, from, to slot.Status) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[id]
	if !ok || s.Status() != from {
		return false, nil
	}
	f.slots[id] = slot.ReconstructSlot(
		s.ID(), s.ProviderID(), s.ServiceID(), s.StartTime(), s.EndTime(), to, s.CreatedAt(), time.Now(),
	)
	return true, nil
}

func (f *fakeSlotRepo) status(id uuid.UUID) slot.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slots[id].Status()
}

type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations map[uuid.UUID]*reservation.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{reservations: make(map[uuid.UUID]*reservation.Reservation)}
}

func (f *fakeReservationRepo) seed(r *reservation.Reservation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reservations[r.ID()] = r
}

func (f *fakeReservationRepo) Create(_ context.Context, _ db.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	// Mirrors the partial unique index on active holds.
	for _, existing := range f.reservations {
		if existing.SlotID() == res.SlotID() && existing.IsHeld() {
			return uuid.Nil, infra.WrapRepoErr("active hold exists", errors.New("unique violation"), infra.KindConflict)
		}
	}
	f.reservations[res.ID()] = res
	return res.ID(), nil
}

func (f *fakeReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", errNoRows, infra.KindNotFound)
	}
	return r, nil
}

func (f *fakeReservationRepo) TransitionStatus(_ context.Context, _ db.DBTX, id uuid.UUID, from, to reservation.Status) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reservations[id]
	if !ok || r.Status() != from {
		return false, nil
	}
	f.reservations[id] = reservation.ReconstructReservation(
		r.ID(), r.UserID(), r.SlotID(), to, r.HoldExpiresAt(), r.CreatedAt(), time.Now(),
	)
	return true, nil
}

func (f *fakeReservationRepo) ExpireOverdue(_ context.Context, now time.Time, limit int) ([]commands.ExpiredHold, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var expired []commands.ExpiredHold
	for id, r := range f.reservations {
		if len(expired) >= limit {
			break
		}
		if r.HasExpired(now) {
			f.reservations[id] = reservation.ReconstructReservation(
				r.ID(), r.UserID(), r.SlotID(), reservation.StatusExpired, r.HoldExpiresAt(), r.CreatedAt(), now,
			)
			expired = append(expired, commands.ExpiredHold{ReservationID: id, SlotID: r.SlotID()})
		}
	}
	return expired, nil
}

func (f *fakeReservationRepo) status(id uuid.UUID) reservation.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reservations[id].Status()
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments map[string]*payment.Payment
	upsertEr error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]*payment.Payment)}
}

func (f *fakePaymentRepo) Upsert(_ context.Context, p *payment.Payment) error {
	if f.upsertEr != nil {
		return f.upsertEr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.payments[p.ProcessorPaymentID]; ok && existing.Status.IsTerminal() {
		// Terminal statuses never regress.
		return nil
	}
	cp := *p
	f.payments[p.ProcessorPaymentID] = &cp
	return nil
}

func (f *fakePaymentRepo) UpdateStatus(_ context.Context, processorPaymentID string, status payment.Status, rawPayload []byte) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[processorPaymentID]
	if !ok || p.Status.IsTerminal() {
		return false, nil
	}
	p.Status = status
	p.RawPayload = rawPayload
	return true, nil
}

func (f *fakePaymentRepo) FindByProcessorID(_ context.Context, processorPaymentID string) (*payment.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[processorPaymentID]
	if !ok {
		return nil, infra.WrapRepoErr("payment not found", errNoRows, infra.KindNotFound)
	}
	return p, nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*booking.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*booking.Booking)}
}

func (f *fakeBookingRepo) CreateIfAbsent(_ context.Context, _ db.DBTX, b *booking.Booking) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bookings[b.ProcessorPaymentID]; ok {
		return false, nil
	}
	cp := *b
	f.bookings[b.ProcessorPaymentID] = &cp
	return true, nil
}

func (f *fakeBookingRepo) FindByProcessorPaymentID(_ context.Context, processorPaymentID string) (*booking.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[processorPaymentID]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", errNoRows, infra.KindNotFound)
	}
	return b, nil
}

func (f *fakeBookingRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookings)
}

type fakeServiceRepo struct {
	services map[uuid.UUID]*commands.ServiceSnapshot
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[uuid.UUID]*commands.ServiceSnapshot)}
}

func (f *fakeServiceRepo) FindByID(_ context.Context, id uuid.UUID) (*commands.ServiceSnapshot, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, infra.WrapRepoErr("service not found", errNoRows, infra.KindNotFound)
	}
	return svc, nil
}

// fakeTxManager runs the function without a real transaction; the fakes'
// conditional updates carry the atomicity the tests rely on.
type fakeTxManager struct{}

func (fakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return fn(ctx, nil)
}

type fakeSlotLock struct {
	mu        sync.Mutex
	acquired  bool
	err       error
	acquires  int
	releases  int
	lastKey   string
	lastToken string
}

func (f *fakeSlotLock) TryAcquire(_ context.Context, key string, _ time.Duration) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acquires++
	f.lastKey = key
	if f.err != nil {
		return "", false, f.err
	}
	if !f.acquired {
		return "", false, nil
	}
	f.lastToken = "token-" + key
	return f.lastToken, true, nil
}

func (f *fakeSlotLock) Release(_ context.Context, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.releases++
	return nil
}

type fakeEventQueue struct {
	mu         sync.Mutex
	events     []*commands.PaymentEvent
	enqueueErr error
}

func (f *fakeEventQueue) Enqueue(_ context.Context, event *commands.PaymentEvent) error {
	if f.enqueueErr != nil {
		return f.enqueueErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEventQueue) Dequeue(_ context.Context, max int) ([]*commands.PaymentEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if max > len(f.events) {
		max = len(f.events)
	}
	out := f.events[:max]
	f.events = f.events[max:]
	return out, nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []string
}

func (f *fakePublisher) Publish(_ context.Context, routingKey string, _ any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, routingKey)
	return nil
}

type fakeProcessor struct {
	intent     *commands.PaymentIntent
	createErr  error
	lastParams commands.CreateIntentParams
	event      *commands.PaymentEvent
	verifyErr  error
}

func (f *fakeProcessor) CreateIntent(_ context.Context, params commands.CreateIntentParams) (*commands.PaymentIntent, error) {
	f.lastParams = params
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.intent, nil
}

func (f *fakeProcessor) VerifyCallback(_ []byte, _ string) (*commands.PaymentEvent, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.event, nil
}
