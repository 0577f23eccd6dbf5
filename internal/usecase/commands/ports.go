package commands

import (
	"context"
	"encoding/json"
	"time"

	"slotbooking/internal/domain/booking"
	"slotbooking/internal/domain/payment"
	"slotbooking/internal/domain/reservation"
	"slotbooking/internal/domain/slot"
	"slotbooking/internal/infra/db"

	"github.com/google/uuid"
)

// Correlation metadata attached to every processor payment object so the
// asynchronous callback can recover its context without touching local
// request state.
const (
	MetaReservationID = "reservation_id"
	MetaSlotID        = "slot_id"
	MetaServiceID     = "service_id"
	MetaProviderID    = "provider_id"
	MetaUserID        = "user_id"
)

type ServiceSnapshot struct {
	ID         uuid.UUID
	ProviderID uuid.UUID
	Name       string
	PriceCents int64
	Currency   string
}

type ExpiredHold struct {
	ReservationID uuid.UUID
	SlotID        uuid.UUID
}

type SlotRepository interface {
	Create(ctx context.Context, s *slot.Slot) error
	FindByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error)
	TransitionStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, from, to slot.Status) (bool, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, res *reservation.Reservation) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	TransitionStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, from, to reservation.Status) (bool, error)
	ExpireOverdue(ctx context.Context, now time.Time, limit int) ([]ExpiredHold, error)
}

type PaymentRepository interface {
	Upsert(ctx context.Context, p *payment.Payment) error
	UpdateStatus(ctx context.Context, processorPaymentID string, status payment.Status, rawPayload []byte) (bool, error)
	FindByProcessorID(ctx context.Context, processorPaymentID string) (*payment.Payment, error)
}

type BookingRepository interface {
	CreateIfAbsent(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (bool, error)
	FindByProcessorPaymentID(ctx context.Context, processorPaymentID string) (*booking.Booking, error)
}

type ServiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ServiceSnapshot, error)
}

// TxManager scopes a function to a single database transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error
}

// SlotLock is a best-effort mutual-exclusion guard serializing concurrent
// reservation attempts on one slot before they reach the atomic store
// operation. It is purely a throughput optimization: every code path stays
// correct when TryAcquire always reports acquired (the no-op implementation)
// or when the lock service is down.
type SlotLock interface {
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (token string, acquired bool, err error)
	Release(ctx context.Context, key, token string) error
}

type EventKind string

const (
	EventSucceeded      EventKind = "succeeded"
	EventFailed         EventKind = "failed"
	EventCanceled       EventKind = "canceled"
	EventProcessing     EventKind = "processing"
	EventRequiresAction EventKind = "requires_action"
)

// PaymentEvent is a processor callback normalized into the shape the
// transition logic consumes, either inline from the webhook handler or later
// from the queue drain worker.
type PaymentEvent struct {
	ProcessorPaymentID string            `json:"processor_payment_id"`
	Kind               EventKind         `json:"kind"`
	AmountCents        int64             `json:"amount_cents"`
	Currency           string            `json:"currency"`
	Metadata           map[string]string `json:"metadata"`
	Raw                json.RawMessage   `json:"raw,omitempty"`
}

type CreateIntentParams struct {
	AmountCents    int64
	Currency       string
	IdempotencyKey string
	Metadata       map[string]string
}

type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
}

type PaymentProcessor interface {
	CreateIntent(ctx context.Context, params CreateIntentParams) (*PaymentIntent, error)
	// VerifyCallback authenticates a raw webhook payload against its
	// signature header and normalizes it. An invalid signature must fail
	// without side effects.
	VerifyCallback(payload []byte, signature string) (*PaymentEvent, error)
}

type EventQueue interface {
	Enqueue(ctx context.Context, event *PaymentEvent) error
	Dequeue(ctx context.Context, max int) ([]*PaymentEvent, error)
}

// EventPublisher emits domain events for downstream consumers (notification
// senders and the like). Publish failures are logged, never propagated into
// the booking transition.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}
