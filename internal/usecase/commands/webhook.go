package commands

import (
	"context"
	"errors"
	"log/slog"
)

type WebhookCommands interface {
	// HandleCallback verifies and applies (or enqueues) one processor
	// callback. ErrSignatureInvalid means the payload was rejected with no
	// side effects.
	HandleCallback(ctx context.Context, payload []byte, signature string) error
}

type webhookCommandsImpl struct {
	proc         PaymentProcessor
	applier      PaymentEventApplier
	queue        EventQueue
	queueEnabled bool
}

func NewWebhookCommands(
	proc PaymentProcessor,
	applier PaymentEventApplier,
	queue EventQueue,
	queueEnabled bool,
) WebhookCommands {
	return &webhookCommandsImpl{
		proc:         proc,
		applier:      applier,
		queue:        queue,
		queueEnabled: queueEnabled,
	}
}

func (u *webhookCommandsImpl) HandleCallback(ctx context.Context, payload []byte, signature string) error {
	event, err := u.proc.VerifyCallback(payload, signature)
	if err != nil {
		if errors.Is(err, ErrEventIgnored) {
			return nil
		}
		return err
	}

	if u.queueEnabled {
		if err := u.queue.Enqueue(ctx, event); err == nil {
			return nil
		}
		// Queue outage falls back to inline application so the callback is
		// still durably recorded before we acknowledge it.
		slog.Warn("failed to enqueue payment event, applying inline",
			"processor_payment_id", event.ProcessorPaymentID)
	}

	return u.applier.Apply(ctx, event)
}
