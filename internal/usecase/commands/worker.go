package commands

import (
	"context"
	"log/slog"

	"slotbooking/internal/pkg/errs"
)

type WorkerCommands interface {
	// DrainQueue applies up to maxItems queued payment events and returns the
	// number applied. The bound is the invocation's back-pressure budget;
	// maxItems <= 0 selects the configured default.
	DrainQueue(ctx context.Context, maxItems int) (int, error)
}

type workerCommandsImpl struct {
	queue            EventQueue
	applier          PaymentEventApplier
	defaultBatchSize int
}

func NewWorkerCommands(queue EventQueue, applier PaymentEventApplier, defaultBatchSize int) WorkerCommands {
	return &workerCommandsImpl{
		queue:            queue,
		applier:          applier,
		defaultBatchSize: defaultBatchSize,
	}
}

func (u *workerCommandsImpl) DrainQueue(ctx context.Context, maxItems int) (int, error) {
	if maxItems <= 0 {
		maxItems = u.defaultBatchSize
	}

	events, err := u.queue.Dequeue(ctx, maxItems)
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	processed := 0
	for _, event := range events {
		// One bad event must not abort the batch.
		if applyErr := u.applier.Apply(ctx, event); applyErr != nil {
			slog.Error("failed to apply queued payment event",
				"processor_payment_id", event.ProcessorPaymentID, "error", applyErr)
			continue
		}
		processed++
	}
	return processed, nil
}
