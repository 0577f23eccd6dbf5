package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"slotbooking/internal/infra"
	"slotbooking/internal/usecase/commands"

	"github.com/redis/go-redis/v9"
)

// RedisEventQueue is a FIFO list of serialized payment events. The webhook
// handler pushes, the drain worker pops; LPUSH + RPOP keeps arrival order.
type RedisEventQueue struct {
	client *redis.Client
	key    string
}

func NewRedisEventQueue(client *redis.Client, key string) *RedisEventQueue {
	return &RedisEventQueue{client: client, key: key}
}

func (q *RedisEventQueue) Enqueue(ctx context.Context, event *commands.PaymentEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return infra.WrapRepoErr("failed to marshal payment event", err)
	}
	if err := q.client.LPush(ctx, q.key, data).Err(); err != nil {
		return infra.WrapRepoErr("failed to enqueue payment event", err)
	}
	return nil
}

// Dequeue pops up to max events in one invocation; this bound is the
// worker's back-pressure control.
func (q *RedisEventQueue) Dequeue(ctx context.Context, max int) ([]*commands.PaymentEvent, error) {
	events := make([]*commands.PaymentEvent, 0, max)
	for i := 0; i < max; i++ {
		data, err := q.client.RPop(ctx, q.key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				break
			}
			return events, infra.WrapRepoErr("failed to dequeue payment event", err)
		}

		var event commands.PaymentEvent
		if err := json.Unmarshal(data, &event); err != nil {
			// A malformed entry is dropped rather than wedging the queue.
			slog.Warn("dropping malformed payment event", "queue", q.key, "error", err)
			continue
		}
		events = append(events, &event)
	}
	return events, nil
}

var _ commands.EventQueue = (*RedisEventQueue)(nil)
