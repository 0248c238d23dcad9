package queue

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKey = "veritas:factcheck:jobs"

// Redis is the durable queue backend: LPUSH on enqueue, blocking RPOP on
// dequeue. IDs survive process restarts; at-least-once delivery is enough
// because workers dedupe through the job state machine.
type Redis struct {
	client *redis.Client
	key    string
}

func NewRedis(addr, password string, db int) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
		key:    defaultKey,
	}
}

func (r *Redis) Enqueue(ctx context.Context, jobID string) error {
	return r.client.LPush(ctx, r.key, jobID).Err()
}

// Dequeue polls with a short blocking timeout so context cancellation is
// honored within a second.
func (r *Redis) Dequeue(ctx context.Context) (string, error) {
	for {
		res, err := r.client.BRPop(ctx, time.Second, r.key).Result()
		if errors.Is(err, redis.Nil) {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			continue
		}
		if err != nil {
			return "", err
		}
		// BRPop returns [key, value].
		return res[1], nil
	}
}

func (r *Redis) Close() error {
	return r.client.Close()
}
