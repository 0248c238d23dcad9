// Package queue carries job IDs from the API to the workers. Job state lives
// in the store; the queue only guarantees at-least-once delivery of IDs, so
// double delivery is resolved by the store's transition rules.
package queue

import "context"

// Queue is the durable hand-off between enqueue and the worker pool.
type Queue interface {
	// Enqueue pushes a job ID for processing.
	Enqueue(ctx context.Context, jobID string) error

	// Dequeue blocks until a job ID is available or the context ends.
	Dequeue(ctx context.Context) (string, error)
}
