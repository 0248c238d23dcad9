package queue

import "context"

const defaultBuffer = 256

// Memory is a channel-backed queue for tests and single-process deployments.
// Not durable across restarts; the Redis backend is the production lane.
type Memory struct {
	ch chan string
}

func NewMemory(buffer int) *Memory {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Memory{ch: make(chan string, buffer)}
}

func (m *Memory) Enqueue(ctx context.Context, jobID string) error {
	select {
	case m.ch <- jobID:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Memory) Dequeue(ctx context.Context) (string, error) {
	select {
	case jobID := <-m.ch:
		return jobID, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
