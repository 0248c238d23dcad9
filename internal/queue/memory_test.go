package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryQueueFIFO(t *testing.T) {
	q := NewMemory(4)
	ctx := context.Background()

	assert.NoError(t, q.Enqueue(ctx, "job-1"))
	assert.NoError(t, q.Enqueue(ctx, "job-2"))

	id, err := q.Dequeue(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "job-1", id)

	id, err = q.Dequeue(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "job-2", id)
}

func TestMemoryQueueDequeueHonorsContext(t *testing.T) {
	q := NewMemory(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := q.Dequeue(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMemoryQueueEnqueueHonorsContext(t *testing.T) {
	q := NewMemory(1)
	ctx := context.Background()

	assert.NoError(t, q.Enqueue(ctx, "job-1"))

	full, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, q.Enqueue(full, "job-2"), context.DeadlineExceeded)
}
