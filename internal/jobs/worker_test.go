package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAll_RunsEveryJobAndKeepsOrder(t *testing.T) {
	w := NewWorker(2)
	defer w.Shutdown()

	var ran int32
	boom := errors.New("boom")

	tasks := []Job{
		func(ctx context.Context) error { atomic.AddInt32(&ran, 1); return nil },
		func(ctx context.Context) error { atomic.AddInt32(&ran, 1); return boom },
		func(ctx context.Context) error { atomic.AddInt32(&ran, 1); return nil },
	}

	errs := w.RunAll(context.Background(), tasks)
	require.Len(t, errs, 3)
	assert.NoError(t, errs[0])
	assert.ErrorIs(t, errs[1], boom)
	assert.NoError(t, errs[2])
	assert.Equal(t, int32(3), atomic.LoadInt32(&ran))
}

func TestRunAll_RecoversFromPanic(t *testing.T) {
	w := NewWorker(1)
	defer w.Shutdown()

	errs := w.RunAll(context.Background(), []Job{
		func(ctx context.Context) error { panic("unexpected") },
	})
	require.Len(t, errs, 1)
	assert.ErrorContains(t, errs[0], "job panic")
}

func TestRunAll_CanceledContext(t *testing.T) {
	w := NewWorker(1)
	defer w.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	errs := w.RunAll(ctx, []Job{
		func(ctx context.Context) error { return nil },
	})
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], context.Canceled)
}

func TestEnqueue_ProcessesJob(t *testing.T) {
	w := NewWorker(1)
	defer w.Shutdown()

	done := make(chan struct{})
	w.Enqueue(func(ctx context.Context) error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("queued job never ran")
	}
}
