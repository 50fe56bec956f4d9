package sched_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gizzahub/lpmcore/sched"
)

func TestPoolRunsAllJobsAndCollectsFirstError(t *testing.T) {
	pool := sched.NewPool(context.Background(), 2)

	var ran int32
	boom := errors.New("boom")

	for i := 0; i < 5; i++ {
		i := i
		pool.Go(func(ctx context.Context) error {
			atomic.AddInt32(&ran, 1)
			if i == 2 {
				return boom
			}
			return nil
		})
	}

	err := pool.Wait()
	require.ErrorIs(t, err, boom)
	assert.EqualValues(t, 5, atomic.LoadInt32(&ran), "every scheduled job must still run")
}

func TestPoolHonorsSetLimit(t *testing.T) {
	pool := sched.NewPool(context.Background(), 1)

	var concurrent, maxConcurrent int32
	for i := 0; i < 4; i++ {
		pool.Go(func(ctx context.Context) error {
			n := atomic.AddInt32(&concurrent, 1)
			for {
				old := atomic.LoadInt32(&maxConcurrent)
				if n <= old || atomic.CompareAndSwapInt32(&maxConcurrent, old, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&concurrent, -1)
			return nil
		})
	}

	require.NoError(t, pool.Wait())
	assert.EqualValues(t, 1, maxConcurrent)
}

func TestFuturePublishPeekAndResolve(t *testing.T) {
	var f sched.Future[int]

	f.Publish(1)
	assert.Equal(t, 1, f.Peek())

	done := make(chan struct{})
	go func() {
		defer close(done)
		f.Publish(2)
		f.Resolve(3)
	}()

	v, err := f.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	<-done
}

func TestFutureWaitRespectsContextCancellation(t *testing.T) {
	var f sched.Future[int]
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.Wait(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
