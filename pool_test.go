package sox

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_LimitsConcurrency(t *testing.T) {
	p := NewPoolWithLimit(2)

	var (
		mu      sync.Mutex
		current int
		peak    int
		wg      sync.WaitGroup
	)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := p.Do(context.Background(), func() error {
				mu.Lock()
				current++
				if current > peak {
					peak = current
				}
				mu.Unlock()

				time.Sleep(10 * time.Millisecond)

				mu.Lock()
				current--
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak, 2)
	assert.Equal(t, 0, p.ActiveProcs())
	assert.Equal(t, 2, p.AvailableSlots())
}

func TestPool_AcquireCancelled(t *testing.T) {
	p := NewPoolWithLimit(1)
	require.NoError(t, p.Acquire(context.Background()))
	defer p.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := p.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewPool_EnvOverride(t *testing.T) {
	t.Setenv("SOX_MAX_PROCS", "7")
	assert.Equal(t, 7, NewPool().MaxProcs())

	t.Setenv("SOX_MAX_PROCS", "not-a-number")
	assert.Equal(t, defaultMaxProcs, NewPool().MaxProcs())
}

func TestNewPoolWithLimit_Default(t *testing.T) {
	assert.Equal(t, defaultMaxProcs, NewPoolWithLimit(0).MaxProcs())
	assert.Equal(t, defaultMaxProcs, NewPoolWithLimit(-3).MaxProcs())
}
