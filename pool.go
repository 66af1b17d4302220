package sox

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
)

// Pool bounds the number of sox processes a caller keeps in flight at
// once. The Runner itself never parallelizes, so issuing queries from
// many goroutines is safe; a Pool keeps that from exhausting the host.
type Pool struct {
	maxProcs  int
	semaphore chan struct{}
	active    int
	mu        sync.Mutex
}

const defaultMaxProcs = 64

// NewPool creates a pool with the default limit of concurrent
// invocations (configurable via the SOX_MAX_PROCS env var).
func NewPool() *Pool {
	maxProcs := defaultMaxProcs

	if envMax := os.Getenv("SOX_MAX_PROCS"); envMax != "" {
		if parsed, err := strconv.Atoi(envMax); err == nil && parsed > 0 {
			maxProcs = parsed
		}
	}

	return NewPoolWithLimit(maxProcs)
}

// NewPoolWithLimit creates a pool with a specific limit
func NewPoolWithLimit(maxProcs int) *Pool {
	if maxProcs <= 0 {
		maxProcs = defaultMaxProcs
	}

	return &Pool{
		maxProcs:  maxProcs,
		semaphore: make(chan struct{}, maxProcs),
	}
}

// Acquire blocks until a slot is available
func (p *Pool) Acquire(ctx context.Context) error {
	select {
	case p.semaphore <- struct{}{}:
		p.mu.Lock()
		p.active++
		p.mu.Unlock()
		return nil
	case <-ctx.Done():
		return fmt.Errorf("pool acquire cancelled: %w", ctx.Err())
	}
}

// Release frees a slot
func (p *Pool) Release() {
	p.mu.Lock()
	p.active--
	p.mu.Unlock()
	<-p.semaphore
}

// Do runs fn while holding a pool slot.
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	if err := p.Acquire(ctx); err != nil {
		return err
	}
	defer p.Release()
	return fn()
}

// ActiveProcs returns the number of slots currently held
func (p *Pool) ActiveProcs() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// MaxProcs returns the maximum concurrent invocations allowed
func (p *Pool) MaxProcs() int {
	return p.maxProcs
}

// AvailableSlots returns the number of free slots
func (p *Pool) AvailableSlots() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.maxProcs - p.active
}
