package barrier

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarrierReleasesWhenAllArrive(t *testing.T) {
	const parties = 5
	b := New(parties)

	var released atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < parties; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := b.Await(context.Background()); err == nil {
				released.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(parties), released.Load())
	assert.False(t, b.Broken())
}

func TestBarrierHoldsUntilLastParty(t *testing.T) {
	b := New(2)

	done := make(chan error, 1)
	go func() {
		done <- b.Await(context.Background())
	}()

	select {
	case <-done:
		t.Fatal("barrier released with a party missing")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, b.Await(context.Background()))
	assert.NoError(t, <-done)
}

func TestBreakReleasesCurrentWaiters(t *testing.T) {
	b := New(3)

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			errs <- b.Await(context.Background())
		}()
	}
	time.Sleep(20 * time.Millisecond)

	b.Break()
	assert.ErrorIs(t, <-errs, ErrBroken)
	assert.ErrorIs(t, <-errs, ErrBroken)
	assert.True(t, b.Broken())
}

func TestBrokenBarrierRejectsFutureArrivals(t *testing.T) {
	b := New(3)
	b.Break()

	assert.ErrorIs(t, b.Await(context.Background()), ErrBroken)
}

func TestBreakAfterReleaseIsNoop(t *testing.T) {
	b := New(1)
	require.NoError(t, b.Await(context.Background()))

	b.Break()
	assert.False(t, b.Broken())
	assert.NoError(t, b.Await(context.Background()), "released barrier keeps releasing")
}

func TestContextCancellationBreaksBarrier(t *testing.T) {
	b := New(2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- b.Await(ctx)
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	assert.True(t, errors.Is(<-done, context.Canceled))
	assert.True(t, b.Broken(), "a cancelled party must not strand the others")
	assert.ErrorIs(t, b.Await(context.Background()), ErrBroken)
}

func TestPermitMutualExclusion(t *testing.T) {
	p := NewPermit()

	var holders atomic.Int32
	var maxHolders atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := p.Do(context.Background(), func() error {
				n := holders.Add(1)
				if n > maxHolders.Load() {
					maxHolders.Store(n)
				}
				time.Sleep(time.Millisecond)
				holders.Add(-1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxHolders.Load())
}

func TestPermitDoReleasesOnError(t *testing.T) {
	p := NewPermit()

	wantErr := errors.New("turn went sideways")
	err := p.Do(context.Background(), func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)

	// The permit must be free again.
	require.NoError(t, p.Acquire(context.Background()))
	p.Release()
}

func TestPermitDoReleasesOnPanic(t *testing.T) {
	p := NewPermit()

	assert.Panics(t, func() {
		_ = p.Do(context.Background(), func() error { panic("seat crashed") })
	})

	require.NoError(t, p.Acquire(context.Background()))
	p.Release()
}

func TestPermitAcquireHonorsContext(t *testing.T) {
	p := NewPermit()
	require.NoError(t, p.Acquire(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, p.Acquire(ctx))

	p.Release()
}

func TestReleaseUnheldPermitPanics(t *testing.T) {
	p := NewPermit()
	assert.Panics(t, func() { p.Release() })
}
