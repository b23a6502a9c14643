// Package barrier provides the synchronization primitives a round is built
// on: an N-party rendezvous point that can be broken instead of left to
// hang, and a single-holder permit with scoped acquire-release.
package barrier

import (
	"context"
	"errors"
	"sync"
)

// ErrBroken is returned to every waiter, current and future, once a barrier
// has been broken.
var ErrBroken = errors.New("barrier broken")

// Barrier is an N-party rendezvous point. No party proceeds until all N have
// arrived. Breaking the barrier releases every waiter with ErrBroken so a
// missing party cannot deadlock the rest.
type Barrier struct {
	mu       sync.Mutex
	parties  int
	arrived  int
	released chan struct{}
	broken   chan struct{}
}

// New creates a barrier for the given number of parties.
func New(parties int) *Barrier {
	return &Barrier{
		parties:  parties,
		released: make(chan struct{}),
		broken:   make(chan struct{}),
	}
}

// Await registers the caller's arrival and blocks until every party has
// arrived. It returns ErrBroken if the barrier is or becomes broken. A
// context cancellation breaks the barrier on the way out: a cancelled party
// is a missing party, and leaving silently would strand the others.
func (b *Barrier) Await(ctx context.Context) error {
	b.mu.Lock()
	select {
	case <-b.broken:
		b.mu.Unlock()
		return ErrBroken
	default:
	}
	b.arrived++
	if b.arrived == b.parties {
		close(b.released)
	}
	b.mu.Unlock()

	select {
	case <-b.released:
		return nil
	case <-b.broken:
		return ErrBroken
	case <-ctx.Done():
		b.Break()
		return ctx.Err()
	}
}

// Break poisons the barrier. Every current and future waiter receives
// ErrBroken. Breaking an already-released barrier is a no-op.
func (b *Barrier) Break() {
	b.mu.Lock()
	defer b.mu.Unlock()

	select {
	case <-b.released:
		return
	case <-b.broken:
		return
	default:
		close(b.broken)
	}
}

// Broken reports whether the barrier has been broken.
func (b *Barrier) Broken() bool {
	select {
	case <-b.broken:
		return true
	default:
		return false
	}
}

// Parties returns the number of parties the barrier waits for.
func (b *Barrier) Parties() int {
	return b.parties
}
