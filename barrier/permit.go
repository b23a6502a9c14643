package barrier

import "context"

// Permit is a single-holder token. At most one goroutine holds it at a time;
// during seat turns it serializes access to the shared shoe.
type Permit struct {
	slot chan struct{}
}

// NewPermit creates a free permit.
func NewPermit() *Permit {
	return &Permit{slot: make(chan struct{}, 1)}
}

// Acquire blocks until the permit is free or ctx is done.
func (p *Permit) Acquire(ctx context.Context) error {
	select {
	case p.slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees the permit. Releasing a permit that is not held panics, as
// that always indicates a bookkeeping bug in the caller.
func (p *Permit) Release() {
	select {
	case <-p.slot:
	default:
		panic("barrier: release of unheld permit")
	}
}

// Do runs fn while holding the permit and guarantees release on every exit
// path, including a panic inside fn.
func (p *Permit) Do(ctx context.Context, fn func() error) error {
	if err := p.Acquire(ctx); err != nil {
		return err
	}
	defer p.Release()
	return fn()
}
