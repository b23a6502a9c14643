// Package round implements the multi-seat blackjack round: the coordinator
// that advances shared phases, the per-seat sessions that play against it,
// and the settlement rules. The shoe, the dealer hand, the phase barriers
// and the turn permit are all owned here.
package round

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sanity-io/litter"
	"go.uber.org/zap"

	"github.com/orkadesh/blackjacksrv/barrier"
	"github.com/orkadesh/blackjacksrv/cards"
	"github.com/orkadesh/blackjacksrv/events"
)

// ErrRoundAborted is surfaced to every participant when a round is torn
// down before completion.
var ErrRoundAborted = errors.New("round aborted")

// Coordinator runs one multi-seat round. It spawns a session goroutine per
// seat, participates in the all-players-done barrier as the extra party,
// resolves the dealer hand under exclusive ownership, and publishes frozen
// dealer snapshots at the phase boundaries where seats may read them.
type Coordinator struct {
	ID    string
	rules Rules
	store events.EventStore
	log   *zap.Logger

	seats  []*Seat
	shoe   *cards.Shoe
	dealer *cards.Hand

	betsClosed  *barrier.Barrier
	playersDone *barrier.Barrier
	dealerDone  *barrier.Barrier
	turn        *barrier.Permit

	dealerUp    *cards.Hand   // frozen after the up-card deal
	dealerFinal *cards.Hand   // frozen after the dealer's draw loop
	dealerReady chan struct{} // closed once dealerFinal is set

	aborted   chan struct{}
	abortOnce sync.Once

	mu    sync.Mutex
	phase Phase
}

// NewCoordinator creates a round for the given seats. Barrier party counts
// are fixed here: bets-closed and dealer-done wait for every seat,
// all-players-done additionally waits for the coordinator itself.
func NewCoordinator(rules Rules, store events.EventStore, log *zap.Logger, seats []*Seat) *Coordinator {
	return &Coordinator{
		ID:          uuid.NewString(),
		rules:       rules,
		store:       store,
		log:         log,
		seats:       seats,
		shoe:        cards.NewShoe(rules.Decks, true),
		dealer:      cards.NewHand(),
		betsClosed:  barrier.New(len(seats)),
		playersDone: barrier.New(len(seats) + 1),
		dealerDone:  barrier.New(len(seats)),
		turn:        barrier.NewPermit(),
		dealerReady: make(chan struct{}),
		aborted:     make(chan struct{}),
		phase:       PhaseRegistering,
	}
}

// Phase returns the coordinator's current phase.
func (c *Coordinator) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Coordinator) setPhase(p Phase) {
	c.mu.Lock()
	c.phase = p
	c.mu.Unlock()
}

// DealerUpCard returns the dealer's hand as dealt before seat turns. The
// copy is the caller's to keep; the live hand stays with the coordinator.
func (c *Coordinator) DealerUpCard() *cards.Hand {
	return c.dealerUp.Snapshot()
}

// DealerFinal returns the dealer's resolved hand. It blocks until the
// dealer's draw loop has completed, and fails instead of hanging when the
// round aborts first.
func (c *Coordinator) DealerFinal(ctx context.Context) (*cards.Hand, error) {
	select {
	case <-c.dealerReady:
		return c.dealerFinal.Snapshot(), nil
	case <-c.aborted:
		return nil, ErrRoundAborted
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Run plays the round to completion. With zero seats it finishes
// immediately. The caller owns ctx; cancelling it aborts the round for
// every participant.
func (c *Coordinator) Run(ctx context.Context) error {
	if len(c.seats) == 0 {
		c.setPhase(PhaseDone)
		c.log.Info("nobody connected, round skipped", zap.String("round", c.ID))
		return nil
	}

	c.appendEvent(events.RoundStarted{RoundID: c.ID, Seats: len(c.seats), Decks: c.shoe.Decks()})
	for _, seat := range c.seats {
		c.appendEvent(events.SeatJoined{RoundID: c.ID, SeatID: seat.ID, Balance: seat.Balance})
	}
	c.log.Info("round started",
		zap.String("round", c.ID),
		zap.Int("seats", len(c.seats)),
		zap.Int("cards", c.shoe.Remaining()))

	// The dealer's up-card is drawn before any seat goroutine exists, so
	// this is the only moment the shoe is touched without coordination.
	up, err := c.shoe.Draw()
	if err != nil {
		c.abort("shoe exhausted before the deal")
		c.setPhase(PhaseDone)
		return err
	}
	c.dealer.Add(up)
	c.appendEvent(events.CardDealt{RoundID: c.ID, Rank: up})
	c.dealerUp = c.dealer.Snapshot()

	c.setPhase(PhaseBetting)
	var wg sync.WaitGroup
	for _, seat := range c.seats {
		wg.Add(1)
		go func(seat *Seat) {
			defer wg.Done()
			c.runSeat(ctx, seat)
		}(seat)
	}

	if err := c.playersDone.Await(ctx); err != nil {
		c.abort("a party failed to reach the all-players-done barrier")
		wg.Wait()
		c.setPhase(PhaseDone)
		return ErrRoundAborted
	}

	// Every seat is parked at the dealer-done barrier or beyond; the
	// coordinator is the exclusive shoe owner until dealerReady closes.
	c.setPhase(PhaseDealerTurn)
	for c.dealer.MustDealerDraw() {
		r, err := c.shoe.Draw()
		if err != nil {
			c.abort("shoe exhausted during dealer resolution")
			wg.Wait()
			c.setPhase(PhaseDone)
			return err
		}
		c.dealer.Add(r)
		c.appendEvent(events.CardDealt{RoundID: c.ID, Rank: r})
	}
	c.dealerFinal = c.dealer.Snapshot()
	close(c.dealerReady)
	c.appendEvent(events.DealerResolved{RoundID: c.ID, Cards: c.dealerFinal.Cards(), Score: c.dealerFinal.BestScore()})
	c.log.Info("dealer resolved", zap.String("round", c.ID), zap.String("hand", c.dealerFinal.String()))

	c.setPhase(PhaseSettling)
	wg.Wait()

	c.setPhase(PhaseDone)
	c.appendEvent(events.RoundEnded{RoundID: c.ID})
	c.log.Info("round ended", zap.String("round", c.ID))
	c.log.Debug("round summary", zap.String("state", litter.Sdump(c.summary())))
	return nil
}

func (c *Coordinator) runSeat(ctx context.Context, seat *Seat) {
	ss := &seatSession{c: c, seat: seat}
	out, err := ss.run(ctx)
	if err != nil {
		c.appendEvent(events.SeatLost{RoundID: c.ID, SeatID: seat.ID, Phase: string(seat.phase)})
		c.log.Warn("seat left the round",
			zap.String("round", c.ID),
			zap.String("seat", seat.ID),
			zap.String("phase", string(seat.phase)),
			zap.Error(err))
		_ = seat.Conn.Close()
		return
	}
	c.log.Info("seat settled",
		zap.String("round", c.ID),
		zap.String("seat", seat.ID),
		zap.String("result", string(out.Result)),
		zap.Int("net", out.Net),
		zap.Int("balance", seat.Balance))
}

// abort tears the round down. Every barrier is broken so current and future
// waiters fail fast instead of hanging, DealerFinal stops blocking, and seat
// connections are closed to unblock sessions parked in transport reads.
func (c *Coordinator) abort(reason string) {
	c.abortOnce.Do(func() {
		close(c.aborted)
		c.betsClosed.Break()
		c.playersDone.Break()
		c.dealerDone.Break()
		for _, seat := range c.seats {
			_ = seat.Conn.Close()
		}
		c.appendEvent(events.RoundAborted{RoundID: c.ID, Reason: reason})
		c.log.Warn("round aborted", zap.String("round", c.ID), zap.String("reason", reason))
	})
}

func (c *Coordinator) appendEvent(event events.Event) {
	if err := c.store.Append(event); err != nil {
		c.log.Warn("event not recorded", zap.String("round", c.ID), zap.Error(err))
	}
}

type seatSummary struct {
	SeatID  string
	Phase   Phase
	Hand    string
	Bet     int
	Balance int
}

type roundSummary struct {
	RoundID string
	Dealer  string
	Seats   []seatSummary
}

func (c *Coordinator) summary() roundSummary {
	s := roundSummary{RoundID: c.ID, Dealer: c.dealer.String()}
	for _, seat := range c.seats {
		s.Seats = append(s.Seats, seatSummary{
			SeatID:  seat.ID,
			Phase:   seat.phase,
			Hand:    seat.hand.String(),
			Bet:     seat.bet,
			Balance: seat.Balance,
		})
	}
	return s
}
