package round

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/orkadesh/blackjacksrv/cards"
	"github.com/orkadesh/blackjacksrv/events"
	"github.com/orkadesh/blackjacksrv/wire"
)

// ErrSeatGone marks transport failures on a seat connection. The seat's
// round is over but the round itself carries on without it.
var ErrSeatGone = errors.New("seat connection lost")

func seatErr(err error) error {
	return fmt.Errorf("%w: %v", ErrSeatGone, err)
}

// SeatConn is the transport side of a seat: a duplex framed byte stream.
// Implementations live at the server edge (TCP, websocket); the round only
// ever sees this interface.
type SeatConn interface {
	SendFramed(mode wire.Mode, lines ...string) error
	ReceiveFramed() (string, error)
	Close() error
}

// Seat is one connected player's record. The money balance outlives a
// single round for the lifetime of the connection; hand, bet and phase are
// per-round state. A seat is owned by exactly one session goroutine.
type Seat struct {
	ID      string
	Conn    SeatConn
	Balance int

	hand  *cards.Hand
	bet   int
	phase Phase
}

// NewSeat creates a seat for an accepted connection.
func NewSeat(conn SeatConn, balance int) *Seat {
	return &Seat{
		ID:      uuid.NewString(),
		Conn:    conn,
		Balance: balance,
		hand:    cards.NewHand(),
		phase:   PhaseRegistering,
	}
}

// Hand returns the seat's hand.
func (s *Seat) Hand() *cards.Hand { return s.hand }

// Bet returns the seat's current bet.
func (s *Seat) Bet() int { return s.bet }

// Phase returns the seat's round progress marker.
func (s *Seat) Phase() Phase { return s.phase }

// seatSession drives one seat through a coordinated round and tracks which
// synchronization obligations are still outstanding.
type seatSession struct {
	c    *Coordinator
	seat *Seat

	betsPassed    bool
	permitHeld    bool
	playersPassed bool
	dealerPassed  bool
}

// discharge satisfies every barrier and permit obligation the seat has not
// yet met: the permit is released and each remaining barrier is arrived at
// on the dead seat's behalf. It runs on every exit path out of run, so a
// seat that vanishes mid-round can never strand the other parties.
func (ss *seatSession) discharge(ctx context.Context) {
	if ss.permitHeld {
		ss.c.turn.Release()
		ss.permitHeld = false
	}
	if !ss.betsPassed {
		ss.betsPassed = true
		_ = ss.c.betsClosed.Await(ctx)
	}
	if !ss.playersPassed {
		ss.playersPassed = true
		_ = ss.c.playersDone.Await(ctx)
	}
	if !ss.dealerPassed {
		ss.dealerPassed = true
		_ = ss.c.dealerDone.Await(ctx)
	}
}

// run plays the seat's whole round: bet, initial deal, turn, settlement.
func (ss *seatSession) run(ctx context.Context) (Outcome, error) {
	defer ss.discharge(ctx)

	c, seat := ss.c, ss.seat
	conn := seat.Conn

	seat.phase = PhaseBetting
	greet := fmt.Sprintf("%s Our minimal bet is %d$.", greeting, c.rules.MinimumBet)
	if err := conn.SendFramed(wire.ModeReceive, greet, fmt.Sprintf("Your money: %d", seat.Balance)); err != nil {
		return Outcome{}, seatErr(err)
	}

	bet, err := collectBet(conn, c.rules.MinimumBet)
	if err != nil {
		return Outcome{}, err
	}
	seat.bet = bet
	c.appendEvent(events.BetPlaced{RoundID: c.ID, SeatID: seat.ID, Amount: bet})
	if err := conn.SendFramed(wire.ModeReceive, fmt.Sprintf("Player's bet: %d", bet), "Waiting for bets from other players..."); err != nil {
		return Outcome{}, seatErr(err)
	}

	err = c.betsClosed.Await(ctx)
	ss.betsPassed = true
	if err != nil {
		return Outcome{}, err
	}

	seat.phase = PhaseDealing
	seat.hand.Clear()
	for i := 0; i < 2; i++ {
		r, err := c.shoe.Draw()
		if err != nil {
			c.abort("shoe exhausted during the deal")
			return Outcome{}, err
		}
		seat.hand.Add(r)
		c.appendEvent(events.CardDealt{RoundID: c.ID, SeatID: seat.ID, Rank: r})
	}

	dealerUp := c.DealerUpCard()
	if err := conn.SendFramed(wire.ModeReceive, fmt.Sprintf("Players in game: %d", len(c.seats))); err != nil {
		return Outcome{}, seatErr(err)
	}
	if err := sendTable(conn, dealerUp, seat.hand); err != nil {
		return Outcome{}, err
	}
	if err := conn.SendFramed(wire.ModeReceive, fmt.Sprintf("Your money:     %d", seat.Balance), "Please wait your turn..."); err != nil {
		return Outcome{}, seatErr(err)
	}

	seat.phase = PhaseSeatTurns
	if err := c.turn.Acquire(ctx); err != nil {
		return Outcome{}, err
	}
	ss.permitHeld = true

	if err := conn.SendFramed(wire.ModeReceive, "Now is your turn."); err != nil {
		return Outcome{}, seatErr(err)
	}
	reason, err := playTurn(conn, seat.hand, dealerUp, c.shoe, &seat.bet)
	if err != nil {
		if errors.Is(err, cards.ErrShoeEmpty) {
			c.abort("shoe exhausted during seat turns")
		}
		return Outcome{}, err
	}
	c.turn.Release()
	ss.permitHeld = false
	c.appendEvent(events.TurnEnded{RoundID: c.ID, SeatID: seat.ID, Reason: reason, Score: seat.hand.BestScore()})

	if err := conn.SendFramed(wire.ModeReceive, "Waiting for other players..."); err != nil {
		return Outcome{}, seatErr(err)
	}
	err = c.playersDone.Await(ctx)
	ss.playersPassed = true
	if err != nil {
		return Outcome{}, err
	}

	if err := conn.SendFramed(wire.ModeReceive, "Other players are done with their cards.", "Dealer retrieves cards..."); err != nil {
		return Outcome{}, seatErr(err)
	}
	err = c.dealerDone.Await(ctx)
	ss.dealerPassed = true
	if err != nil {
		return Outcome{}, err
	}

	seat.phase = PhaseSettling
	dealerFinal, err := c.DealerFinal(ctx)
	if err != nil {
		return Outcome{}, err
	}
	out := Settle(seat.hand, dealerFinal, seat.bet)
	seat.Balance += out.Net
	c.appendEvent(events.SeatSettled{
		RoundID: c.ID,
		SeatID:  seat.ID,
		Result:  string(out.Result),
		Net:     out.Net,
		Balance: seat.Balance,
	})

	// The money has already moved; reporting back is best effort.
	_ = sendTable(conn, dealerFinal, seat.hand)
	_ = conn.SendFramed(wire.ModeReceive, out.announcement(), fmt.Sprintf("Net: %d", out.Net))
	_ = conn.SendFramed(wire.ModeReceive, fmt.Sprintf("Your money: %d", seat.Balance))
	_ = conn.SendFramed(wire.ModeDisconnect, fmt.Sprintf("Your results: %d", out.Net), "Goodbye.")

	seat.phase = PhaseDone
	return out, nil
}
