package round

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orkadesh/blackjacksrv/cards"
	"github.com/orkadesh/blackjacksrv/events"
	"github.com/orkadesh/blackjacksrv/wire"
)

// SoloGame is the single-seat variant: the same hand rules, bets and table
// talk with no round-wide synchronization. The seat plays round after round
// against a dealer resolved inline, until it declines another one.
type SoloGame struct {
	rules Rules
	store events.EventStore
	log   *zap.Logger
}

// NewSoloGame creates a single-seat game with the given table rules.
func NewSoloGame(rules Rules, store events.EventStore, log *zap.Logger) *SoloGame {
	return &SoloGame{rules: rules, store: store, log: log}
}

// Play drives one seat through as many rounds as it wants.
func (g *SoloGame) Play(ctx context.Context, seat *Seat) error {
	conn := seat.Conn
	initial := seat.Balance

	greet := fmt.Sprintf("%s Our minimal bet is %d$.", greeting, g.rules.MinimumBet)
	if err := conn.SendFramed(wire.ModeReceive, greet, fmt.Sprintf("Your money: %d", seat.Balance)); err != nil {
		return seatErr(err)
	}

	shoe := cards.NewShoe(g.rules.Decks, true)
	dealer := cards.NewHand()

	for ctx.Err() == nil {
		roundID := uuid.NewString()
		g.appendEvent(events.RoundStarted{RoundID: roundID, Seats: 1, Decks: shoe.Decks()})
		g.appendEvent(events.SeatJoined{RoundID: roundID, SeatID: seat.ID, Balance: seat.Balance})

		bet, err := collectBet(conn, g.rules.MinimumBet)
		if err != nil {
			return err
		}
		seat.bet = bet
		g.appendEvent(events.BetPlaced{RoundID: roundID, SeatID: seat.ID, Amount: bet})
		if err := conn.SendFramed(wire.ModeReceive, fmt.Sprintf("Player's bet: %d", bet)); err != nil {
			return seatErr(err)
		}

		shoe.Shuffle()
		dealer.Clear()
		if err := dealer.DrawFrom(shoe); err != nil {
			return err
		}
		seat.hand.Clear()
		if err := seat.hand.DrawFromN(shoe, 2); err != nil {
			return err
		}
		if err := sendTable(conn, dealer, seat.hand); err != nil {
			return err
		}
		if err := conn.SendFramed(wire.ModeReceive, fmt.Sprintf("Your money:     %d", seat.Balance)); err != nil {
			return seatErr(err)
		}

		reason, err := playTurn(conn, seat.hand, dealer, shoe, &seat.bet)
		if err != nil {
			return err
		}

		// With a natural the dealer never draws; the round is decided.
		if reason != TurnBlackjack {
			if err := conn.SendFramed(wire.ModeReceive, "Dealer retrieves cards..."); err != nil {
				return seatErr(err)
			}
			for dealer.MustDealerDraw() {
				if err := dealer.DrawFrom(shoe); err != nil {
					return err
				}
			}
			if err := sendTable(conn, dealer, seat.hand); err != nil {
				return err
			}
		}

		out := Settle(seat.hand, dealer, seat.bet)
		seat.Balance += out.Net
		g.appendEvent(events.SeatSettled{
			RoundID: roundID,
			SeatID:  seat.ID,
			Result:  string(out.Result),
			Net:     out.Net,
			Balance: seat.Balance,
		})
		g.appendEvent(events.RoundEnded{RoundID: roundID})

		if err := conn.SendFramed(wire.ModeReceive, out.announcement(), fmt.Sprintf("Net: %d", out.Net)); err != nil {
			return seatErr(err)
		}
		if err := conn.SendFramed(wire.ModeReceive, fmt.Sprintf("Your money: %d", seat.Balance)); err != nil {
			return seatErr(err)
		}

		if err := conn.SendFramed(wire.ModeSendToServer, "Want to play another round? (y/n)"); err != nil {
			return seatErr(err)
		}
		raw, err := conn.ReceiveFramed()
		if err != nil {
			return seatErr(err)
		}
		if raw == "" || (raw[0] != 'y' && raw[0] != 'Y') {
			break
		}
	}

	_ = conn.SendFramed(wire.ModeDisconnect, fmt.Sprintf("Your results: %d", seat.Balance-initial), "Goodbye.")
	return ctx.Err()
}

func (g *SoloGame) appendEvent(event events.Event) {
	if err := g.store.Append(event); err != nil {
		g.log.Warn("event not recorded", zap.Error(err))
	}
}
