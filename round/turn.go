package round

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/orkadesh/blackjacksrv/cards"
	"github.com/orkadesh/blackjacksrv/wire"
)

// Table talk sent to every seat. The client renders these verbatim.
const (
	greeting          = "Hello. You are going to play blackjack."
	actionInstruction = "Type h for HIT, s for STAND and d for DOUBLE."
	betProposal       = "Please, type your bet: "
	betRetry          = "Please, type one positive integer number, equal or bigger than minimal bet"
)

// Reasons a seat's turn ends.
const (
	TurnStand     = "stand"
	TurnDouble    = "double"
	TurnBust      = "bust"
	TurnBlackjack = "blackjack"
)

// collectBet prompts until the seat submits a numeric bet at or above the
// table minimum. Malformed input is re-prompted, never fatal; only a lost
// connection ends the attempt.
func collectBet(conn SeatConn, minimumBet int) (int, error) {
	for {
		prompt := fmt.Sprintf("%s; Minimal bet is %d$.", betProposal, minimumBet)
		if err := conn.SendFramed(wire.ModeSendToServer, prompt); err != nil {
			return 0, seatErr(err)
		}
		raw, err := conn.ReceiveFramed()
		if err != nil {
			return 0, seatErr(err)
		}
		bet, err := strconv.Atoi(strings.TrimSpace(raw))
		if err == nil && bet >= minimumBet {
			return bet, nil
		}
		if err := conn.SendFramed(wire.ModeReceive, betRetry); err != nil {
			return 0, seatErr(err)
		}
	}
}

// playTurn runs the hit/stand/double loop for one hand and returns the
// reason the turn ended. A natural blackjack skips the loop entirely. Double
// doubles the bet, draws exactly one card and ends the turn. Busting ends
// the turn regardless of the decision that caused it. Unrecognized or empty
// decisions are re-prompted.
func playTurn(conn SeatConn, hand *cards.Hand, dealerView *cards.Hand, shoe *cards.Shoe, bet *int) (string, error) {
	if hand.IsBlackjack() {
		return TurnBlackjack, nil
	}

	reason := ""
	for reason == "" {
		if err := conn.SendFramed(wire.ModeSendToServer, actionInstruction); err != nil {
			return "", seatErr(err)
		}
		raw, err := conn.ReceiveFramed()
		if err != nil {
			return "", seatErr(err)
		}
		if raw == "" {
			continue
		}
		switch raw[0] {
		case 'h', 'H':
			if err := hand.DrawFrom(shoe); err != nil {
				return "", err
			}
		case 'd', 'D':
			*bet *= 2
			if err := hand.DrawFrom(shoe); err != nil {
				return "", err
			}
			reason = TurnDouble
		case 's', 'S':
			reason = TurnStand
		default:
			continue
		}
		if hand.IsBusted() {
			reason = TurnBust
		}
		if err := sendTable(conn, dealerView, hand); err != nil {
			return "", err
		}
	}
	return reason, nil
}

// sendTable shows the seat both hands as they currently stand.
func sendTable(conn SeatConn, dealer, player *cards.Hand) error {
	if err := conn.SendFramed(wire.ModeReceive, "Dealer's cards: "+dealer.String()); err != nil {
		return seatErr(err)
	}
	if err := conn.SendFramed(wire.ModeReceive, "Player's cards: "+player.String()); err != nil {
		return seatErr(err)
	}
	return nil
}
