package round

import (
	"math"

	"github.com/orkadesh/blackjacksrv/cards"
)

// Result classifies a settled seat.
type Result string

const (
	ResultPlayerBlackjack Result = "player_blackjack"
	ResultPlayerWins      Result = "player_wins"
	ResultDealerWins      Result = "dealer_wins"
	ResultPush            Result = "push"
)

// Outcome is a settled seat's result and net money movement.
type Outcome struct {
	Result Result
	Net    int
}

// Settle computes a seat's result against the frozen dealer hand. A natural
// pays 3:2, rounded half up, and is checked before anything else; a dealer
// natural is not special-cased, so dueling naturals still pay the player.
func Settle(player, dealer *cards.Hand, bet int) Outcome {
	switch {
	case player.IsBlackjack():
		return Outcome{ResultPlayerBlackjack, int(math.Round(1.5 * float64(bet)))}
	case player.IsBusted():
		return Outcome{ResultDealerWins, -bet}
	case dealer.IsBusted():
		return Outcome{ResultPlayerWins, bet}
	}

	playerScore, dealerScore := player.BestScore(), dealer.BestScore()
	switch {
	case playerScore > dealerScore:
		return Outcome{ResultPlayerWins, bet}
	case playerScore < dealerScore:
		return Outcome{ResultDealerWins, -bet}
	default:
		return Outcome{ResultPush, 0}
	}
}

// announcement is the line shown to the player for this outcome.
func (o Outcome) announcement() string {
	switch o.Result {
	case ResultPlayerBlackjack:
		return "Blackjack! Player wins."
	case ResultPlayerWins:
		return "Player wins."
	case ResultDealerWins:
		return "Dealer wins."
	default:
		return "Stay."
	}
}
