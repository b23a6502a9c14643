package events

import "github.com/orkadesh/blackjacksrv/cards"

// RoundStarted is recorded when a coordinator begins a round.
type RoundStarted struct {
	RoundID string
	Seats   int
	Decks   int
}

func (e RoundStarted) EventName() string { return "round_started" }

// SeatJoined is recorded when a connection is accepted into a round.
type SeatJoined struct {
	RoundID string
	SeatID  string
	Balance int
}

func (e SeatJoined) EventName() string { return "seat_joined" }

// BetPlaced is recorded when a seat submits a valid bet.
type BetPlaced struct {
	RoundID string
	SeatID  string
	Amount  int
}

func (e BetPlaced) EventName() string { return "bet_placed" }

// CardDealt is recorded for every card leaving the shoe. SeatID is empty for
// cards going to the dealer.
type CardDealt struct {
	RoundID string
	SeatID  string
	Rank    cards.Rank
}

func (e CardDealt) EventName() string { return "card_dealt" }

// TurnEnded is recorded when a seat finishes its hit/stand/double loop.
// Reason is one of "stand", "double", "bust", "blackjack".
type TurnEnded struct {
	RoundID string
	SeatID  string
	Reason  string
	Score   int
}

func (e TurnEnded) EventName() string { return "turn_ended" }

// DealerResolved is recorded when the dealer's draw loop completes.
type DealerResolved struct {
	RoundID string
	Cards   cards.Stack
	Score   int
}

func (e DealerResolved) EventName() string { return "dealer_resolved" }

// SeatSettled is recorded when a seat computes its result.
type SeatSettled struct {
	RoundID string
	SeatID  string
	Result  string
	Net     int
	Balance int
}

func (e SeatSettled) EventName() string { return "seat_settled" }

// SeatLost is recorded when a seat's connection drops mid-round.
type SeatLost struct {
	RoundID string
	SeatID  string
	Phase   string
}

func (e SeatLost) EventName() string { return "seat_lost" }

// RoundEnded is recorded when a round runs to completion.
type RoundEnded struct {
	RoundID string
}

func (e RoundEnded) EventName() string { return "round_ended" }

// RoundAborted is recorded when a round is torn down before completion.
type RoundAborted struct {
	RoundID string
	Reason  string
}

func (e RoundAborted) EventName() string { return "round_aborted" }
