package round

// Phase identifies where a round stands in its lifecycle.
type Phase string

const (
	PhaseRegistering Phase = "registering"
	PhaseBetting     Phase = "betting"
	PhaseDealing     Phase = "dealing"
	PhaseSeatTurns   Phase = "seat_turns"
	PhaseDealerTurn  Phase = "dealer_turn"
	PhaseSettling    Phase = "settling"
	PhaseDone        Phase = "done"
)

// Rules defines the table parameters for a round.
type Rules struct {
	Decks           int
	MinimumBet      int
	StartingBalance int
}

// DefaultRules returns the standard casino table: a six-deck shoe, a one
// dollar minimum and a hundred dollars to start with.
func DefaultRules() Rules {
	return Rules{Decks: 6, MinimumBet: 1, StartingBalance: 100}
}
