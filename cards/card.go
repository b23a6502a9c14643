package cards

import "fmt"

// Rank represents a card rank. Blackjack scoring never distinguishes suits,
// so a card is fully described by its rank.
type Rank string

const (
	Ace   Rank = "A"
	King  Rank = "K"
	Queen Rank = "Q"
	Jack  Rank = "J"
	Ten   Rank = "10"
	Nine  Rank = "9"
	Eight Rank = "8"
	Seven Rank = "7"
	Six   Rank = "6"
	Five  Rank = "5"
	Four  Rank = "4"
	Three Rank = "3"
	Two   Rank = "2"
)

// Ranks lists the 13 ranks composing one suit of a standard deck.
var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// RankFromString parses a rank from its string form, e.g. "A" or "10".
func RankFromString(s string) (Rank, error) {
	switch Rank(s) {
	case Ace, King, Queen, Jack, Ten, Nine, Eight, Seven, Six, Five, Four, Three, Two:
		return Rank(s), nil
	}
	return "", fmt.Errorf("invalid card rank: %s", s)
}

// Value returns the blackjack value of the rank. Aces count as 1 here;
// promoting an ace to 11 is a hand-level concern, see Hand.Scores.
func (r Rank) Value() int {
	switch r {
	case Ace:
		return 1
	case King, Queen, Jack, Ten:
		return 10
	case Nine:
		return 9
	case Eight:
		return 8
	case Seven:
		return 7
	case Six:
		return 6
	case Five:
		return 5
	case Four:
		return 4
	case Three:
		return 3
	case Two:
		return 2
	}
	return 0
}

// IsTenValued reports whether the rank counts as ten (10, J, Q, K).
func (r Rank) IsTenValued() bool {
	return r.Value() == 10
}

// String returns the string representation of the rank.
func (r Rank) String() string {
	return string(r)
}
