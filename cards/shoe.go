package cards

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

// ErrShoeEmpty is returned when a draw is attempted on an exhausted shoe.
// A properly sized shoe never runs dry mid-round, so callers treat this as a
// fatal invariant violation rather than an ordinary game event.
var ErrShoeEmpty = errors.New("shoe is empty")

// Shoe is a draw pile made of several concatenated decks. Draws are
// destructive: a drawn card is removed permanently. The internal lock makes
// single draws safe across goroutines; turn-level serialization between
// seats is the round coordinator's job.
type Shoe struct {
	mu    sync.Mutex
	cards Stack
	decks int
}

// NewShoe creates a shoe holding decks × 52 cards, optionally shuffled.
func NewShoe(decks int, shuffle bool) *Shoe {
	s := &Shoe{decks: decks}
	for d := 0; d < decks; d++ {
		for suit := 0; suit < 4; suit++ {
			s.cards = append(s.cards, Ranks...)
		}
	}
	if shuffle {
		s.Shuffle()
	}
	return s
}

// Shuffle randomizes the order of the remaining cards.
func (s *Shoe) Shuffle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	r.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
}

// Draw removes and returns the top card.
func (s *Shoe) Draw() (Rank, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cards) == 0 {
		return "", ErrShoeEmpty
	}
	top := s.cards[0]
	s.cards = s.cards[1:]
	return top, nil
}

// Remaining reports how many cards are left in the shoe.
func (s *Shoe) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cards)
}

// Decks returns the number of decks the shoe was built from.
func (s *Shoe) Decks() int {
	return s.decks
}
