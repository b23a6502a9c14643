package cards

import (
	"fmt"
	"strings"
)

const (
	// DealerStand is the total at which the dealer stops drawing.
	DealerStand = 17
	// BustLimit is the total above which a hand is busted.
	BustLimit = 21
)

// Stack represents an ordered sequence of cards.
type Stack []Rank

// Hand holds the cards one party has drawn this round. A hand is owned by a
// single goroutine; cross-goroutine reads go through Snapshot.
type Hand struct {
	cards Stack
}

// NewHand creates a hand holding the given initial cards.
func NewHand(ranks ...Rank) *Hand {
	h := &Hand{}
	h.cards = append(h.cards, ranks...)
	return h
}

// Add puts a card into the hand.
func (h *Hand) Add(r Rank) {
	h.cards = append(h.cards, r)
}

// DrawFrom moves the top card of the shoe into the hand.
func (h *Hand) DrawFrom(shoe *Shoe) error {
	r, err := shoe.Draw()
	if err != nil {
		return err
	}
	h.cards = append(h.cards, r)
	return nil
}

// DrawFromN moves count cards from the shoe into the hand.
func (h *Hand) DrawFromN(shoe *Shoe, count int) error {
	for i := 0; i < count; i++ {
		if err := h.DrawFrom(shoe); err != nil {
			return err
		}
	}
	return nil
}

// Cards returns a copy of the cards in the hand.
func (h *Hand) Cards() Stack {
	out := make(Stack, len(h.cards))
	copy(out, h.cards)
	return out
}

// Size returns the number of cards in the hand.
func (h *Hand) Size() int {
	return len(h.cards)
}

// Clear removes every card from the hand.
func (h *Hand) Clear() {
	h.cards = h.cards[:0]
}

// Snapshot returns an independent copy of the hand, safe to hand to another
// goroutine while the original keeps changing.
func (h *Hand) Snapshot() *Hand {
	return NewHand(h.cards...)
}

// Scores computes the totals the hand can stand for. Without aces there is a
// single total. With aces the result is (low, high): low counts every ace as
// 1; high is low+10 when that stays at or under 21. When even one promoted
// ace would bust, every ace is reported at 11 instead; such a hand is already
// busted on its low total, so the inflated high is never a playable score.
func (h *Hand) Scores() []int {
	sum := 0
	aces := 0
	for _, r := range h.cards {
		if r == Ace {
			aces++
		} else {
			sum += r.Value()
		}
	}
	if aces == 0 {
		return []int{sum}
	}
	low := sum + aces
	high := low + 10
	if low+10 > BustLimit {
		high = low + 10*aces
	}
	return []int{low, high}
}

// BestScore returns the highest total that does not bust, or the low total
// when every alternative busts.
func (h *Hand) BestScore() int {
	scores := h.Scores()
	if len(scores) == 1 {
		return scores[0]
	}
	if scores[1] > BustLimit {
		return scores[0]
	}
	return scores[1]
}

// IsBusted reports whether the hand exceeds 21 even with every ace as 1.
func (h *Hand) IsBusted() bool {
	return h.Scores()[0] > BustLimit
}

// IsBlackjack reports whether the hand is a natural: exactly two cards, one
// ace and one ten-valued card, in either order.
func (h *Hand) IsBlackjack() bool {
	if len(h.cards) != 2 {
		return false
	}
	a, b := h.cards[0], h.cards[1]
	return (a == Ace && b.IsTenValued()) || (b == Ace && a.IsTenValued())
}

// MustDealerDraw reports whether the dealer has to take another card. The
// dealer stands as soon as the best non-busting total reaches 17, soft or
// hard alike.
func (h *Hand) MustDealerDraw() bool {
	return h.BestScore() < DealerStand
}

// ScoresString formats the totals as "n" or "low/high".
func (h *Hand) ScoresString() string {
	scores := h.Scores()
	if len(scores) == 1 {
		return fmt.Sprintf("%d", scores[0])
	}
	return fmt.Sprintf("%d/%d", scores[0], scores[1])
}

// String renders the cards followed by the totals in square brackets,
// e.g. "A K [11/21]".
func (h *Hand) String() string {
	var sb strings.Builder
	for _, r := range h.cards {
		sb.WriteString(r.String())
		sb.WriteString(" ")
	}
	sb.WriteString("[")
	sb.WriteString(h.ScoresString())
	sb.WriteString("]")
	return sb.String()
}
