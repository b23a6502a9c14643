package round

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orkadesh/blackjacksrv/cards"
)

func TestSettle(t *testing.T) {
	tests := []struct {
		name       string
		player     []cards.Rank
		dealer     []cards.Rank
		bet        int
		wantResult Result
		wantNet    int
	}{
		{
			name:       "player blackjack pays three to two",
			player:     []cards.Rank{cards.Ace, cards.King},
			dealer:     []cards.Rank{cards.Ten, cards.Seven},
			bet:        10,
			wantResult: ResultPlayerBlackjack,
			wantNet:    15,
		},
		{
			name:       "blackjack payout rounds half up",
			player:     []cards.Rank{cards.Ace, cards.Queen},
			dealer:     []cards.Rank{cards.Ten, cards.Seven},
			bet:        5,
			wantResult: ResultPlayerBlackjack,
			wantNet:    8,
		},
		{
			name:       "player blackjack beats dealer blackjack",
			player:     []cards.Rank{cards.Ace, cards.King},
			dealer:     []cards.Rank{cards.Ace, cards.Ten},
			bet:        10,
			wantResult: ResultPlayerBlackjack,
			wantNet:    15,
		},
		{
			name:       "player bust loses even when dealer busts too",
			player:     []cards.Rank{cards.Ten, cards.Six, cards.Seven},
			dealer:     []cards.Rank{cards.Ten, cards.Six, cards.King},
			bet:        10,
			wantResult: ResultDealerWins,
			wantNet:    -10,
		},
		{
			name:       "dealer bust pays the bet",
			player:     []cards.Rank{cards.Ten, cards.Nine},
			dealer:     []cards.Rank{cards.Ten, cards.Six, cards.King},
			bet:        10,
			wantResult: ResultPlayerWins,
			wantNet:    10,
		},
		{
			name:       "higher total wins",
			player:     []cards.Rank{cards.Ten, cards.Nine},
			dealer:     []cards.Rank{cards.Ten, cards.Seven},
			bet:        10,
			wantResult: ResultPlayerWins,
			wantNet:    10,
		},
		{
			name:       "lower total loses",
			player:     []cards.Rank{cards.Ten, cards.Seven},
			dealer:     []cards.Rank{cards.Ten, cards.Nine},
			bet:        10,
			wantResult: ResultDealerWins,
			wantNet:    -10,
		},
		{
			name:       "equal totals push",
			player:     []cards.Rank{cards.Ten, cards.Eight},
			dealer:     []cards.Rank{cards.Nine, cards.Nine},
			bet:        10,
			wantResult: ResultPush,
			wantNet:    0,
		},
		{
			name:       "soft total counts at its best",
			player:     []cards.Rank{cards.Ace, cards.Nine},
			dealer:     []cards.Rank{cards.Ten, cards.Nine},
			bet:        10,
			wantResult: ResultPlayerWins,
			wantNet:    10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Settle(cards.NewHand(tt.player...), cards.NewHand(tt.dealer...), tt.bet)
			assert.Equal(t, tt.wantResult, out.Result)
			assert.Equal(t, tt.wantNet, out.Net)
		})
	}
}
