package round

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/orkadesh/blackjacksrv/events"
)

func TestSoloGameSingleRound(t *testing.T) {
	conn := &promptConn{bet: "10", decision: "s"}
	seat := NewSeat(conn, 100)
	store := events.NewInMemoryEventStore()
	game := NewSoloGame(testRules(), store, zap.NewNop())

	require.NoError(t, game.Play(context.Background(), seat))
	assert.True(t, conn.gotDisconnect())

	// One settled round on record.
	settled := 0
	for _, e := range store.GetEvents() {
		if e.EventName() == "seat_settled" {
			settled++
		}
	}
	assert.Equal(t, 1, settled)
}

func TestSoloGamePlaysAgainOnYes(t *testing.T) {
	conn := &promptConn{bet: "10", decision: "s", again: []string{"y"}}
	seat := NewSeat(conn, 100)
	store := events.NewInMemoryEventStore()
	game := NewSoloGame(testRules(), store, zap.NewNop())

	require.NoError(t, game.Play(context.Background(), seat))

	rounds := 0
	for _, e := range store.GetEvents() {
		if e.EventName() == "round_ended" {
			rounds++
		}
	}
	assert.Equal(t, 2, rounds)
}

func TestSoloGameDisconnectMidBet(t *testing.T) {
	conn := newScriptedConn()
	seat := NewSeat(conn, 100)
	game := NewSoloGame(testRules(), events.NewInMemoryEventStore(), zap.NewNop())

	err := game.Play(context.Background(), seat)
	assert.ErrorIs(t, err, ErrSeatGone)
}

func TestSoloGameBalancePersistsAcrossRounds(t *testing.T) {
	conn := &promptConn{bet: "10", decision: "s", again: []string{"y"}}
	seat := NewSeat(conn, 100)
	store := events.NewInMemoryEventStore()
	game := NewSoloGame(testRules(), store, zap.NewNop())

	require.NoError(t, game.Play(context.Background(), seat))

	// The final balance is the starting stack plus every recorded net.
	total := 100
	for _, e := range store.GetEvents() {
		if settled, ok := e.(events.SeatSettled); ok {
			total += settled.Net
		}
	}
	assert.Equal(t, total, seat.Balance)
}
