package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orkadesh/blackjacksrv/wire"
)

type nopConn struct {
	closed bool
}

func (n *nopConn) SendFramed(wire.Mode, ...string) error { return nil }
func (n *nopConn) ReceiveFramed() (string, error)        { return "", nil }
func (n *nopConn) Close() error                          { n.closed = true; return nil }

func TestManagerTracksSeats(t *testing.T) {
	mgr := NewManager()
	assert.Equal(t, 0, mgr.Count())

	mgr.Add("seat-1", &nopConn{})
	mgr.Add("seat-2", &nopConn{})
	assert.Equal(t, 2, mgr.Count())

	mgr.Remove("seat-1")
	assert.Equal(t, 1, mgr.Count())

	mgr.Remove("seat-1")
	assert.Equal(t, 1, mgr.Count())
}

func TestManagerCloseAll(t *testing.T) {
	mgr := NewManager()
	first := &nopConn{}
	second := &nopConn{}
	mgr.Add("seat-1", first)
	mgr.Add("seat-2", second)

	mgr.CloseAll()

	assert.Equal(t, 0, mgr.Count())
	assert.True(t, first.closed)
	assert.True(t, second.closed)
}
