package server

import (
	"bufio"
	"net"
	"sync"

	"github.com/orkadesh/blackjacksrv/wire"
)

// Conn adapts a TCP connection to the round.SeatConn interface using the
// wire framing.
type Conn struct {
	mu sync.Mutex
	c  net.Conn
	r  *bufio.Reader
	w  *bufio.Writer
}

// NewConn wraps an accepted network connection.
func NewConn(c net.Conn) *Conn {
	return &Conn{
		c: c,
		r: bufio.NewReader(c),
		w: bufio.NewWriter(c),
	}
}

// SendFramed writes one frame and flushes it.
func (c *Conn) SendFramed(mode wire.Mode, lines ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.w.WriteString(wire.Encode(mode, lines...)); err != nil {
		return err
	}
	return c.w.Flush()
}

// ReceiveFramed reads one frame and returns its payload. The error is the
// transport's own on disconnect (io.EOF, net.ErrClosed).
func (c *Conn) ReceiveFramed() (string, error) {
	frame, err := wire.ReadFrame(c.r)
	if err != nil {
		return "", err
	}
	return frame.Payload(), nil
}

// Close closes the underlying connection. It is safe to call more than
// once; a blocked ReceiveFramed returns as soon as the first close lands.
func (c *Conn) Close() error {
	return c.c.Close()
}

// RemoteAddr reports the peer address, for logs.
func (c *Conn) RemoteAddr() string {
	return c.c.RemoteAddr().String()
}
