package round

import (
	"io"
	"strings"
	"sync"

	"github.com/orkadesh/blackjacksrv/wire"
)

// scriptedConn is an in-memory SeatConn whose replies come from a fixed
// script. An exhausted script or a closed connection reads like a dropped
// client.
type scriptedConn struct {
	mu      sync.Mutex
	replies []string
	sent    []wire.Frame
	closed  bool
}

func newScriptedConn(replies ...string) *scriptedConn {
	return &scriptedConn{replies: replies}
}

func (c *scriptedConn) SendFramed(mode wire.Mode, lines ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return io.ErrClosedPipe
	}
	c.sent = append(c.sent, wire.Frame{Mode: mode, Lines: lines})
	return nil
}

func (c *scriptedConn) ReceiveFramed() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || len(c.replies) == 0 {
		return "", io.EOF
	}
	reply := c.replies[0]
	c.replies = c.replies[1:]
	return reply, nil
}

func (c *scriptedConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *scriptedConn) receivedLines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for _, f := range c.sent {
		out = append(out, f.Lines...)
	}
	return out
}

func (c *scriptedConn) gotDisconnect() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, f := range c.sent {
		if f.Mode == wire.ModeDisconnect {
			return true
		}
	}
	return false
}

// lastDealerLine returns the final dealer hand shown to this seat.
func (c *scriptedConn) lastDealerLine() string {
	last := ""
	for _, line := range c.receivedLines() {
		if strings.HasPrefix(line, "Dealer's cards: ") {
			last = line
		}
	}
	return last
}

func (c *scriptedConn) countLine(want string) int {
	n := 0
	for _, line := range c.receivedLines() {
		if line == want {
			n++
		}
	}
	return n
}

// promptConn answers based on the prompt it was just sent, which keeps
// scripts stable when a natural blackjack skips the decision loop.
type promptConn struct {
	scriptedConn
	bet      string
	decision string
	again    []string
}

func (c *promptConn) ReceiveFramed() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return "", io.EOF
	}
	var prompt string
	for i := len(c.sent) - 1; i >= 0; i-- {
		if c.sent[i].Mode == wire.ModeSendToServer {
			prompt = strings.Join(c.sent[i].Lines, "\n")
			break
		}
	}
	switch {
	case strings.Contains(prompt, "bet"):
		return c.bet, nil
	case strings.Contains(prompt, "another round"):
		if len(c.again) == 0 {
			return "n", nil
		}
		reply := c.again[0]
		c.again = c.again[1:]
		return reply, nil
	default:
		return c.decision, nil
	}
}

// blockingConn hangs in ReceiveFramed until the connection is closed, like
// a client that connected and then went silent.
type blockingConn struct {
	scriptedConn
	closedCh  chan struct{}
	closeOnce sync.Once
}

func newBlockingConn() *blockingConn {
	return &blockingConn{closedCh: make(chan struct{})}
}

func (c *blockingConn) ReceiveFramed() (string, error) {
	<-c.closedCh
	return "", io.ErrClosedPipe
}

func (c *blockingConn) Close() error {
	c.closeOnce.Do(func() { close(c.closedCh) })
	return c.scriptedConn.Close()
}
