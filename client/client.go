// Package client implements the interactive terminal player. It connects
// to the blackjack server, renders whatever the server sends, and prompts
// the user whenever the server asks for input.
package client

import (
	"bufio"
	"errors"
	"io"
	"net"

	"github.com/pterm/pterm"

	"github.com/orkadesh/blackjacksrv/wire"
)

// Client drives one seat's terminal session.
type Client struct {
	conn net.Conn
	r    *bufio.Reader
}

// Dial connects to the server at addr.
func Dial(addr string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, r: bufio.NewReader(conn)}, nil
}

// Run processes frames until the server says goodbye. The mode of each
// frame decides what happens: display, prompt-and-reply, or disconnect.
func (c *Client) Run() error {
	defer c.conn.Close()

	for {
		frame, err := wire.ReadFrame(c.r)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				pterm.Warning.Println("Server closed the connection.")
				return nil
			}
			return err
		}

		switch frame.Mode {
		case wire.ModeReceive:
			for _, line := range frame.Lines {
				pterm.Println(line)
			}

		case wire.ModeSendToServer:
			reply, err := pterm.DefaultInteractiveTextInput.Show(frame.Payload())
			if err != nil {
				return err
			}
			if _, err := c.conn.Write([]byte(wire.Encode(wire.ModeSendToServer, reply))); err != nil {
				return err
			}

		case wire.ModeDisconnect:
			for _, line := range frame.Lines {
				pterm.Println(line)
			}
			return nil
		}
	}
}

// Close tears the connection down.
func (c *Client) Close() error {
	return c.conn.Close()
}
