// Package wire implements the framed line protocol spoken between the
// blackjack server and its clients. A frame is
//
//	MODE '$' payload ('\n' payload)* '#'
//
// where MODE tells the receiving client what to do next: display the
// payload, prompt the user and reply, or disconnect.
package wire

import (
	"bufio"
	"fmt"
	"strings"
)

// Mode instructs the remote end how to treat a frame.
type Mode string

const (
	ModeReceive      Mode = "CLIENT_RECEIVE"
	ModeSendToServer Mode = "CLIENT_SEND_TO_SERVER"
	ModeDisconnect   Mode = "CLIENT_DISCONNECT"
)

const (
	// Terminator marks the end of a frame on the wire.
	Terminator = '#'
	// Divider separates the mode from the payload.
	Divider = '$'
)

// Frame is one decoded protocol message.
type Frame struct {
	Mode  Mode
	Lines []string
}

// Payload joins the frame's lines back into a single string.
func (f Frame) Payload() string {
	return strings.Join(f.Lines, "\n")
}

// Encode renders a frame ready to be written to the wire.
func Encode(mode Mode, lines ...string) string {
	var sb strings.Builder
	sb.WriteString(string(mode))
	sb.WriteByte(Divider)
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line)
	}
	sb.WriteByte(Terminator)
	return sb.String()
}

// ReadFrame reads bytes up to the terminator and decodes them. The error is
// the reader's own (io.EOF on a clean disconnect).
func ReadFrame(r *bufio.Reader) (Frame, error) {
	raw, err := r.ReadString(Terminator)
	if err != nil {
		return Frame{}, err
	}
	return Decode(strings.TrimSuffix(raw, string(Terminator)))
}

// Decode parses a frame body (terminator already stripped).
func Decode(raw string) (Frame, error) {
	idx := strings.IndexByte(raw, Divider)
	if idx < 0 {
		return Frame{}, fmt.Errorf("malformed frame, no divider: %q", raw)
	}
	mode := Mode(raw[:idx])
	switch mode {
	case ModeReceive, ModeSendToServer, ModeDisconnect:
	default:
		return Frame{}, fmt.Errorf("unknown frame mode: %q", raw[:idx])
	}
	payload := raw[idx+1:]
	var lines []string
	if payload != "" {
		lines = strings.Split(payload, "\n")
	}
	return Frame{Mode: mode, Lines: lines}, nil
}
