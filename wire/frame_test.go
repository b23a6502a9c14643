package wire

import (
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	assert.Equal(t, "CLIENT_RECEIVE$hello#", Encode(ModeReceive, "hello"))
	assert.Equal(t, "CLIENT_RECEIVE$one\ntwo#", Encode(ModeReceive, "one", "two"))
	assert.Equal(t, "CLIENT_DISCONNECT$#", Encode(ModeDisconnect))
}

func TestReadFrame(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("CLIENT_SEND_TO_SERVER$Type your bet#CLIENT_RECEIVE$a\nb#"))

	frame, err := ReadFrame(r)
	require.NoError(t, err)
	assert.Equal(t, ModeSendToServer, frame.Mode)
	assert.Equal(t, "Type your bet", frame.Payload())

	frame, err = ReadFrame(r)
	require.NoError(t, err)
	assert.Equal(t, ModeReceive, frame.Mode)
	assert.Equal(t, []string{"a", "b"}, frame.Lines)

	_, err = ReadFrame(r)
	assert.ErrorIs(t, err, io.EOF)
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode("no divider here")
	assert.Error(t, err)

	_, err = Decode("WHO_KNOWS$payload")
	assert.Error(t, err)
}

func TestDecodeEmptyPayload(t *testing.T) {
	frame, err := Decode("CLIENT_DISCONNECT$")
	require.NoError(t, err)
	assert.Equal(t, ModeDisconnect, frame.Mode)
	assert.Empty(t, frame.Lines)
	assert.Equal(t, "", frame.Payload())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	r := bufio.NewReader(strings.NewReader(Encode(ModeReceive, "Dealer's cards: A K [11/21]")))
	frame, err := ReadFrame(r)
	require.NoError(t, err)
	assert.Equal(t, "Dealer's cards: A K [11/21]", frame.Payload())
}
