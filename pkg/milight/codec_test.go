package milight

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	// 22-byte start-session response: MAC at bytes 7..12, token at 19..20.
	handshakeResponseHex = "28000000110002accf23f57ad4b6f000001e00114000"

	testMAC = "ac:cf:23:f5:7a:d4"
)

var testSession = session{id1: 0x12, id2: 0x5D}

func TestEncodeCommand(t *testing.T) {
	a := assert.New(t)

	tests := []struct {
		name     string
		seq      byte
		zone     byte
		payload  []byte
		expected []byte
	}{
		{
			name:     "turn on zone 1",
			seq:      0x02,
			zone:     1,
			payload:  mustDecode("310000080401000000"),
			expected: mustDecode("8000000011125d00020031000008040100000001003f"),
		},
		{
			name:     "turn on all zones",
			seq:      0x02,
			zone:     0,
			payload:  mustDecode("310000080401000000"),
			expected: mustDecode("8000000011125d00020031000008040100000000003e"),
		},
		{
			name:     "set color red zone 2",
			seq:      0x7F,
			zone:     2,
			payload:  mustDecode("3100000801ffffffff"),
			expected: mustDecode("8000000011125d007f003100000801ffffffff020038"),
		},
	}

	for _, test := range tests {
		frame, err := encodeCommand(testSession, test.seq, test.zone, test.payload)
		a.NoError(err, test.name)
		a.EqualValues(test.expected, frame, test.name)
		a.Len(frame, commandFrameSize, test.name)
		a.True(validChecksum(frame), test.name)
	}
}

func TestEncodeCommandZoneZeroDistinct(t *testing.T) {
	a := assert.New(t)

	payload := mustDecode("310000080401000000")
	all, err := encodeCommand(testSession, 0x01, 0, payload)
	a.NoError(err)
	one, err := encodeCommand(testSession, 0x01, 1, payload)
	a.NoError(err)

	a.NotEqual(all, one)
}

func TestEncodeCommandRejectsBadPayloadSize(t *testing.T) {
	a := assert.New(t)

	_, err := encodeCommand(testSession, 0x01, 1, []byte{0x31, 0x00})
	a.ErrorIs(err, ErrInvalidParameter)
}

func TestValidChecksum(t *testing.T) {
	a := assert.New(t)

	frame := mustDecode("8000000011125d00020031000008040100000001003f")
	a.True(validChecksum(frame))

	corrupted := append([]byte(nil), frame...)
	corrupted[len(corrupted)-1]++
	a.False(validChecksum(corrupted))

	a.False(validChecksum(frame[:len(frame)-1]))
	a.False(validChecksum(nil))
}

func TestEncodeHandshake(t *testing.T) {
	a := assert.New(t)

	frame := encodeHandshake()
	a.EqualValues(handshakeRequest, frame)

	// Callers get a copy, never the shared template.
	frame[0] ^= 0xFF
	a.EqualValues(mustDecode("200000001602623ad5eda301ae082d466141a7f6dcafd3e600001e"), encodeHandshake())
}

func TestParseHandshakeResponse(t *testing.T) {
	a := assert.New(t)

	sess, err := parseHandshakeResponse(mustDecode(handshakeResponseHex))
	a.NoError(err)
	a.Equal(byte(0x11), sess.id1)
	a.Equal(byte(0x40), sess.id2)
	a.Equal(testMAC, sess.mac.String())
}

func TestParseHandshakeResponseMalformed(t *testing.T) {
	a := assert.New(t)

	_, err := parseHandshakeResponse(mustDecode("280000"))
	a.ErrorIs(err, ErrMalformedResponse)

	_, err = parseHandshakeResponse(nil)
	a.ErrorIs(err, ErrMalformedResponse)
}

func TestParseAck(t *testing.T) {
	a := assert.New(t)

	ack := mustDecode("8800000003000200")
	a.NoError(parseAck(ack, 0x02))

	a.ErrorIs(parseAck(ack, 0x03), ErrMalformedResponse)
	a.ErrorIs(parseAck(ack[:7], 0x02), ErrMalformedResponse)
	a.ErrorIs(parseAck(nil, 0x02), ErrMalformedResponse)
}

func mustDecode(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}
