package milight

import (
	"fmt"
	"net"
)

// Frame layout, LimitlessLED v6.0 wire protocol.
//
// Command frame (22 bytes):
//
//	80 00 00 00 11 <sid1> <sid2> 00 <seq> 00 | 9-byte command | <zone> 00 | <checksum>
//
// Acknowledgment (8 bytes): sequence byte echoed at offset 6.
const (
	commandFrameSize   = 22
	commandPayloadSize = 9
	payloadOffset      = 10
	ackFrameSize       = 8
	ackSequenceOffset  = 6
	handshakeRespSize  = 22
)

// Fixed discovery datagram that opens a session. The bridge answers with a
// 22-byte datagram carrying its MAC address and a two-part session token.
var handshakeRequest = []byte{
	0x20, 0x00, 0x00, 0x00, 0x16, 0x02, 0x62, 0x3A, 0xD5, 0xED, 0xA3, 0x01,
	0xAE, 0x08, 0x2D, 0x46, 0x61, 0x41, 0xA7, 0xF6, 0xDC, 0xAF, 0xD3, 0xE6,
	0x00, 0x00, 0x1E,
}

// session is the token issued by the bridge during the handshake exchange.
// Every command frame must carry it.
type session struct {
	id1, id2 byte
	mac      net.HardwareAddr
}

// checksum is SUM(command payload bytes, zone byte) mod 256. The same
// function covers outgoing frames and validation of captured ones.
func checksum(payload []byte, zone byte) byte {
	var sum byte
	for _, b := range payload {
		sum += b
	}
	return sum + zone
}

// encodeCommand builds the 22-byte command frame for one request.
func encodeCommand(sess session, seq, zone byte, payload []byte) ([]byte, error) {
	if len(payload) != commandPayloadSize {
		return nil, fmt.Errorf("command payload is %d bytes, want %d: %w", len(payload), commandPayloadSize, ErrInvalidParameter)
	}

	frame := make([]byte, 0, commandFrameSize)
	frame = append(frame, 0x80, 0x00, 0x00, 0x00, 0x11, sess.id1, sess.id2, 0x00, seq, 0x00)
	frame = append(frame, payload...)
	frame = append(frame, zone, 0x00)
	frame = append(frame, checksum(payload, zone))
	return frame, nil
}

// encodeHandshake returns a copy of the fixed discovery frame.
func encodeHandshake() []byte {
	frame := make([]byte, len(handshakeRequest))
	copy(frame, handshakeRequest)
	return frame
}

// validChecksum recomputes the trailing checksum of a command frame.
func validChecksum(frame []byte) bool {
	if len(frame) != commandFrameSize {
		return false
	}
	payload := frame[payloadOffset : payloadOffset+commandPayloadSize]
	zone := frame[commandFrameSize-3]
	return checksum(payload, zone) == frame[commandFrameSize-1]
}

// parseHandshakeResponse extracts the session token and bridge MAC address.
func parseHandshakeResponse(data []byte) (session, error) {
	if len(data) != handshakeRespSize {
		return session{}, fmt.Errorf("handshake response is %d bytes, want %d (% x): %w", len(data), handshakeRespSize, data, ErrMalformedResponse)
	}

	mac := make(net.HardwareAddr, 6)
	copy(mac, data[7:13])
	return session{id1: data[19], id2: data[20], mac: mac}, nil
}

// parseAck validates an acknowledgment against the sequence it should echo.
func parseAck(data []byte, seq byte) error {
	if len(data) != ackFrameSize {
		return fmt.Errorf("ack is %d bytes, want %d (% x): %w", len(data), ackFrameSize, data, ErrMalformedResponse)
	}
	if data[ackSequenceOffset] != seq {
		return fmt.Errorf("ack echoes sequence %#02x, want %#02x: %w", data[ackSequenceOffset], seq, ErrMalformedResponse)
	}
	return nil
}
