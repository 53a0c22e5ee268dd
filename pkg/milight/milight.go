// Package milight controls Milight 3.0 (LimitlessLED v6.0) wireless light
// fixtures through a WiFi bridge over UDP.
//
// A Bridge must be set up before use:
//
//	b := milight.NewBridge("192.168.1.23")
//	if err := b.Setup(ctx); err != nil { ... }
//	defer b.Close()
//	b.TurnOn(ctx, 1)
//
// Setup runs the session handshake and keeps the issued token for every
// subsequent command. A Bridge serializes command issuance internally;
// independent bridges may be used concurrently.
package milight

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultPort is the well-known UDP port of v6.0 bridges.
	DefaultPort = 5987

	// DefaultTimeout bounds the wait for a single response datagram.
	DefaultTimeout = 5 * time.Second

	defaultAttempts = 3

	// ZoneAll broadcasts a command to every zone the bridge knows.
	ZoneAll = 0

	// MaxZone is the highest addressable zone index.
	MaxZone = 4
)

var (
	// ErrNotReady is returned when a command is issued before a successful
	// Setup or after Close.
	ErrNotReady = errors.New("no bridge session established")

	// ErrSetupFailed is returned when the handshake is never acknowledged
	// within the retry budget.
	ErrSetupFailed = errors.New("bridge handshake failed")

	// ErrInvalidParameter is returned when a zone or value is outside the
	// range its operation accepts. Nothing is sent.
	ErrInvalidParameter = errors.New("parameter out of range")

	// ErrMalformedResponse is returned when a received datagram fails
	// length or checksum validation.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrRetriesExhausted is returned when every attempt for one command
	// elapsed without a matching acknowledgment.
	ErrRetriesExhausted = errors.New("retries exhausted")
)

// White temperature presets, as percentages accepted by SetTemperature.
const (
	Warm         = 0   // 2700K
	WarmWhite    = 8   // 3000K
	CoolWhite    = 35  // 4000K
	Daylight     = 61  // 5000K
	CoolDaylight = 100 // 6500K
)

// Bridge is one addressable WiFi bridge. The zero value is not usable;
// construct with NewBridge and call Setup.
type Bridge struct {
	addr     string
	port     int
	timeout  time.Duration
	attempts int

	// mu serializes command issuance: the sequence counter and the
	// outstanding-request slot are per-bridge mutable state.
	mu   sync.Mutex
	tr   *transport
	sess *session
	seq  byte
}

// Option configures a Bridge at construction.
type Option func(*Bridge)

// WithPort overrides the default bridge port.
func WithPort(port int) Option {
	return func(b *Bridge) { b.port = port }
}

// WithTimeout overrides the per-attempt response timeout.
func WithTimeout(d time.Duration) Option {
	return func(b *Bridge) { b.timeout = d }
}

// WithRetryAttempts overrides the number of send attempts per exchange.
func WithRetryAttempts(n int) Option {
	return func(b *Bridge) { b.attempts = n }
}

// NewBridge returns an unconnected Bridge for the given address.
func NewBridge(addr string, opts ...Option) *Bridge {
	b := &Bridge{
		addr:     addr,
		port:     DefaultPort,
		timeout:  DefaultTimeout,
		attempts: defaultAttempts,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Setup opens the UDP socket and establishes a session with the bridge.
// It may be called again at any time; a re-run replaces the socket and the
// stored session token. On failure no partial token is retained and the
// bridge stays unusable.
func (b *Bridge) Setup(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closeLocked()

	tr, err := dialTransport(b.addr, b.port)
	if err != nil {
		return err
	}
	b.tr = tr

	if err := b.handshakeLocked(ctx); err != nil {
		b.closeLocked()
		return err
	}
	return nil
}

// Handshake re-runs the session exchange on the open socket, replacing the
// stored token. Useful after a suspected session expiry. The bridge must
// have been set up.
func (b *Bridge) Handshake(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.tr == nil {
		return ErrNotReady
	}
	return b.handshakeLocked(ctx)
}

func (b *Bridge) handshakeLocked(ctx context.Context) error {
	b.sess = nil

	resp, err := b.tr.sendWithRetry(ctx, encodeHandshake(), b.timeout, b.attempts, func(data []byte) bool {
		return len(data) == handshakeRespSize
	})
	if err != nil {
		if errors.Is(err, ErrRetriesExhausted) {
			return fmt.Errorf("%w: %v", ErrSetupFailed, err)
		}
		return err
	}

	sess, err := parseHandshakeResponse(resp)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSetupFailed, err)
	}
	b.sess = &sess
	return nil
}

// Close shuts the socket and invalidates the session. Further commands
// return ErrNotReady until Setup is run again.
func (b *Bridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closeLocked()
}

func (b *Bridge) closeLocked() error {
	if b.tr == nil {
		return nil
	}
	err := b.tr.close()
	b.tr = nil
	b.sess = nil
	b.seq = 0
	return err
}

// MACAddress returns the bridge's MAC address as reported by the last
// successful handshake, or "" before one.
func (b *Bridge) MACAddress() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sess == nil {
		return ""
	}
	return b.sess.mac.String()
}

// nextSequence advances the wrapping per-session counter. Sequence 0 is
// never put on the wire; the counter wraps from 0xFF back to 0x01.
func (b *Bridge) nextSequence() byte {
	b.seq++
	if b.seq == 0 {
		b.seq = 1
	}
	return b.seq
}

// send resolves op through the catalog, encodes one frame and exchanges it
// with the bridge, retrying the identical bytes on timeout.
func (b *Bridge) send(ctx context.Context, op operation, zone, value int) error {
	spec, ok := catalog[op]
	if !ok {
		return fmt.Errorf("unknown operation %d", op)
	}

	payload, zoneByte, err := spec.build(zone, value)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.tr == nil || b.sess == nil {
		return ErrNotReady
	}

	seq := b.nextSequence()
	frame, err := encodeCommand(*b.sess, seq, zoneByte, payload)
	if err != nil {
		return err
	}

	// Only an ack echoing this exchange's sequence is accepted; stale acks
	// from abandoned requests are discarded inside the transport.
	resp, err := b.tr.sendWithRetry(ctx, frame, b.timeout, b.attempts, func(data []byte) bool {
		return len(data) == ackFrameSize && data[ackSequenceOffset] == seq
	})
	if err != nil {
		return err
	}
	return parseAck(resp, seq)
}
