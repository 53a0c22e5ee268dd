package milight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

const readBufferSize = 64

// errAwaitTimeout marks a single exchange that saw no accepted datagram
// before its deadline. It stays internal; callers see ErrRetriesExhausted
// once the retry budget is spent.
var errAwaitTimeout = errors.New("timed out awaiting response")

// transport owns the UDP socket for one bridge. It performs single
// request/response exchanges; retry policy lives in the caller.
type transport struct {
	conn *net.UDPConn
}

func dialTransport(addr string, port int) (*transport, error) {
	raddr, err := net.ResolveUDPAddr("udp4", net.JoinHostPort(addr, strconv.Itoa(port)))
	if err != nil {
		return nil, fmt.Errorf("resolving bridge address: %w", err)
	}

	conn, err := net.DialUDP("udp4", nil, raddr)
	if err != nil {
		return nil, fmt.Errorf("opening socket: %w", err)
	}

	if err := conn.SetReadBuffer(readBufferSize); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sizing read buffer: %w", err)
	}

	return &transport{conn: conn}, nil
}

// sendAndAwait writes frame once and reads until accept returns true for a
// received datagram or the deadline elapses. Rejected datagrams (late acks
// for abandoned sequences, unrelated traffic) are discarded, not surfaced.
func (t *transport) sendAndAwait(ctx context.Context, frame []byte, timeout time.Duration, accept func([]byte) bool) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := t.conn.Write(frame); err != nil {
		return nil, fmt.Errorf("sending frame: %w", err)
	}

	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := t.conn.SetReadDeadline(deadline); err != nil {
		return nil, fmt.Errorf("setting read deadline: %w", err)
	}

	buf := make([]byte, readBufferSize)
	for {
		n, err := t.conn.Read(buf)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return nil, errAwaitTimeout
			}
			return nil, fmt.Errorf("reading response: %w", err)
		}

		resp := make([]byte, n)
		copy(resp, buf[:n])
		if accept(resp) {
			return resp, nil
		}
	}
}

// sendWithRetry re-sends the identical frame bytes after each timed-out
// attempt. The frame is not re-encoded between attempts; a retry addresses
// delivery loss of the same logical request.
func (t *transport) sendWithRetry(ctx context.Context, frame []byte, timeout time.Duration, attempts int, accept func([]byte) bool) ([]byte, error) {
	for i := 0; i < attempts; i++ {
		resp, err := t.sendAndAwait(ctx, frame, timeout, accept)
		if err == nil {
			return resp, nil
		}
		if !errors.Is(err, errAwaitTimeout) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("no response after %d attempts: %w", attempts, ErrRetriesExhausted)
}

func (t *transport) close() error {
	return t.conn.Close()
}
