package hddtemp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"
	"unicode/utf8"
)

// Client reads the hddtemp daemon on a fixed address.
// It holds no connection between calls and is safe for concurrent use.
type Client struct {
	address   string
	timeout   time.Duration
	separator byte
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Address) == "" {
		return nil, fmt.Errorf("hddtemp address is required")
	}
	sep := cfg.Separator
	if sep == 0 {
		sep = DefaultSeparator
	}
	return &Client{
		address:   cfg.Address,
		timeout:   cfg.Timeout,
		separator: sep,
	}, nil
}

func (c *Client) Address() string {
	return c.address
}

func (c *Client) Separator() byte {
	return c.separator
}

// Raw returns the unparsed daemon response.
func (c *Client) Raw(ctx context.Context) (string, error) {
	return FetchRaw(ctx, c.address, c.timeout)
}

// Devices fetches and parses the daemon response.
func (c *Client) Devices(ctx context.Context) (Devices, error) {
	return Fetch(ctx, c.address, c.timeout, c.separator)
}

// FetchRaw connects to address, reads until the daemon closes the
// connection and returns what it sent. Responses that are not valid UTF-8
// are rejected. A timeout of zero blocks until the
// peer closes; otherwise it bounds the read.
func FetchRaw(ctx context.Context, address string, timeout time.Duration) (string, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return "", &TransportError{Op: "dial", Address: address, Timeout: isTimeout(err), Err: err}
	}
	defer conn.Close()

	if timeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			return "", &TransportError{Op: "read", Address: address, Err: err}
		}
	}

	payload, err := io.ReadAll(conn)
	if err != nil {
		return "", &TransportError{Op: "read", Address: address, Timeout: isTimeout(err), Err: err}
	}
	if !utf8.Valid(payload) {
		return "", &TransportError{Op: "read", Address: address, Err: ErrInvalidEncoding}
	}
	return string(payload), nil
}

// Fetch reads the daemon and parses the response with sep.
func Fetch(ctx context.Context, address string, timeout time.Duration, sep byte) (Devices, error) {
	raw, err := FetchRaw(ctx, address, timeout)
	if err != nil {
		return nil, err
	}
	return ParseDevices(raw, sep)
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
