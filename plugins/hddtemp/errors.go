package hddtemp

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingStartDelimiter means the response does not begin with the separator.
	ErrMissingStartDelimiter = errors.New("hddtemp: starting separator not found")

	// ErrMissingEndDelimiter means the response does not end with the separator.
	ErrMissingEndDelimiter = errors.New("hddtemp: trailing separator not found")

	// ErrInvalidFormat is wrapped by every TokenError.
	ErrInvalidFormat = errors.New("hddtemp: invalid format")

	// ErrInvalidEncoding means the daemon sent bytes that are not valid UTF-8.
	// It is reported as the Err of a read TransportError.
	ErrInvalidEncoding = errors.New("hddtemp: response is not valid UTF-8")

	// ErrTransport is matched by every TransportError.
	ErrTransport = errors.New("hddtemp: transport failure")
)

// TokenError reports a unit or result token that does not map to a value.
type TokenError struct {
	Kind  string
	Token string
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("invalid %s token %q", e.Kind, e.Token)
}

func (e *TokenError) Unwrap() error {
	return ErrInvalidFormat
}

// TransportError wraps dial and read failures against the daemon.
type TransportError struct {
	Op      string
	Address string
	Timeout bool
	Err     error
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("hddtemp %s %s: timed out: %v", e.Op, e.Address, e.Err)
	}
	return fmt.Sprintf("hddtemp %s %s: %v", e.Op, e.Address, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrTransport) match any TransportError.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
