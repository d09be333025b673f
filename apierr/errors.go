package apierr

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
)

// Kind represents the class of a client failure
type Kind int

const (
	// KindConnect is a DNS, dial or TLS handshake failure
	KindConnect Kind = iota
	// KindTransport is an I/O failure on an established connection
	KindTransport
	// KindTimeout indicates the connect or reply wait deadline passed
	KindTimeout
	// KindFraming is a malformed or truncated wire message
	KindFraming
	// KindEnvelope is malformed XML or an envelope missing expected elements
	KindEnvelope
	// KindAuthentication indicates the login reply carried no token
	KindAuthentication
	// KindBusy indicates a request was attempted while another was pending
	KindBusy
	// KindFormat is a malformed caller supplied string (hex key, domain name)
	KindFormat
)

func (k Kind) String() string {
	switch k {
	case KindConnect:
		return "connect"
	case KindTransport:
		return "transport"
	case KindTimeout:
		return "timeout"
	case KindFraming:
		return "framing"
	case KindEnvelope:
		return "envelope"
	case KindAuthentication:
		return "authentication"
	case KindBusy:
		return "busy"
	case KindFormat:
		return "format"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k *Kind) UnmarshalText(b []byte) error {
	b = bytes.TrimSpace(b)
	for c := KindConnect; c <= KindFormat; c++ {
		if string(b) == c.String() {
			*k = c
			return nil
		}
	}
	return errors.New("unknown value")
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Error is a typed client failure.
//
// Op names the operation that failed (e.g. "send", "login"), Message
// carries diagnostics (for authentication failures, the message element
// of the reply envelope) and Err the underlying cause, if any.
type Error struct {
	Kind    Kind   `json:"kind"`
	Op      string `json:"op,omitempty"`
	Message string `json:"message,omitempty"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	s := e.Kind.String() + " error"
	if e.Op != "" {
		s += " op:" + e.Op
	}
	if e.Message != "" {
		s += " " + e.Message
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether err, or any error it wraps, is an *Error of kind k.
func Is(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// New returns an *Error of kind k configured by opts.
func New(k Kind, opts ...Option) *Error {
	e := &Error{Kind: k}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func Connect(opts ...Option) *Error { return New(KindConnect, opts...) }

func Transport(opts ...Option) *Error { return New(KindTransport, opts...) }

func Timeout(opts ...Option) *Error { return New(KindTimeout, opts...) }

func Framing(opts ...Option) *Error { return New(KindFraming, opts...) }

func Envelope(opts ...Option) *Error { return New(KindEnvelope, opts...) }

func Authentication(opts ...Option) *Error { return New(KindAuthentication, opts...) }

func Busy(opts ...Option) *Error { return New(KindBusy, opts...) }

func Format(opts ...Option) *Error { return New(KindFormat, opts...) }
