package transport

import (
	"context"
	"crypto/tls"
	"net"
	"time"
)

// Dialer opens the connection used for a single exchange.
//
// *tls.Dialer satisfies Dialer; tests substitute in-memory connections.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// DialerFunc adapts a function to the Dialer interface
type DialerFunc func(ctx context.Context, network, address string) (net.Conn, error)

// DialContext calls f(ctx, network, address)
func (f DialerFunc) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	return f(ctx, network, address)
}

// NewTLSDialer returns a Dialer which completes the TLS handshake before
// returning the connection. A nil config uses standard certificate
// verification against the dialed host name. timeout bounds the TCP
// connect; zero means no limit beyond the context.
func NewTLSDialer(config *tls.Config, timeout time.Duration) Dialer {
	return &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: timeout},
		Config:    config,
	}
}
