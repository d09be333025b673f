// Package fakeapi provides an in-memory HRD API endpoint for tests.
//
// A Server is used as a transport.Dialer: every DialContext call returns
// one end of a net.Pipe and serves a single framed exchange on the other.
package fakeapi

import (
	"context"
	"encoding/binary"
	"io"
	"net"
	"sync"

	"github.com/jakub-gawryl/hrdapi/framing"
)

// Request is a request received by the Server
type Request struct {
	Tag     [framing.TagSize]byte
	Payload []byte
	// TagOK is true if Tag matches Payload under the Server's Key
	TagOK bool
}

// HandlerFunc returns the reply payload for a request payload
type HandlerFunc func(payload []byte) []byte

// Server is a fake HRD API endpoint
type Server struct {
	// Handler builds reply payloads. A nil Handler replies with an empty <api/> envelope.
	Handler HandlerFunc
	// Key is used to verify request tags and to tag replies
	Key []byte
	// Untagged sends replies as length prefix and payload only
	Untagged bool
	// Raw writes the reply payload to the connection as-is, unframed,
	// then closes the connection.
	Raw bool
	// Hold, when non-nil, delays each reply until a value is received
	// from it or it is closed.
	Hold chan struct{}
	// DialErr, when non-nil, fails every DialContext call
	DialErr error

	mu       sync.Mutex
	dials    int
	closes   int
	requests []Request
	errs     []error
	wg       sync.WaitGroup
}

// DialContext implements transport.Dialer
func (s *Server) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.dials++
	s.mu.Unlock()
	if s.DialErr != nil {
		return nil, s.DialErr
	}
	client, server := net.Pipe()
	s.wg.Add(1)
	go s.serve(server)
	return client, nil
}

func (s *Server) serve(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	raw, err := framing.ReadFrame(conn, 0)
	if err != nil {
		s.addError(err)
		return
	}
	tag, payload, err := framing.Decode(raw)
	if err != nil {
		s.addError(err)
		return
	}
	req := Request{Tag: tag, Payload: payload}
	if want, err := framing.Tag(payload, s.Key); err == nil {
		req.TagOK = want == tag
	}
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if s.Hold != nil {
		<-s.Hold
	}
	reply := []byte(Envelope(""))
	if s.Handler != nil {
		reply = s.Handler(payload)
	}
	if _, err := conn.Write(s.frame(reply)); err != nil {
		s.addError(err)
		return
	}
	if s.Raw {
		// raw replies may be incomplete, end of input tells the client
		return
	}
	// the client closes the connection once it has read the reply
	if _, err := io.Copy(io.Discard, conn); err == nil {
		s.mu.Lock()
		s.closes++
		s.mu.Unlock()
	}
}

func (s *Server) frame(reply []byte) []byte {
	switch {
	case s.Raw:
		return reply
	case s.Untagged:
		return Untagged(reply)
	}
	tag, err := framing.Tag(reply, s.Key)
	if err != nil {
		// no key: send a zero tag
		tag = [framing.TagSize]byte{}
	}
	return framing.Encode(tag, reply)
}

func (s *Server) addError(err error) {
	s.mu.Lock()
	s.errs = append(s.errs, err)
	s.mu.Unlock()
}

// Wait waits for all connections served so far to finish
func (s *Server) Wait() { s.wg.Wait() }

// Dials returns the number of DialContext calls
func (s *Server) Dials() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dials
}

// Closes returns the number of connections closed by the client after
// reading the reply.
func (s *Server) Closes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes
}

// Requests returns the requests received so far
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Errors returns the server side I/O errors seen so far
func (s *Server) Errors() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]error(nil), s.errs...)
}

// Untagged returns payload framed with the length prefix only
func Untagged(payload []byte) []byte {
	buf := make([]byte, framing.HeaderSize+len(payload))
	binary.BigEndian.PutUint32(buf, uint32(len(payload)))
	copy(buf[framing.HeaderSize:], payload)
	return buf
}

// Envelope wraps inner XML in an <api> reply envelope
func Envelope(inner string) string {
	return `<?xml version="1.0" encoding="UTF-8"?><api xmlns="http://api.hrd.pl/api/">` + inner + `</api>`
}

// Static returns a HandlerFunc replying with Envelope(inner)
func Static(inner string) HandlerFunc {
	return func([]byte) []byte { return []byte(Envelope(inner)) }
}
