package transport

import (
	"io"

	"github.com/jakub-gawryl/hrdapi/framing"
)

// Reader is an HRD API transport decoder.
//
// Each call to ReadMessage consumes exactly one framed message from the
// source and returns its payload. Replies are expected to carry an
// integrity tag unless the Reader was created WithUntaggedFrames; the
// tag of a reply is not verified.
type Reader struct {
	src      io.Reader
	limit    uint32
	untagged bool
}

// ReaderOption is a constructor option for a Reader
type ReaderOption func(*Reader)

// WithMaxFrameSize sets the largest declared message length accepted.
// Zero selects framing.DefaultMaxFrameSize.
func WithMaxFrameSize(size uint32) ReaderOption {
	return func(r *Reader) {
		if size == 0 {
			size = framing.DefaultMaxFrameSize
		}
		r.limit = size
	}
}

// WithUntaggedFrames makes the Reader accept messages made of the
// length prefix and payload only.
func WithUntaggedFrames(untagged bool) ReaderOption {
	return func(r *Reader) { r.untagged = untagged }
}

// NewReader returns a new Reader reading from src, configured by opts
func NewReader(src io.Reader, opts ...ReaderOption) *Reader {
	r := &Reader{src: src, limit: framing.DefaultMaxFrameSize}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadMessage reads one message and returns its payload.
func (r *Reader) ReadMessage() ([]byte, error) {
	raw, err := framing.ReadFrame(r.src, r.limit)
	if err != nil {
		return nil, err
	}
	if r.untagged {
		return framing.DecodeUntagged(raw)
	}
	_, payload, err := framing.Decode(raw)
	return payload, err
}
