package framing

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/jakub-gawryl/hrdapi/apierr"
	"github.com/pkg/errors"
)

const (
	// HeaderSize is the size of the big-endian length prefix
	HeaderSize = 4
	// MinFrameSize is the smallest valid tagged message (header and tag, empty payload)
	MinFrameSize = HeaderSize + TagSize
	// DefaultMaxFrameSize bounds the declared length accepted by ReadFrame
	DefaultMaxFrameSize = 16 << 20
)

// Encode returns the wire form of tag and payload: the length of
// tag+payload as a big-endian uint32, then tag, then payload.
func Encode(tag [TagSize]byte, payload []byte) []byte {
	buf := make([]byte, HeaderSize+TagSize+len(payload))
	binary.BigEndian.PutUint32(buf, uint32(TagSize+len(payload)))
	copy(buf[HeaderSize:], tag[:])
	copy(buf[MinFrameSize:], payload)
	return buf
}

// Decode splits a complete, fully buffered wire message into its tag and payload.
//
// A framing error is returned if raw is shorter than MinFrameSize or if
// the declared length does not match the bytes available.
func Decode(raw []byte) (tag [TagSize]byte, payload []byte, err error) {
	if len(raw) < MinFrameSize {
		return tag, nil, errShortFrame(len(raw), MinFrameSize)
	}
	if err = checkLength(raw); err != nil {
		return tag, nil, err
	}
	copy(tag[:], raw[HeaderSize:MinFrameSize])
	payload = raw[MinFrameSize:]
	return tag, payload, nil
}

// DecodeUntagged returns the payload of a complete wire message which
// carries no integrity tag, only the length prefix.
func DecodeUntagged(raw []byte) ([]byte, error) {
	if len(raw) < HeaderSize {
		return nil, errShortFrame(len(raw), HeaderSize)
	}
	if err := checkLength(raw); err != nil {
		return nil, err
	}
	return raw[HeaderSize:], nil
}

// ReadFrame reads exactly one length-prefixed message from r and returns
// it whole, length prefix included, ready for Decode or DecodeUntagged.
//
// End of input inside the header or body is a framing error, as is a
// declared length larger than limit (0 means no limit). Other read
// errors (timeouts, closed connections) are returned wrapped.
func ReadFrame(r io.Reader, limit uint32) ([]byte, error) {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, apierr.Framing(apierr.WithMessage("short header"), apierr.WithErr(err))
		}
		return nil, errors.Wrap(err, "framing: read header")
	}
	size := binary.BigEndian.Uint32(hdr[:])
	if limit > 0 && size > limit {
		return nil, apierr.Framing(apierr.WithMessage(
			fmt.Sprintf("declared length %d exceeds maximum %d", size, limit)))
	}
	buf := make([]byte, HeaderSize+int(size))
	copy(buf, hdr[:])
	if _, err := io.ReadFull(r, buf[HeaderSize:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, apierr.Framing(apierr.WithMessage(
				fmt.Sprintf("truncated body (declared %d bytes)", size)), apierr.WithErr(err))
		}
		return nil, errors.Wrap(err, "framing: read body")
	}
	return buf, nil
}

func checkLength(raw []byte) error {
	if size := binary.BigEndian.Uint32(raw); int64(size) != int64(len(raw)-HeaderSize) {
		return apierr.Framing(apierr.WithMessage(
			fmt.Sprintf("declared length %d, have %d bytes", size, len(raw)-HeaderSize)))
	}
	return nil
}

func errShortFrame(have, want int) error {
	return apierr.Framing(apierr.WithMessage(fmt.Sprintf("message too short: %d < %d bytes", have, want)))
}
