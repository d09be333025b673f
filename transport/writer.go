package transport

import (
	"io"

	"github.com/jakub-gawryl/hrdapi/framing"
)

// Writer is an HRD API transport encoder.
// A Writer takes a destination io.Writer and the session's shared key,
// and writes each payload as one tagged, length-prefixed message.
type Writer struct {
	dst io.Writer
	key []byte
}

// NewWriter returns a new Writer writing to the destination dst,
// tagging messages with key.
func NewWriter(dst io.Writer, key []byte) *Writer { return &Writer{dst: dst, key: key} }

// WriteMessage tags and frames payload and writes it to the destination
// in a single Write call. It returns the number of wire bytes written.
func (w *Writer) WriteMessage(payload []byte) (n int, err error) {
	tag, err := framing.Tag(payload, w.key)
	if err != nil {
		return 0, err
	}
	data := framing.Encode(tag, payload)
	if n, err = w.dst.Write(data); err == nil && n < len(data) {
		err = io.ErrShortWrite
	}
	return n, err
}
