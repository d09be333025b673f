package transport

import (
	"bytes"
	"io"
	"testing"

	"github.com/jakub-gawryl/hrdapi/framing"
	"github.com/stretchr/testify/assert"
)

func TestWriter(t *testing.T) {
	key := []byte{0xa3, 0x9d, 0xee}
	for _, tc := range []struct {
		name string
		f    func(*assert.Assertions)
	}{
		{
			name: "tagged frame",
			f: func(a *assert.Assertions) {
				b := &bytes.Buffer{}
				w := NewWriter(b, key)
				n, err := w.WriteMessage([]byte("foo"))
				a.NoError(err)
				a.Equal(framing.MinFrameSize+3, n)
				tag, payload, err := framing.Decode(b.Bytes())
				a.NoError(err)
				a.Equal("foo", string(payload))
				want, _ := framing.Tag([]byte("foo"), key)
				a.Equal(want, tag)
			},
		},
		{
			name: "consecutive messages",
			f: func(a *assert.Assertions) {
				b := &bytes.Buffer{}
				w := NewWriter(b, key)
				w.WriteMessage([]byte("foo"))
				w.WriteMessage([]byte("barbaz"))
				r := NewReader(b)
				for _, want := range []string{"foo", "barbaz"} {
					got, err := r.ReadMessage()
					a.NoError(err)
					a.Equal(want, string(got))
				}
			},
		},
		{
			name: "no key",
			f: func(a *assert.Assertions) {
				b := &bytes.Buffer{}
				_, err := NewWriter(b, nil).WriteMessage([]byte("foo"))
				a.Equal(framing.ErrEmptyKey, err)
				a.Zero(b.Len())
			},
		},
		{
			name: "short write",
			f: func(a *assert.Assertions) {
				_, err := NewWriter(shortWriter{}, key).WriteMessage([]byte("foo"))
				a.Equal(io.ErrShortWrite, err)
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) { tc.f(assert.New(t)) })
	}
}

// shortWriter accepts only half of every write
type shortWriter struct{}

func (shortWriter) Write(b []byte) (int, error) { return len(b) / 2, nil }
