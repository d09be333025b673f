package transport

import (
	"bytes"
	"testing"

	"github.com/jakub-gawryl/hrdapi/apierr"
	"github.com/jakub-gawryl/hrdapi/framing"
	"github.com/stretchr/testify/assert"
)

func TestReader(t *testing.T) {
	var tag [framing.TagSize]byte
	tagged := framing.Encode(tag, []byte("<api/>"))
	untagged := []byte("\x00\x00\x00\x06<api/>")

	for _, tc := range []struct {
		name    string
		in      []byte
		opts    []ReaderOption
		want    string
		framing bool
	}{
		{name: "tagged", in: tagged, want: "<api/>"},
		{name: "untagged", in: untagged, opts: []ReaderOption{WithUntaggedFrames(true)}, want: "<api/>"},
		{name: "untagged reply read as tagged", in: untagged, framing: true},
		{name: "too large", in: tagged, opts: []ReaderOption{WithMaxFrameSize(10)}, framing: true},
		{name: "zero size selects default", in: tagged, opts: []ReaderOption{WithMaxFrameSize(0)}, want: "<api/>"},
		{name: "truncated", in: tagged[:framing.MinFrameSize], framing: true},
		{name: "empty", framing: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a := assert.New(t)
			got, err := NewReader(bytes.NewReader(tc.in), tc.opts...).ReadMessage()
			if tc.framing {
				a.True(apierr.Is(err, apierr.KindFraming), "got %v", err)
				return
			}
			if a.NoError(err) {
				a.Equal(tc.want, string(got))
			}
		})
	}
}
