package convert

import (
	"testing"

	"github.com/jakub-gawryl/hrdapi/apierr"
	"github.com/stretchr/testify/assert"
)

func TestHexDecode(t *testing.T) {
	for _, tc := range []struct {
		in      string
		want    []byte
		wantErr bool
	}{
		{in: "a39dee", want: []byte{0xa3, 0x9d, 0xee}},
		{in: "A39DEE", want: []byte{0xa3, 0x9d, 0xee}},
		{in: "00ff", want: []byte{0x00, 0xff}},
		{in: "", wantErr: true},
		{in: "a39de", wantErr: true},
		{in: "zz", wantErr: true},
		{in: "a39dex", wantErr: true},
		{in: "0x8ef5", wantErr: true},
	} {
		t.Run(tc.in, func(t *testing.T) {
			a := assert.New(t)
			got, err := HexDecode(tc.in)
			if tc.wantErr {
				a.True(apierr.Is(err, apierr.KindFormat), "got %v", err)
				return
			}
			if a.NoError(err) {
				a.Equal(tc.want, got)
			}
		})
	}
}

func TestDomainToASCII(t *testing.T) {
	for _, tc := range []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "gżegżółka.com", want: "xn--gegka-2ta76cmoc.com"},
		{in: "some-domain.com.pl", want: "some-domain.com.pl"},
		{in: "Some-Domain.COM.pl", want: "Some-Domain.COM.pl"},
		{in: "", want: ""},
		// decomposed input normalizes to the same label
		{in: "gz\u0307egz\u0307o\u0301\u0142ka.com", want: "xn--gegka-2ta76cmoc.com"},
		{in: "-żółw.pl", wantErr: true},
	} {
		t.Run(tc.in, func(t *testing.T) {
			a := assert.New(t)
			got, err := DomainToASCII(tc.in)
			if tc.wantErr {
				a.True(apierr.Is(err, apierr.KindFormat), "got %v", err)
				return
			}
			if a.NoError(err) {
				a.Equal(tc.want, got)
			}
		})
	}
}
