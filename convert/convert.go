// Package convert holds the pure helpers used to turn caller supplied
// identifiers into their wire form.
package convert

import (
	"encoding/hex"
	"fmt"

	"github.com/jakub-gawryl/hrdapi/apierr"
	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

// HexDecode converts a hex string such as "8ef5" into bytes.
// Empty, odd length and non-hex input fail with a format error.
func HexDecode(s string) ([]byte, error) {
	if s == "" {
		return nil, apierr.Format(apierr.WithMessage("empty hex string"))
	}
	if len(s)%2 != 0 {
		return nil, apierr.Format(apierr.WithMessage(fmt.Sprintf("odd length hex string (%d characters)", len(s))))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, apierr.Format(apierr.WithMessage("invalid hex string"), apierr.WithErr(err))
	}
	return b, nil
}

// DomainToASCII returns the ASCII-Compatible Encoding of an internationalized
// domain name, e.g. "gżegżółka.com" becomes "xn--gegka-2ta76cmoc.com".
// ASCII input is returned unchanged.
func DomainToASCII(domain string) (string, error) {
	if isASCII(domain) {
		return domain, nil
	}
	ace, err := idna.Lookup.ToASCII(norm.NFC.String(domain))
	if err != nil {
		return "", apierr.Format(apierr.WithMessage(fmt.Sprintf("invalid domain name %q", domain)), apierr.WithErr(err))
	}
	return ace, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
