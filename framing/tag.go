package framing

import (
	"crypto/sha512"

	"github.com/pkg/errors"
)

// TagSize is the length of the integrity tag in bytes
const TagSize = sha512.Size

// ErrEmptyKey is returned by Tag when no key material is given
var ErrEmptyKey = errors.New("framing: empty tag key")

// Tag returns the SHA-512 digest of payload followed by key.
//
// The key is appended, not prepended; the remote end computes the
// tag the same way.
func Tag(payload, key []byte) (tag [TagSize]byte, err error) {
	if len(key) == 0 {
		return tag, ErrEmptyKey
	}
	h := sha512.New()
	h.Write(payload)
	h.Write(key)
	copy(tag[:], h.Sum(nil))
	return tag, nil
}
