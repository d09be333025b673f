// Package xmlutil holds small encoding/xml helpers shared by the envelope codec.
package xmlutil

import (
	"encoding/xml"
	"regexp"
	"unicode/utf8"
)

// XMLName returns the xml.Name with local name local, in namespace
// spaces[0] if given.
func XMLName(local string, spaces ...string) xml.Name {
	n := xml.Name{Local: local}
	if len(spaces) > 0 {
		n.Space = spaces[0]
	}
	return n
}

// StartElement returns a start element token with no attributes
func StartElement(local string, spaces ...string) xml.StartElement {
	return xml.StartElement{Name: XMLName(local, spaces...)}
}

var reElementName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// ValidName reports whether local can be used as an unprefixed element
// name. Names containing a colon are rejected.
func ValidName(local string) bool { return reElementName.MatchString(local) }

// ValidText reports whether s is valid UTF-8 made only of characters
// allowed in XML 1.0 character data.
func ValidText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		switch {
		case r == 0x09 || r == 0x0a || r == 0x0d:
		case r >= 0x20 && r <= 0xd7ff:
		case r >= 0xe000 && r <= 0xfffd:
		case r >= 0x10000 && r <= 0x10ffff:
		default:
			return false
		}
	}
	return true
}
