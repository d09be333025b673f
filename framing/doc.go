/*
Package framing offers the HRD API wire message codec.

Every message on the wire is a 4 byte big-endian length followed by a
64 byte SHA-512 integrity tag and the XML payload. The length covers the
tag and the payload. The tag is computed over the payload with the
session's shared key appended (see Tag).

ReadFrame reads exactly one such message from a stream, so callers do
not depend on the transport delivering one message per read.
*/
package framing
