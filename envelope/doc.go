// Package envelope encodes and decodes HRD API XML envelopes.
//
// Every request and reply is a single <api> root element in the
// http://api.hrd.pl/api/ namespace. A request holds exactly one child
// naming the operation, whose nested elements are its parameters:
//
//   <?xml version="1.0" encoding="UTF-8" standalone="yes"?>
//   <api xmlns="http://api.hrd.pl/api/"><partner><getBalance></getBalance></partner></api>
//
// Envelope content is represented as a Value, a tagged variant of null,
// text, map and list. Reply shapes differ per operation, so Decode
// returns the generic Value and callers narrow it to the operation's
// result type.
package envelope
