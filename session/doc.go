/*
Package session implements the HRD API session layer.

A Session owns the shared key derived from the partner hash and runs
request/reply exchanges against the API endpoint. Each exchange opens a
TLS connection, writes one tagged message, reads exactly one reply frame
and closes the connection again.

Session execution

Sessions are created using the New function with a Config. Send
performs one exchange and returns the reply payload; Login derives the
shared key from a Credential and performs the login exchange.

At most one exchange is in flight per Session. A concurrent Send is
rejected with a busy error, or queued when Config.WaitForSlot is set.
Every failure (connect, write, timeout, cancellation, malformed reply)
closes the connection and returns the Session to StatusIdle, so the
next Send reconnects.
*/
package session
