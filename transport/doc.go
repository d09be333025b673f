/*
Package transport provides the HRD API transport layer.

The transport layer dials the TLS connection and offers Reader and
Writer types which respectively decode and encode whole framed
messages on it. The session layer reads and writes to these
transport layer objects.
*/
package transport
