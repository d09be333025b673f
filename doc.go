/*
Package hrdapi is a set of HRD partner API support libraries.

The HRD API is reached over a raw TLS socket. Each request is an XML
envelope, prefixed by its SHA-512 tag (computed over the payload and the
partner's shared key) and a big-endian length. The libraries here do the
framing, tagging and envelope encoding, and manage the connection
lifecycle of a session so that applications only deal with operations
and their replies.

Packages:

	framing    message tags and length-prefixed framing
	transport  dialers and message Reader/Writer
	envelope   the <api> XML envelope and its Value model
	session    connection lifecycle and request/reply exchanges
	client     partner and user operations on top of a session
	convert    hex keys and internationalized domain names
	apierr     typed errors shared by all packages

See the cmd/hrdctl directory for a command line client.
*/
package hrdapi
