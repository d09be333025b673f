package session

import "fmt"

// Status is a Session's (present) connection state.
type Status int

const (
	// StatusIdle indicates no connection is open. It is the initial
	// status and the status after every exchange.
	StatusIdle Status = iota
	// StatusConnecting is set while the connection is dialed and the
	// TLS handshake runs.
	StatusConnecting
	// StatusConnected is set while an exchange uses an open connection.
	StatusConnected
	// StatusFaulted is set when connecting fails, before returning to
	// StatusIdle.
	StatusFaulted
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	case StatusFaulted:
		return "faulted"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

var transitions = map[Status][]Status{
	StatusIdle:       {StatusConnecting},
	StatusConnecting: {StatusConnected, StatusFaulted},
	StatusConnected:  {StatusIdle},
	StatusFaulted:    {StatusIdle},
}

func canTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
