package wallet

import "math/big"

// ConnectionState is the connection as seen by the rest of the application.
// An empty Address means disconnected, in which case Balance is empty and ChainID is nil.
type ConnectionState struct {
	Address      string
	Balance      string   // whole-ether decimal string
	ChainID      *big.Int // nil when absent
	IsConnecting bool
}

// Connected reports whether an account is connected
func (s ConnectionState) Connected() bool {
	return s.Address != ""
}

// Status is the position in the connection state machine
type Status int

const (
	StatusDisconnected Status = iota
	StatusConnecting
	StatusConnected
)

func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	}
	return "disconnected"
}

// Status derives the state machine position. Connecting wins over a stale address
// so an account switch shows as connecting.
func (s ConnectionState) Status() Status {
	switch {
	case s.IsConnecting:
		return StatusConnecting
	case s.Connected():
		return StatusConnected
	}
	return StatusDisconnected
}

func (s ConnectionState) clone() ConnectionState {
	if s.ChainID != nil {
		s.ChainID = new(big.Int).Set(s.ChainID)
	}
	return s
}
