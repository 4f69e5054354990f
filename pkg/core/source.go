package core

import (
	"errors"
	"fmt"
	"strings"
)

// Direction selects which half of an interface's byte counters is read.
type Direction int

const (
	// Tx is the transmit direction (tx_bytes).
	Tx Direction = iota
	// Rx is the receive direction (rx_bytes).
	Rx
)

// String returns the statistics file stem used by the kernel for the direction.
func (d Direction) String() string {
	switch d {
	case Tx:
		return "tx"
	case Rx:
		return "rx"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// ParseDirection parses "tx" or "rx" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tx":
		return Tx, nil
	case "rx":
		return Rx, nil
	}
	return 0, fmt.Errorf("unknown counter direction %q", s)
}

// ErrNoInterface is returned when no network interface can be associated with
// the primary transport connection.
var ErrNoInterface = errors.New("no network interface available")

// CounterSource supplies cumulative byte counters for a network interface.
type CounterSource interface {
	// ReadCounter returns the cumulative byte count for iface in direction dir,
	// counted since the interface (or process) started.
	ReadCounter(iface string, dir Direction) (uint64, error)
}

// InterfaceResolver names the interface carrying the primary transport connection.
type InterfaceResolver interface {
	// PrimaryInterface returns the interface name, or false when there is no
	// active connection.
	PrimaryInterface() (string, bool)
}
