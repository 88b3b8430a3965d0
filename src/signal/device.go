//go:generate mockgen -destination=./mock_signal/signal_mock.go dumbwaiter/src/signal Device

// Package signal is the boundary between the controller and the discrete hardware lines.
package signal

import (
	"errors"

	"dumbwaiter/src/types"
)

var (
	// ErrSignalUnknown is returned when a line is not wired to anything.
	ErrSignalUnknown = errors.New("signal: line not wired")
	// ErrNotOutput is returned when SendSignal is called with an input line.
	ErrNotOutput = errors.New("signal: not an output line")
)

// Device sends and reads discrete hardware lines.
// SendSignal is fire-and-forget: no delivery confirmation is modelled. It must not block indefinitely.
// GetSignal must not block; floor is ignored for lines that are not per floor.
type Device interface {
	SendSignal(line types.Line) error
	GetSignal(line types.Line, floor int) (bool, error)
}
