package controller

import "dumbwaiter/src/types"

// Decide returns the opener command for one tick and the direction to record once it is sent.
// ok is false when nothing should be sent.
//
// Reversing always takes two ticks: the car is stopped first and sent the other way on the next tick.
func Decide(requested, lastSeen int, direction types.Direction) (cmd types.Line, next types.Direction, ok bool) {
	switch {
	case requested > lastSeen:
		switch direction {
		case types.Stopped:
			return types.OpenerUp, types.Up, true
		case types.Down:
			return types.OpenerStop, types.Stopped, true
		}
	case requested < lastSeen:
		switch direction {
		case types.Stopped:
			return types.OpenerDown, types.Down, true
		case types.Up:
			return types.OpenerStop, types.Stopped, true
		}
	default:
		if direction != types.Stopped {
			return types.OpenerStop, types.Stopped, true
		}
	}
	return 0, direction, false
}
