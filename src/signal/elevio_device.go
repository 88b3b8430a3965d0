package signal

import (
	"fmt"

	"dumbwaiter/lib/driver-go/elevio"
	"dumbwaiter/src/types"
)

// ElevatorIO is the part of the elevio driver the device needs.
type ElevatorIO interface {
	SetMotorDirection(dir elevio.MotorDirection) error
	GetButton(button elevio.ButtonType, floor int) (bool, error)
	GetFloor() (int, error)
	GetStop() (bool, error)
}

// ElevioDevice maps the opener lines onto the elevator server's motor, the floor request
// buttons onto the cab buttons, and AtFloor onto the floor sensor.
type ElevioDevice struct {
	io ElevatorIO
}

func NewElevioDevice(io ElevatorIO) *ElevioDevice {
	return &ElevioDevice{io: io}
}

func (d *ElevioDevice) SendSignal(line types.Line) error {
	var dir elevio.MotorDirection
	switch line {
	case types.OpenerUp:
		dir = elevio.MD_Up
	case types.OpenerDown:
		dir = elevio.MD_Down
	case types.OpenerStop:
		dir = elevio.MD_Stop
	default:
		return fmt.Errorf("%w: %s", ErrNotOutput, line)
	}
	if err := d.io.SetMotorDirection(dir); err != nil {
		return fmt.Errorf("sending %s: %w", line, err)
	}
	return nil
}

func (d *ElevioDevice) GetSignal(line types.Line, floor int) (bool, error) {
	switch line {
	case types.FloorRequested:
		return d.io.GetButton(elevio.BT_Cab, floor)
	case types.StopRequested:
		return d.io.GetStop()
	case types.AtFloor:
		current, err := d.io.GetFloor()
		if err != nil {
			return false, err
		}
		return current == floor, nil
	}
	return false, fmt.Errorf("%w: %s", ErrSignalUnknown, line)
}
