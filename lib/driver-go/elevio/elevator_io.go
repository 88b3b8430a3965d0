// Package elevio talks to the elevator server (hardware or simulator) over TCP.
// Every command is a 4-byte frame; reads answer with a 4-byte frame.
package elevio

import (
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"
)

type MotorDirection int

const (
	MD_Up   MotorDirection = 1
	MD_Down MotorDirection = -1
	MD_Stop MotorDirection = 0
)

type ButtonType int

const (
	BT_HallUp ButtonType = iota
	BT_HallDown
	BT_Cab
)

const (
	cmdMotorDirection byte = iota + 1
	cmdButtonLamp
	cmdFloorIndicator
	cmdDoorOpenLamp
	cmdStopLamp
	cmdGetButton
	cmdGetFloor
	cmdGetStop
	cmdGetObstruction
)

const ioTimeout = 200 * time.Millisecond

var ErrClosed = errors.New("elevio: connection closed")

type Driver struct {
	mtx       sync.Mutex
	conn      net.Conn
	numFloors int
}

// Dial connects to the elevator server at addr.
func Dial(addr string, numFloors int) (*Driver, error) {
	conn, err := net.DialTimeout("tcp", addr, time.Second)
	if err != nil {
		return nil, fmt.Errorf("elevio: dial %s: %w", addr, err)
	}
	return &Driver{conn: conn, numFloors: numFloors}, nil
}

func (d *Driver) NumFloors() int {
	return d.numFloors
}

func (d *Driver) Close() error {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	if d.conn == nil {
		return nil
	}
	err := d.conn.Close()
	d.conn = nil
	return err
}

func (d *Driver) SetMotorDirection(dir MotorDirection) error {
	return d.write([4]byte{cmdMotorDirection, byte(dir), 0, 0})
}

func (d *Driver) SetFloorIndicator(floor int) error {
	return d.write([4]byte{cmdFloorIndicator, byte(floor), 0, 0})
}

func (d *Driver) GetButton(button ButtonType, floor int) (bool, error) {
	a, err := d.read([4]byte{cmdGetButton, byte(button), byte(floor), 0})
	if err != nil {
		return false, err
	}
	return toBool(a[1]), nil
}

// GetFloor returns the floor the car is at, or -1 between floors.
func (d *Driver) GetFloor() (int, error) {
	a, err := d.read([4]byte{cmdGetFloor, 0, 0, 0})
	if err != nil {
		return -1, err
	}
	if a[1] != 0 {
		return int(a[2]), nil
	}
	return -1, nil
}

func (d *Driver) GetStop() (bool, error) {
	a, err := d.read([4]byte{cmdGetStop, 0, 0, 0})
	if err != nil {
		return false, err
	}
	return toBool(a[1]), nil
}

func (d *Driver) read(in [4]byte) ([4]byte, error) {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	var out [4]byte
	if d.conn == nil {
		return out, ErrClosed
	}
	if err := d.conn.SetDeadline(time.Now().Add(ioTimeout)); err != nil {
		return out, fmt.Errorf("elevio: set deadline: %w", err)
	}
	if _, err := d.conn.Write(in[:]); err != nil {
		return out, fmt.Errorf("elevio: write command %d: %w", in[0], err)
	}
	if _, err := io.ReadFull(d.conn, out[:]); err != nil {
		return out, fmt.Errorf("elevio: read reply to %d: %w", in[0], err)
	}
	return out, nil
}

func (d *Driver) write(in [4]byte) error {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	if d.conn == nil {
		return ErrClosed
	}
	if err := d.conn.SetWriteDeadline(time.Now().Add(ioTimeout)); err != nil {
		return fmt.Errorf("elevio: set deadline: %w", err)
	}
	if _, err := d.conn.Write(in[:]); err != nil {
		return fmt.Errorf("elevio: write command %d: %w", in[0], err)
	}
	return nil
}

func toByte(a bool) byte {
	if a {
		return 1
	}
	return 0
}

func toBool(a byte) bool {
	return a != 0
}
