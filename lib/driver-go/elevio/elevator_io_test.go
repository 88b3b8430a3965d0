package elevio

import (
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer answers like the elevator simulator for a single connection.
type fakeServer struct {
	ln net.Listener

	mu       sync.Mutex
	floor    int
	stop     bool
	buttons  map[[2]int]bool
	received chan [4]byte
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := &fakeServer{ln: ln, floor: -1, buttons: map[[2]int]bool{}, received: make(chan [4]byte, 64)}
	go s.serve()
	t.Cleanup(func() { ln.Close() })
	return s
}

func (s *fakeServer) serve() {
	conn, err := s.ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		var in [4]byte
		if _, err := io.ReadFull(conn, in[:]); err != nil {
			return
		}
		s.mu.Lock()
		var out [4]byte
		reply := true
		switch in[0] {
		case cmdGetButton:
			out = [4]byte{cmdGetButton, toByte(s.buttons[[2]int{int(in[1]), int(in[2])}]), 0, 0}
		case cmdGetFloor:
			if s.floor >= 0 {
				out = [4]byte{cmdGetFloor, 1, byte(s.floor), 0}
			} else {
				out = [4]byte{cmdGetFloor, 0, 0, 0}
			}
		case cmdGetStop:
			out = [4]byte{cmdGetStop, toByte(s.stop), 0, 0}
		default:
			reply = false
		}
		s.mu.Unlock()
		s.received <- in
		if reply {
			if _, err := conn.Write(out[:]); err != nil {
				return
			}
		}
	}
}

func (s *fakeServer) next(t *testing.T) [4]byte {
	t.Helper()
	select {
	case f := <-s.received:
		return f
	case <-time.After(time.Second):
		t.Fatal("no frame received")
	}
	return [4]byte{}
}

func TestMotorDirectionFrames(t *testing.T) {
	srv := newFakeServer(t)
	drv, err := Dial(srv.ln.Addr().String(), 4)
	require.NoError(t, err)
	defer drv.Close()

	require.NoError(t, drv.SetMotorDirection(MD_Up))
	assert.Equal(t, [4]byte{cmdMotorDirection, 1, 0, 0}, srv.next(t))

	require.NoError(t, drv.SetMotorDirection(MD_Down))
	assert.Equal(t, [4]byte{cmdMotorDirection, 255, 0, 0}, srv.next(t))

	require.NoError(t, drv.SetMotorDirection(MD_Stop))
	assert.Equal(t, [4]byte{cmdMotorDirection, 0, 0, 0}, srv.next(t))

	require.NoError(t, drv.SetFloorIndicator(2))
	assert.Equal(t, [4]byte{cmdFloorIndicator, 2, 0, 0}, srv.next(t))
}

func TestReads(t *testing.T) {
	srv := newFakeServer(t)
	srv.mu.Lock()
	srv.floor = 2
	srv.stop = true
	srv.buttons[[2]int{int(BT_Cab), 1}] = true
	srv.mu.Unlock()

	drv, err := Dial(srv.ln.Addr().String(), 4)
	require.NoError(t, err)
	defer drv.Close()

	floor, err := drv.GetFloor()
	require.NoError(t, err)
	assert.Equal(t, 2, floor)

	stop, err := drv.GetStop()
	require.NoError(t, err)
	assert.True(t, stop)

	pressed, err := drv.GetButton(BT_Cab, 1)
	require.NoError(t, err)
	assert.True(t, pressed)

	pressed, err = drv.GetButton(BT_Cab, 3)
	require.NoError(t, err)
	assert.False(t, pressed)
}

func TestBetweenFloors(t *testing.T) {
	srv := newFakeServer(t)
	drv, err := Dial(srv.ln.Addr().String(), 4)
	require.NoError(t, err)
	defer drv.Close()

	floor, err := drv.GetFloor()
	require.NoError(t, err)
	assert.Equal(t, -1, floor)
}

func TestClosedDriver(t *testing.T) {
	srv := newFakeServer(t)
	drv, err := Dial(srv.ln.Addr().String(), 4)
	require.NoError(t, err)
	require.NoError(t, drv.Close())

	assert.ErrorIs(t, drv.SetMotorDirection(MD_Up), ErrClosed)
	_, err = drv.GetFloor()
	assert.ErrorIs(t, err, ErrClosed)
	assert.NoError(t, drv.Close())
}

func TestDialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	_, err = Dial(addr, 4)
	assert.Error(t, err)
}
