package signal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dumbwaiter/lib/driver-go/elevio"
	"dumbwaiter/src/types"
)

type fakeElevatorIO struct {
	dirs    []elevio.MotorDirection
	floor   int
	stop    bool
	cab     map[int]bool
	failErr error
}

func (f *fakeElevatorIO) SetMotorDirection(dir elevio.MotorDirection) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.dirs = append(f.dirs, dir)
	return nil
}

func (f *fakeElevatorIO) GetButton(button elevio.ButtonType, floor int) (bool, error) {
	if button != elevio.BT_Cab {
		return false, nil
	}
	return f.cab[floor], f.failErr
}

func (f *fakeElevatorIO) GetFloor() (int, error) {
	return f.floor, f.failErr
}

func (f *fakeElevatorIO) GetStop() (bool, error) {
	return f.stop, f.failErr
}

func TestElevioDeviceSendsMotorDirections(t *testing.T) {
	io := &fakeElevatorIO{}
	dev := NewElevioDevice(io)

	require.NoError(t, dev.SendSignal(types.OpenerUp))
	require.NoError(t, dev.SendSignal(types.OpenerStop))
	require.NoError(t, dev.SendSignal(types.OpenerDown))

	assert.Equal(t, []elevio.MotorDirection{elevio.MD_Up, elevio.MD_Stop, elevio.MD_Down}, io.dirs)
}

func TestElevioDeviceRejectsInputLines(t *testing.T) {
	dev := NewElevioDevice(&fakeElevatorIO{})
	assert.ErrorIs(t, dev.SendSignal(types.AtFloor), ErrNotOutput)
}

func TestElevioDeviceWrapsDriverErrors(t *testing.T) {
	boom := errors.New("connection reset")
	dev := NewElevioDevice(&fakeElevatorIO{failErr: boom})
	assert.ErrorIs(t, dev.SendSignal(types.OpenerUp), boom)
}

func TestElevioDeviceReads(t *testing.T) {
	io := &fakeElevatorIO{floor: 2, stop: true, cab: map[int]bool{1: true}}
	dev := NewElevioDevice(io)

	at, err := dev.GetSignal(types.AtFloor, 2)
	require.NoError(t, err)
	assert.True(t, at)

	at, err = dev.GetSignal(types.AtFloor, 1)
	require.NoError(t, err)
	assert.False(t, at)

	requested, err := dev.GetSignal(types.FloorRequested, 1)
	require.NoError(t, err)
	assert.True(t, requested)

	stop, err := dev.GetSignal(types.StopRequested, 0)
	require.NoError(t, err)
	assert.True(t, stop)

	_, err = dev.GetSignal(types.OpenerUp, 0)
	assert.ErrorIs(t, err, ErrSignalUnknown)
}

func TestRecorderRecordsOutputs(t *testing.T) {
	rec := NewRecorder()
	assert.Empty(t, rec.Sent())

	require.NoError(t, rec.SendSignal(types.OpenerUp))
	require.NoError(t, rec.SendSignal(types.OpenerStop))
	assert.ErrorIs(t, rec.SendSignal(types.FloorRequested), ErrNotOutput)

	sent := rec.Sent()
	assert.Equal(t, []types.Line{types.OpenerUp, types.OpenerStop}, sent)

	// the returned slice is a copy
	sent[0] = types.OpenerDown
	assert.Equal(t, types.OpenerUp, rec.Sent()[0])

	rec.Reset()
	assert.Empty(t, rec.Sent())
}

func TestRecorderFailNext(t *testing.T) {
	rec := NewRecorder()
	boom := errors.New("opener unplugged")
	rec.FailNext(boom)

	assert.ErrorIs(t, rec.SendSignal(types.OpenerUp), boom)
	assert.NoError(t, rec.SendSignal(types.OpenerUp))
	assert.Equal(t, []types.Line{types.OpenerUp}, rec.Sent())
}

func TestRecorderInputs(t *testing.T) {
	rec := NewRecorder()

	_, err := rec.GetSignal(types.AtFloor, 1)
	assert.ErrorIs(t, err, ErrSignalUnknown)

	rec.SetInput(types.AtFloor, 1, true)
	rec.SetInput(types.StopRequested, 3, true)

	at, err := rec.GetSignal(types.AtFloor, 1)
	require.NoError(t, err)
	assert.True(t, at)

	stop, err := rec.GetSignal(types.StopRequested, 0)
	require.NoError(t, err)
	assert.True(t, stop)
}
