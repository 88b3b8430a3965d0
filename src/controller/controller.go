// Package controller runs the dumbwaiter decision loop. Every tick it compares the requested floor with the
// last floor the car was seen at and the direction last commanded, and tells the opener to go up, go down or stop.
package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"dumbwaiter/src/config"
	"dumbwaiter/src/signal"
	"dumbwaiter/src/types"
)

var ErrAlreadyStarted = errors.New("controller: loop already started")

type Controller struct {
	requestedFloor   int // the car should move to this floor
	requestedFloorMu sync.RWMutex
	lastSeenFloor    int // the last floor reporting the car was seen at
	lastSeenFloorMu  sync.RWMutex
	movingDirection  types.Direction // last command sent to the opener
	movingDirMu      sync.RWMutex

	topFloor   int
	loopPeriod time.Duration
	device     signal.Device
	log        zerolog.Logger

	startMu sync.Mutex
	started bool
	done    chan struct{}
}

type Option func(*Controller)

// WithLoopPeriod sets the time between ticks.
func WithLoopPeriod(period time.Duration) Option {
	return func(c *Controller) {
		c.loopPeriod = period
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// New creates a stopped controller with unknown requested and last seen floors.
func New(topFloor int, device signal.Device, opts ...Option) *Controller {
	c := &Controller{
		requestedFloor:  types.UnknownFloor,
		lastSeenFloor:   types.UnknownFloor,
		movingDirection: types.Stopped,
		topFloor:        topFloor,
		loopPeriod:      config.DefaultLoopPeriod,
		device:          device,
		log:             zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With().Str("component", "controller").Logger()
	return c
}

// Start runs the decision loop in its own goroutine until ctx is cancelled. It returns immediately.
// A controller can only be started once.
func (c *Controller) Start(ctx context.Context) error {
	c.startMu.Lock()
	defer c.startMu.Unlock()
	if c.started {
		return ErrAlreadyStarted
	}
	c.started = true
	c.done = make(chan struct{})

	go c.processingLoop(ctx, c.done)
	return nil
}

// Wait blocks until a started loop has returned. It returns at once if the loop was never started.
func (c *Controller) Wait() {
	c.startMu.Lock()
	done := c.done
	c.startMu.Unlock()
	if done != nil {
		<-done
	}
}

func (c *Controller) processingLoop(ctx context.Context, done chan<- struct{}) {
	defer close(done)
	c.log.Info().Dur("period", c.loopPeriod).Int("topFloor", c.topFloor).Msg("Starting controller loop")

	ticker := time.NewTicker(c.loopPeriod)
	defer ticker.Stop()

	for {
		if ctx.Err() != nil {
			c.log.Info().Msg("Controller loop stopped")
			return
		}
		c.Tick()

		select {
		case <-ctx.Done():
			c.log.Info().Msg("Controller loop stopped")
			return
		case <-ticker.C:
		}
	}
}

// Tick runs the decision once. The three fields are read separately, so a tick may see a
// mix of old and new values; the next tick corrects for it.
func (c *Controller) Tick() {
	requested := c.GetRequestedFloor()
	lastSeen := c.GetLastSeenFloor()
	direction := c.GetMovingDirection()

	cmd, next, ok := Decide(requested, lastSeen, direction)
	if !ok {
		return
	}

	if err := c.device.SendSignal(cmd); err != nil {
		// direction is left alone so the next tick sends the command again
		c.log.Error().Err(err).Stringer("line", cmd).Msg("Failed to signal opener, retrying next tick")
		return
	}
	c.SetMovingDirection(next)
	c.log.Info().
		Stringer("line", cmd).
		Int("requestedFloor", requested).
		Int("lastSeenFloor", lastSeen).
		Stringer("direction", next).
		Msg("Opener signalled")
}

// Status reads the fields one after another; see types.Status.
func (c *Controller) Status() types.Status {
	return types.Status{
		MovingDirection: c.GetMovingDirection(),
		RequestedFloor:  c.GetRequestedFloor(),
		LastSeenFloor:   c.GetLastSeenFloor(),
		TopFloor:        c.topFloor,
	}
}

func (c *Controller) TopFloor() int {
	return c.topFloor
}

func (c *Controller) GetRequestedFloor() int {
	c.requestedFloorMu.RLock()
	defer c.requestedFloorMu.RUnlock()
	return c.requestedFloor
}

// SetRequestedFloor sets the target floor. It is not checked against the top floor.
func (c *Controller) SetRequestedFloor(floor int) {
	c.log.Debug().Int("floor", floor).Msg("Setting requested floor")
	c.requestedFloorMu.Lock()
	defer c.requestedFloorMu.Unlock()
	c.requestedFloor = floor
}

func (c *Controller) GetLastSeenFloor() int {
	c.lastSeenFloorMu.RLock()
	defer c.lastSeenFloorMu.RUnlock()
	return c.lastSeenFloor
}

func (c *Controller) SetLastSeenFloor(floor int) {
	c.log.Debug().Int("floor", floor).Msg("Setting last seen floor")
	c.lastSeenFloorMu.Lock()
	defer c.lastSeenFloorMu.Unlock()
	c.lastSeenFloor = floor
}

func (c *Controller) GetMovingDirection() types.Direction {
	c.movingDirMu.RLock()
	defer c.movingDirMu.RUnlock()
	return c.movingDirection
}

func (c *Controller) SetMovingDirection(direction types.Direction) {
	c.movingDirMu.Lock()
	defer c.movingDirMu.Unlock()
	c.movingDirection = direction
}

// SetStopRequested retargets the car to the floor it was last seen at, which makes the loop stop it.
func (c *Controller) SetStopRequested() {
	floor := c.GetLastSeenFloor()
	c.log.Info().Int("floor", floor).Msg("Stop requested")
	c.SetRequestedFloor(floor)
}
