// Package floor polls the floor request buttons, the stop button and the at-floor sensors,
// and pushes what changed to the controller.
package floor

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"dumbwaiter/src/signal"
	"dumbwaiter/src/types"
)

// Requester receives the updates. *controller.Controller and *api.Client both implement it.
type Requester interface {
	SetRequestedFloor(floor int)
	SetLastSeenFloor(floor int)
	SetStopRequested()
}

type lineKey struct {
	line  types.Line
	floor int
}

type Sensors struct {
	device    signal.Device
	requester Requester
	topFloor  int
	pollRate  time.Duration
	log       zerolog.Logger

	prev   map[lineKey]bool
	failed map[lineKey]bool
}

func NewSensors(device signal.Device, requester Requester, topFloor int, pollRate time.Duration, log zerolog.Logger) *Sensors {
	return &Sensors{
		device:    device,
		requester: requester,
		topFloor:  topFloor,
		pollRate:  pollRate,
		log:       log.With().Str("component", "floor").Logger(),
		prev:      make(map[lineKey]bool),
		failed:    make(map[lineKey]bool),
	}
}

// Run polls until ctx is cancelled.
func (s *Sensors) Run(ctx context.Context) {
	s.log.Info().Int("topFloor", s.topFloor).Dur("pollRate", s.pollRate).Msg("Starting floor sensor loop")
	ticker := time.NewTicker(s.pollRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("Floor sensor loop stopped")
			return
		case <-ticker.C:
			s.Poll()
		}
	}
}

// Poll reads every input once and reports rising edges.
func (s *Sensors) Poll() {
	for floor := 0; floor <= s.topFloor; floor++ {
		if s.risingEdge(types.AtFloor, floor) {
			s.log.Debug().Int("floor", floor).Msg("Car arrived at floor")
			s.requester.SetLastSeenFloor(floor)
		}
	}
	for floor := 0; floor <= s.topFloor; floor++ {
		if s.risingEdge(types.FloorRequested, floor) {
			s.log.Info().Int("floor", floor).Msg("Floor requested")
			s.requester.SetRequestedFloor(floor)
		}
	}
	if s.risingEdge(types.StopRequested, 0) {
		s.log.Info().Msg("Stop button pressed")
		s.requester.SetStopRequested()
	}
}

func (s *Sensors) risingEdge(line types.Line, floor int) bool {
	key := lineKey{line, floor}
	v, err := s.device.GetSignal(line, floor)
	if err != nil {
		if !s.failed[key] {
			level := zerolog.ErrorLevel
			if errors.Is(err, signal.ErrSignalUnknown) {
				level = zerolog.WarnLevel
			}
			s.log.WithLevel(level).Err(err).Stringer("line", line).Int("floor", floor).Msg("Reading input failed")
			s.failed[key] = true
		}
		return false
	}
	delete(s.failed, key)

	edge := v && !s.prev[key]
	s.prev[key] = v
	return edge
}
