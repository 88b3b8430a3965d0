// Package console is a keyboard panel for driving the dumbwaiter by hand:
// a digit requests that floor, 's' requests a stop, 'q' or Ctrl-C quits.
package console

import (
	"context"
	"fmt"

	"github.com/eiannone/keyboard"
	"github.com/rs/zerolog"

	"dumbwaiter/src/floor"
)

type ActionType int

const (
	None ActionType = iota
	RequestFloor
	RequestStop
	Quit
)

type Action struct {
	Type  ActionType
	Floor int
}

// ActionForKey maps a key press to an action. Digits above topFloor are ignored.
func ActionForKey(char rune, key keyboard.Key, topFloor int) Action {
	if key == keyboard.KeyCtrlC || key == keyboard.KeyEsc {
		return Action{Type: Quit}
	}
	switch {
	case char >= '0' && char <= '9':
		f := int(char - '0')
		if f > topFloor {
			return Action{Type: None}
		}
		return Action{Type: RequestFloor, Floor: f}
	case char == 's' || char == 'S':
		return Action{Type: RequestStop}
	case char == 'q' || char == 'Q':
		return Action{Type: Quit}
	}
	return Action{Type: None}
}

// Apply hands an action to the requester. It reports false for Quit.
func Apply(action Action, requester floor.Requester) bool {
	switch action.Type {
	case RequestFloor:
		requester.SetRequestedFloor(action.Floor)
	case RequestStop:
		requester.SetStopRequested()
	case Quit:
		return false
	}
	return true
}

// Run reads keys until quit is pressed or ctx is cancelled. cancel is called on quit.
func Run(ctx context.Context, cancel context.CancelFunc, requester floor.Requester, topFloor int, log zerolog.Logger) error {
	log = log.With().Str("component", "console").Logger()
	fmt.Printf("Press 0-%d to request a floor, s to stop, q to quit\n", topFloor)

	for ctx.Err() == nil {
		char, key, err := keyboard.GetSingleKey()
		if err != nil {
			return fmt.Errorf("reading key: %w", err)
		}
		action := ActionForKey(char, key, topFloor)
		if action.Type == None {
			continue
		}
		log.Debug().Int("action", int(action.Type)).Int("floor", action.Floor).Msg("Key pressed")
		if !Apply(action, requester) {
			cancel()
			return nil
		}
	}
	return nil
}
