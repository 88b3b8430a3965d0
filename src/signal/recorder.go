package signal

import (
	"sync"

	"github.com/tiendc/go-deepcopy"

	"dumbwaiter/src/types"
)

type input struct {
	line  types.Line
	floor int
}

// Recorder is an in-memory Device. It records every output sent and answers reads from values set
// with SetInput. Lines never set read as ErrSignalUnknown.
type Recorder struct {
	mu      sync.Mutex
	sent    []types.Line
	inputs  map[input]bool
	sendErr []error
}

func NewRecorder() *Recorder {
	return &Recorder{inputs: make(map[input]bool)}
}

func (r *Recorder) SendSignal(line types.Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !line.IsOutput() {
		return ErrNotOutput
	}
	if len(r.sendErr) > 0 {
		err := r.sendErr[0]
		r.sendErr = r.sendErr[1:]
		return err
	}
	r.sent = append(r.sent, line)
	return nil
}

func (r *Recorder) GetSignal(line types.Line, floor int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if line.IsOutput() {
		return false, ErrSignalUnknown
	}
	if line == types.StopRequested {
		floor = 0
	}
	v, ok := r.inputs[input{line, floor}]
	if !ok {
		return false, ErrSignalUnknown
	}
	return v, nil
}

// SetInput sets the value GetSignal returns for an input line.
func (r *Recorder) SetInput(line types.Line, floor int, value bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if line == types.StopRequested {
		floor = 0
	}
	r.inputs[input{line, floor}] = value
}

// FailNext makes the next len(errs) sends fail with the given errors, in order. Failed sends are not recorded.
func (r *Recorder) FailNext(errs ...error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sendErr = append(r.sendErr, errs...)
}

// Sent returns a copy of the outputs sent so far.
func (r *Recorder) Sent() []types.Line {
	r.mu.Lock()
	defer r.mu.Unlock()

	var sent []types.Line
	if err := deepcopy.Copy(&sent, r.sent); err != nil {
		panic(err)
	}
	return sent
}

// Reset forgets the recorded outputs.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
}
