package types

// Direction is the last motion command issued to the opener.
type Direction int

const (
	Up Direction = iota
	Down
	Stopped
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Line identifies a discrete hardware line. The opener lines are outputs, the rest are inputs.
type Line int

const (
	OpenerUp Line = iota
	OpenerDown
	OpenerStop
	FloorRequested // per floor
	StopRequested
	AtFloor // per floor
)

func (l Line) String() string {
	switch l {
	case OpenerUp:
		return "OpenerUp"
	case OpenerDown:
		return "OpenerDown"
	case OpenerStop:
		return "OpenerStop"
	case FloorRequested:
		return "FloorRequested"
	case StopRequested:
		return "StopRequested"
	case AtFloor:
		return "AtFloor"
	}
	return "Unknown"
}

// IsOutput reports whether the line drives the opener.
func (l Line) IsOutput() bool {
	return l == OpenerUp || l == OpenerDown || l == OpenerStop
}

// UnknownFloor is the sentinel position before any request or sensor report.
const UnknownFloor = -1

// Status is a point-in-time view of the controller. The fields are read one at a time,
// so a Status may combine values from different ticks.
type Status struct {
	MovingDirection Direction `json:"movingDirection"`
	RequestedFloor  int       `json:"requestedFloor"`
	LastSeenFloor   int       `json:"lastSeenFloor"`
	TopFloor        int       `json:"topFloor"`
}
