package relay

// State tracks a single user-send through the relay lifecycle.
type State int

const (
	StateIdle State = iota
	StateAwaitingSession
	StateStreaming
	StateFinalizing
	// StateCancelled is absorbing: once entered the send never reaches
	// finalizing and nothing is persisted.
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingSession:
		return "awaiting_session"
	case StateStreaming:
		return "streaming"
	case StateFinalizing:
		return "finalizing"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

var transitions = map[State][]State{
	StateIdle:            {StateAwaitingSession},
	StateAwaitingSession: {StateStreaming},
	StateStreaming:       {StateFinalizing, StateCancelled},
	StateFinalizing:      {StateIdle},
	StateCancelled:       {StateIdle},
}

// machine enforces the legal lifecycle. Illegal transitions are a
// programming error and are simply refused.
type machine struct {
	state State
}

func newMachine() *machine {
	return &machine{state: StateIdle}
}

func (m *machine) to(next State) bool {
	for _, allowed := range transitions[m.state] {
		if allowed == next {
			m.state = next
			return true
		}
	}
	return false
}

func (m *machine) current() State {
	return m.state
}
