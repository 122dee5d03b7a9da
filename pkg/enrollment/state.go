package enrollment

// State is the lifecycle position of an enrollment session.
type State string

const (
	StateUnenrolled   State = "unenrolled"
	StateSecretIssued State = "secret_issued"
	StateVerified     State = "verified"
	StateAbandoned    State = "abandoned"
)

func (s State) Name() string { return string(s) }

// Event drives a State change.
type Event string

const (
	EventIssue   Event = "issue"
	EventConfirm Event = "confirm"
	EventAbandon Event = "abandon"
	EventExpire  Event = "expire"
)

func (e Event) Name() string { return string(e) }

type edge struct {
	from  State
	event Event
}

var transitions = map[edge]State{
	{StateUnenrolled, EventIssue}:     StateSecretIssued,
	{StateSecretIssued, EventConfirm}: StateVerified,
	{StateSecretIssued, EventAbandon}: StateAbandoned,
	{StateSecretIssued, EventExpire}:  StateAbandoned,
	{StateAbandoned, EventIssue}:      StateSecretIssued,
}

// Transition returns the state reached from `from` on event. It has no side
// effects; the caller owns the session object. Verified is terminal.
func Transition(from State, event Event) (State, error) {
	to, ok := transitions[edge{from, event}]
	if !ok {
		return from, NewErrNoTransitionAvailable(from.Name(), event.Name())
	}
	return to, nil
}

// CanTransition reports whether event is valid in state from.
func CanTransition(from State, event Event) bool {
	_, ok := transitions[edge{from, event}]
	return ok
}
