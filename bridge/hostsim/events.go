package hostsim

// EventType distinguishes scheduled host events.
type EventType string

const (
	EventTypeAttemptEnd   EventType = "AttemptEnd"
	EventTypeAttemptStart EventType = "AttemptStart"
	EventTypeTask         EventType = "Task"
)

// EventTypePriority defines ordering for simultaneous events.
// Lower values are processed first; tasks see every assertion event of
// their tick.
var EventTypePriority = map[EventType]int{
	EventTypeAttemptEnd:   1,
	EventTypeAttemptStart: 2,
	EventTypeTask:         3,
}

// Event is something the host executes at a point in simulation time.
type Event interface {
	Timestamp() int64
	EventID() uint64
	Type() EventType
	Execute(s *Simulator)
}

// baseEvent provides common event fields
type baseEvent struct {
	timestamp int64
	eventID   uint64
	eventType EventType
}

func (e *baseEvent) Timestamp() int64 { return e.timestamp }
func (e *baseEvent) EventID() uint64  { return e.eventID }
func (e *baseEvent) Type() EventType  { return e.eventType }

// AttemptStartEvent begins one scripted attempt of a construct.
type AttemptStartEvent struct {
	baseEvent
	construct *construct
	attempt   Attempt
}

func (e *AttemptStartEvent) Execute(s *Simulator) {
	s.startAttempt(e.construct, e.attempt)
}

// AttemptEndEvent completes an in-flight attempt unless it was cancelled.
type AttemptEndEvent struct {
	baseEvent
	construct *construct
	run       *attemptRun
}

func (e *AttemptEndEvent) Execute(s *Simulator) {
	s.endAttempt(e.construct, e.run)
}

// TaskEvent runs a caller-supplied action, typically a consumer request
// such as a drain or a control.
type TaskEvent struct {
	baseEvent
	fn func()
}

func (e *TaskEvent) Execute(s *Simulator) {
	e.fn()
}
