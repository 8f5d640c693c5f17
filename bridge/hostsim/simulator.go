// bridge/hostsim/simulator.go
package hostsim

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/svaunit/svabridge/bridge"
)

// ErrUnsupported is returned when a callback is requested that this host
// configuration cannot deliver.
var ErrUnsupported = errors.New("hostsim: unsupported callback")

var _ bridge.Simulator = (*Simulator)(nil)

// Config holds the host-level settings of a Simulator.
type Config struct {
	// Horizon is the last tick executed. Zero means unbounded.
	Horizon int64
	// TimeType selects how callback times are reported. Zero means SimTime.
	TimeType bridge.TimeType
	// Capabilities restricts which callbacks the host accepts.
	Capabilities bridge.Capabilities
}

// callback is one registered assertion callback.
type callback struct {
	id     bridge.CallbackID
	handle bridge.Handle
	reason bridge.RawReason
	fn     bridge.CallbackFunc
}

// ControlRecord captures one control operation received by the host.
type ControlRecord struct {
	Clock  int64
	Op     bridge.ControlType
	Target string // full name; empty for global operations
	Arg    bridge.ControlArg
}

// Simulator is a discrete-event host implementing bridge.Simulator.
// It owns a design hierarchy whose constructs run scripted attempts and
// invokes registered callbacks synchronously from its event loop.
type Simulator struct {
	Clock   int64
	Horizon int64

	timeType bridge.TimeType
	caps     bridge.Capabilities

	nodes      []*node
	tops       []bridge.Handle
	constructs []*construct

	events      *EventHeap
	nextEventID uint64

	callbacks  []*callback
	nextCallID bridge.CallbackID

	assertionsOff bool
	assertionsEnd bool

	// ControlLog has every control operation in arrival order.
	ControlLog []ControlRecord
}

// New creates an empty host.
func New(cfg Config) *Simulator {
	s := &Simulator{
		Horizon:  cfg.Horizon,
		timeType: cfg.TimeType,
		caps:     cfg.Capabilities,
		events:   NewEventHeap(),
	}
	if s.Horizon <= 0 {
		s.Horizon = math.MaxInt64
	}
	if s.timeType == 0 {
		s.timeType = bridge.SimTime
	}
	return s
}

func (s *Simulator) newBaseEvent(timestamp int64, eventType EventType) baseEvent {
	s.nextEventID++
	return baseEvent{timestamp: timestamp, eventID: s.nextEventID, eventType: eventType}
}

func (s *Simulator) schedule(ev Event) {
	s.events.Schedule(ev)
}

// At schedules fn to run at tick t, after the assertion events of that tick.
func (s *Simulator) At(t int64, fn func()) {
	if fn == nil {
		panic("At: fn must not be nil")
	}
	s.schedule(&TaskEvent{baseEvent: s.newBaseEvent(t, EventTypeTask), fn: fn})
}

// Run executes events in order until none remain or the horizon is passed.
func (s *Simulator) Run() {
	for s.events.Len() > 0 {
		if s.events.Peek().Timestamp() > s.Horizon {
			break
		}
		ev := s.events.PopNext()
		s.Clock = ev.Timestamp()
		logrus.Debugf("[tick %07d] Executing %T", s.Clock, ev)
		ev.Execute(s)
	}
	logrus.Infof("[tick %07d] Simulation ended", s.Clock)
}

// Pending returns the number of scheduled events.
func (s *Simulator) Pending() int { return s.events.Len() }

func (s *Simulator) timeValue(t int64) bridge.Time {
	if s.timeType == bridge.ScaledRealTime {
		return bridge.Time{Type: bridge.ScaledRealTime, Real: float64(t)}
	}
	return bridge.NewSimTime(t)
}

// RegisterAssertionCallback implements bridge.CallbackRegistry.
func (s *Simulator) RegisterAssertionCallback(h bridge.Handle, reason bridge.RawReason, fn bridge.CallbackFunc) (bridge.CallbackID, error) {
	n := s.node(h)
	if n == nil || n.assert == nil {
		return 0, fmt.Errorf("handle %d is not an assertion construct", h)
	}
	if fn == nil {
		return 0, fmt.Errorf("%s: nil callback", n.fullName)
	}
	if n.typ == bridge.TypePropertyDecl && !s.caps.PropertyDeclCallbacks {
		return 0, fmt.Errorf("%s: property declaration callbacks: %w", n.fullName, ErrUnsupported)
	}
	if (reason == bridge.CbAssertionStepSuccess || reason == bridge.CbAssertionStepFailure) && !s.caps.StepCallbacks {
		return 0, fmt.Errorf("%s: step reason %d: %w", n.fullName, reason, ErrUnsupported)
	}
	s.nextCallID++
	s.callbacks = append(s.callbacks, &callback{id: s.nextCallID, handle: h, reason: reason, fn: fn})
	return s.nextCallID, nil
}

// RemoveCallback implements bridge.CallbackRegistry.
func (s *Simulator) RemoveCallback(id bridge.CallbackID) error {
	for i, cb := range s.callbacks {
		if cb.id == id {
			s.callbacks = append(s.callbacks[:i], s.callbacks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("unknown callback id %d", id)
}

// Callbacks returns the number of registered callbacks.
func (s *Simulator) Callbacks() int { return len(s.callbacks) }

// fire invokes every callback registered for (h, reason). A nil info means
// the event is not tied to an attempt.
func (s *Simulator) fire(h bridge.Handle, reason bridge.RawReason, info *bridge.AttemptInfo) {
	if s.assertionsEnd {
		return
	}
	now := s.timeValue(s.Clock)
	// callbacks may register or remove callbacks; iterate a snapshot
	snapshot := make([]*callback, len(s.callbacks))
	copy(snapshot, s.callbacks)
	for _, cb := range snapshot {
		if cb.handle == h && cb.reason == reason {
			t := now
			cb.fn(reason, &t, h, info)
		}
	}
}

func (s *Simulator) startAttempt(c *construct, a Attempt) {
	if c.disabled || s.assertionsOff || s.assertionsEnd {
		return
	}
	run := &attemptRun{start: a.Start, pass: a.Pass}
	c.inflight = append(c.inflight, run)
	s.fire(c.handle, bridge.CbAssertionStart, s.attemptInfo(run))
	s.schedule(&AttemptEndEvent{
		baseEvent: s.newBaseEvent(a.End, EventTypeAttemptEnd),
		construct: c,
		run:       run,
	})
}

func (s *Simulator) endAttempt(c *construct, run *attemptRun) {
	if run.cancelled || !c.finish(run) {
		return
	}
	if s.assertionsOff || s.assertionsEnd {
		return
	}
	if s.node(c.handle).typ == bridge.TypeCover {
		if run.pass {
			c.succeededCovered++
		} else {
			c.failedCovered++
		}
	}

	info := s.attemptInfo(run)
	if c.stepping {
		if run.pass {
			s.fire(c.handle, bridge.CbAssertionStepSuccess, info)
		} else {
			s.fire(c.handle, bridge.CbAssertionStepFailure, info)
		}
	}
	if run.pass {
		s.fire(c.handle, bridge.CbAssertionSuccess, info)
	} else {
		s.fire(c.handle, bridge.CbAssertionFailure, info)
	}
}

func (s *Simulator) attemptInfo(run *attemptRun) *bridge.AttemptInfo {
	return &bridge.AttemptInfo{StartTime: s.timeValue(run.start)}
}
