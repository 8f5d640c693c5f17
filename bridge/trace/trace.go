package trace

import (
	"fmt"
	"io"

	"github.com/svaunit/svabridge/bridge"
)

// Collector is a bridge.Consumer that keeps everything it receives.
type Collector struct {
	Assertions []AssertionRecord
	Events     []EventRecord
	// ScopeChanges counts SetScope calls.
	ScopeChanges int

	scope string
}

var _ bridge.Consumer = (*Collector)(nil)

// NewCollector creates a Collector ready for recording.
func NewCollector() *Collector {
	return &Collector{
		Assertions: make([]AssertionRecord, 0),
		Events:     make([]EventRecord, 0),
	}
}

// SetScope implements bridge.Consumer.
func (c *Collector) SetScope(s bridge.Scope) {
	c.ScopeChanges++
	c.scope = s.FullName()
}

// Scope returns the full name of the current scope.
func (c *Collector) Scope() string { return c.scope }

// CreateAssertion implements bridge.Consumer.
func (c *Collector) CreateAssertion(name, kind string) {
	c.Assertions = append(c.Assertions, AssertionRecord{Name: name, Kind: kind})
}

// ForwardEvent implements bridge.Consumer.
func (c *Collector) ForwardEvent(requestor string, rec bridge.Record) {
	c.Events = append(c.Events, EventRecord{Requestor: requestor, Scope: c.scope, Record: rec})
}

// EventsFor returns the events of the construct called name, in order.
func (c *Collector) EventsFor(name string) []EventRecord {
	var out []EventRecord
	for _, e := range c.Events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// Reasons returns the reason of every recorded event, in order.
func (c *Collector) Reasons() []bridge.Reason {
	out := make([]bridge.Reason, len(c.Events))
	for i, e := range c.Events {
		out[i] = e.Reason
	}
	return out
}

// WriteTo writes one line per notice and per event.
func (c *Collector) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, a := range c.Assertions {
		n, err := fmt.Fprintf(w, "create %s %s\n", a.Name, a.Kind)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	for _, e := range c.Events {
		n, err := fmt.Fprintf(w, "event %s %s %s %s start=%d time=%d\n",
			e.Requestor, e.Name, e.Kind, e.Reason, e.StartTime, e.CallbackTime)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
