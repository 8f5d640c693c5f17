package bridge

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrNoActiveScope is returned by Drain when no active scope has been set.
// Forwarding without one would deliver events into the wrong context.
var ErrNoActiveScope = errors.New("bridge: no active scope")

// registration is one callback attached by the registrar.
type registration struct {
	handle Handle
	reason RawReason
	id     CallbackID
}

// Bridge is the context object shared by every bridge operation: the
// discovery list, the record queue and the active scope of one simulation.
// Several Bridges may coexist in a process.
//
// All operations are expected to run on the host simulator's thread. The
// record queue alone tolerates concurrent producers.
type Bridge struct {
	ID uuid.UUID

	sim      Simulator
	consumer Consumer
	caps     Capabilities

	scope         Scope
	constructs    []Construct
	registrations []registration
	queue         *RecordQueue

	log *logrus.Entry
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithCapabilities sets the host capability descriptor.
// The default is FullCapabilities.
func WithCapabilities(c Capabilities) Option {
	return func(b *Bridge) { b.caps = c }
}

// WithLogger routes the bridge's log output through l.
func WithLogger(l *logrus.Logger) Option {
	return func(b *Bridge) { b.log = l.WithField("bridge", b.ID.String()) }
}

// New creates a Bridge between sim and consumer.
func New(sim Simulator, consumer Consumer, opts ...Option) *Bridge {
	if sim == nil {
		panic("bridge.New: sim must not be nil")
	}
	if consumer == nil {
		panic("bridge.New: consumer must not be nil")
	}
	b := &Bridge{
		ID:       uuid.New(),
		sim:      sim,
		consumer: consumer,
		caps:     FullCapabilities,
		queue:    NewRecordQueue(),
	}
	b.log = logrus.WithField("bridge", b.ID.String())
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Capabilities returns the host capability descriptor in use.
func (b *Bridge) Capabilities() Capabilities { return b.caps }

// SetActiveScope records the consumer context used when forwarding events
// and makes it current on the consumer.
func (b *Bridge) SetActiveScope(s Scope) {
	b.scope = s
	if s != nil {
		b.consumer.SetScope(s)
	}
}

// ActiveScope returns the scope set by SetActiveScope, or nil.
func (b *Bridge) ActiveScope() Scope { return b.scope }

// activeScopeName is the full name used by the self-exclusion guard.
func (b *Bridge) activeScopeName() string {
	if b.scope == nil {
		return ""
	}
	return b.scope.FullName()
}

// RegisterAssertions runs a discovery pass, replaces the discovery list
// with its result and, for each construct in order, notifies the consumer
// and then attaches callbacks. It returns the number of constructs found.
//
// Running it twice attaches a second set of callbacks to every construct.
func (b *Bridge) RegisterAssertions() int {
	if b.scope != nil {
		b.consumer.SetScope(b.scope)
	}
	b.log.Info("Registering assertions")

	b.constructs = b.Discover()
	for _, c := range b.constructs {
		b.log.Infof("Registering assertion: %s with type: %s", c.Name, c.Kind.Label())
		b.consumer.CreateAssertion(c.Name, c.Kind.Label())
		b.register(c)
	}
	return len(b.constructs)
}

// Constructs returns a copy of the discovery list.
func (b *Bridge) Constructs() []Construct {
	out := make([]Construct, len(b.constructs))
	copy(out, b.constructs)
	return out
}

// Pending returns the number of records waiting to be drained.
func (b *Bridge) Pending() int { return b.queue.Len() }

// Release removes every callback the bridge attached and clears the
// discovery list. Queued records are kept and can still be drained.
func (b *Bridge) Release() error {
	var errs []error
	for _, r := range b.registrations {
		if err := b.sim.RemoveCallback(r.id); err != nil {
			errs = append(errs, fmt.Errorf("removing callback %d on %q: %w", r.id, b.sim.Name(r.handle), err))
		}
	}
	b.log.Infof("Released %d callbacks", len(b.registrations))
	b.registrations = nil
	b.constructs = nil
	return errors.Join(errs...)
}
