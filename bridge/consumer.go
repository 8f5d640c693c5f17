package bridge

// Scope is the consumer-side execution context events are forwarded into.
type Scope interface {
	FullName() string
}

// NamedScope is a Scope identified only by its hierarchical name.
type NamedScope string

// FullName implements Scope.
func (s NamedScope) FullName() string { return string(s) }

// Consumer is the test framework side of the bridge.
// Calls never fail from the bridge's point of view; a consumer that can fail
// internally must record the error itself.
type Consumer interface {
	// SetScope makes s the context for the calls that follow.
	SetScope(s Scope)
	// CreateAssertion announces a discovered construct.
	CreateAssertion(name, kind string)
	// ForwardEvent delivers one drained record on behalf of requestor.
	ForwardEvent(requestor string, rec Record)
}

// multiConsumer fans every call out to each consumer in order.
type multiConsumer []Consumer

// MultiConsumer returns a Consumer that forwards every call to each of cs in
// order. Nil entries are skipped.
func MultiConsumer(cs ...Consumer) Consumer {
	out := make(multiConsumer, 0, len(cs))
	for _, c := range cs {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

func (m multiConsumer) SetScope(s Scope) {
	for _, c := range m {
		c.SetScope(s)
	}
}

func (m multiConsumer) CreateAssertion(name, kind string) {
	for _, c := range m {
		c.CreateAssertion(name, kind)
	}
}

func (m multiConsumer) ForwardEvent(requestor string, rec Record) {
	for _, c := range m {
		c.ForwardEvent(requestor, rec)
	}
}
