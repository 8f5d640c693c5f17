package bridge

// Buffer is a freshly allocated, NUL-terminated copy of a string handed to a
// RawConsumer.
//
// Ownership: the callee may read the buffer only for the duration of the
// call and must copy anything it keeps. The producer releases the buffer as
// soon as the call returns, after which Bytes returns nil.
type Buffer struct {
	b []byte
}

// NewBuffer copies s into a new NUL-terminated buffer.
func NewBuffer(s string) *Buffer {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return &Buffer{b: b}
}

// Bytes returns the buffer contents including the trailing NUL.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.b
}

// String copies the contents up to the first NUL.
func (b *Buffer) String() string {
	if b == nil || len(b.b) == 0 {
		return ""
	}
	for i, c := range b.b {
		if c == 0 {
			return string(b.b[:i])
		}
	}
	return string(b.b)
}

// Released reports whether Release has been called.
func (b *Buffer) Released() bool { return b.b == nil }

// Release zeroes and drops the contents.
func (b *Buffer) Release() {
	clear(b.b)
	b.b = nil
}

// RawConsumer is a Consumer whose string arguments arrive as Buffers, the
// shape of a C-style foreign boundary.
type RawConsumer interface {
	SetScope(s Scope)
	CreateAssertion(name, kind *Buffer)
	ForwardEvent(requestor, name, kind *Buffer, reason Reason, startTime, callbackTime int64)
}

type rawAdapter struct {
	raw RawConsumer
}

// NewRawConsumer adapts raw to Consumer. Every string crosses the boundary in
// its own Buffer, released once the call returns.
func NewRawConsumer(raw RawConsumer) Consumer {
	return &rawAdapter{raw: raw}
}

func (a *rawAdapter) SetScope(s Scope) { a.raw.SetScope(s) }

func (a *rawAdapter) CreateAssertion(name, kind string) {
	n, k := NewBuffer(name), NewBuffer(kind)
	defer n.Release()
	defer k.Release()
	a.raw.CreateAssertion(n, k)
}

func (a *rawAdapter) ForwardEvent(requestor string, rec Record) {
	req, n, k := NewBuffer(requestor), NewBuffer(rec.Name), NewBuffer(rec.Kind)
	defer req.Release()
	defer n.Release()
	defer k.Release()
	a.raw.ForwardEvent(req, n, k, rec.Reason, rec.StartTime, rec.CallbackTime)
}
