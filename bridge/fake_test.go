package bridge

import (
	"errors"
	"fmt"
)

// fakeNode is one node of a fakeSim hierarchy.
type fakeNode struct {
	typ       ObjectType
	name      string
	fullName  string
	children  []Handle
	value     int64
	failed    int64
	succeeded int64
}

type fakeCallback struct {
	id     CallbackID
	handle Handle
	reason RawReason
	fn     CallbackFunc
}

type fakeControl struct {
	op  ControlType
	h   Handle
	arg ControlArg
}

// fakeSim is a minimal Simulator whose callbacks are fired by hand.
type fakeSim struct {
	nodes     []*fakeNode
	tops      []Handle
	callbacks []fakeCallback
	nextID    CallbackID
	reject    map[RawReason]bool
	removed   []CallbackID

	controls    []fakeControl
	sysControls []ControlType
}

var errRejected = errors.New("rejected")

func newFakeSim() *fakeSim {
	return &fakeSim{reject: make(map[RawReason]bool)}
}

func (f *fakeSim) node(h Handle) *fakeNode {
	if h == NilHandle || int(h) > len(f.nodes) {
		return nil
	}
	return f.nodes[h-1]
}

// add creates a node under parent; NilHandle adds a top-level node.
func (f *fakeSim) add(parent Handle, typ ObjectType, name string) Handle {
	n := &fakeNode{typ: typ, name: name, fullName: name}
	if p := f.node(parent); p != nil {
		n.fullName = p.fullName + "." + name
	}
	f.nodes = append(f.nodes, n)
	h := Handle(len(f.nodes))
	if parent == NilHandle {
		f.tops = append(f.tops, h)
	} else {
		p := f.node(parent)
		p.children = append(p.children, h)
	}
	return h
}

func (f *fakeSim) Iterate(rel Relation, parent Handle) []Handle {
	candidates := f.tops
	if parent != NilHandle {
		candidates = f.node(parent).children
	}
	var out []Handle
	for _, h := range candidates {
		t := f.node(h).typ
		var ok bool
		switch rel {
		case RelModule:
			ok = t == TypeModule
		case RelInternalScope:
			ok = t == TypeModule || t == TypeInterface || t == TypeProgram || t == TypeGenScope
		case RelGenScopeArray:
			ok = t == TypeGenScopeArray
		case RelGenScope:
			ok = t == TypeGenScope
		case RelInterface:
			ok = t == TypeInterface
		case RelProgram:
			ok = t == TypeProgram
		case RelParameter:
			ok = t == TypeParameter
		case RelAssertion:
			ok = KindOf(t) != KindUnknown
		}
		if ok {
			out = append(out, h)
		}
	}
	return out
}

func (f *fakeSim) Type(h Handle) ObjectType {
	if n := f.node(h); n != nil {
		return n.typ
	}
	return TypeUnknown
}

func (f *fakeSim) Name(h Handle) string {
	if n := f.node(h); n != nil {
		return n.name
	}
	return ""
}

func (f *fakeSim) FullName(h Handle) string {
	if n := f.node(h); n != nil {
		return n.fullName
	}
	return ""
}

func (f *fakeSim) ParamValue(h Handle) (int64, bool) {
	if n := f.node(h); n != nil && n.typ == TypeParameter {
		return n.value, true
	}
	return 0, false
}

func (f *fakeSim) CoverCounts(h Handle) (int64, int64) {
	n := f.node(h)
	return n.failed, n.succeeded
}

func (f *fakeSim) RegisterAssertionCallback(h Handle, reason RawReason, fn CallbackFunc) (CallbackID, error) {
	if f.reject[reason] {
		return 0, fmt.Errorf("reason %d: %w", reason, errRejected)
	}
	f.nextID++
	f.callbacks = append(f.callbacks, fakeCallback{id: f.nextID, handle: h, reason: reason, fn: fn})
	return f.nextID, nil
}

func (f *fakeSim) RemoveCallback(id CallbackID) error {
	for i, cb := range f.callbacks {
		if cb.id == id {
			f.callbacks = append(f.callbacks[:i], f.callbacks[i+1:]...)
			f.removed = append(f.removed, id)
			return nil
		}
	}
	return fmt.Errorf("unknown callback %d", id)
}

func (f *fakeSim) Control(op ControlType, h Handle, arg ControlArg) {
	f.controls = append(f.controls, fakeControl{op: op, h: h, arg: arg})
}

func (f *fakeSim) SysControl(op ControlType) {
	f.sysControls = append(f.sysControls, op)
}

// fire invokes every callback registered for (h, raw).
func (f *fakeSim) fire(h Handle, raw RawReason, t *Time, info *AttemptInfo) {
	for _, cb := range f.callbacks {
		if cb.handle == h && cb.reason == raw {
			cb.fn(raw, t, h, info)
		}
	}
}

// reasonsFor lists the reasons registered on h, in registration order.
func (f *fakeSim) reasonsFor(h Handle) []RawReason {
	var out []RawReason
	for _, cb := range f.callbacks {
		if cb.handle == h {
			out = append(out, cb.reason)
		}
	}
	return out
}

// recordingConsumer keeps every consumer call in order.
type recordingConsumer struct {
	calls     []string
	scopes    []string
	created   [][2]string
	forwarded []Record
}

func (c *recordingConsumer) SetScope(s Scope) {
	c.scopes = append(c.scopes, s.FullName())
	c.calls = append(c.calls, "scope:"+s.FullName())
}

func (c *recordingConsumer) CreateAssertion(name, kind string) {
	c.created = append(c.created, [2]string{name, kind})
	c.calls = append(c.calls, "create:"+name)
}

func (c *recordingConsumer) ForwardEvent(requestor string, rec Record) {
	c.forwarded = append(c.forwarded, rec)
	c.calls = append(c.calls, fmt.Sprintf("event:%s:%s:%s", requestor, rec.Name, rec.Reason))
}

// simpleDesign builds top → ifc with constructs a1 (assert) and a2 (cover).
func simpleDesign() (*fakeSim, Handle, Handle) {
	f := newFakeSim()
	top := f.add(NilHandle, TypeModule, "top")
	ifc := f.add(top, TypeInterface, "ifc")
	a1 := f.add(ifc, TypeAssert, "a1")
	a2 := f.add(ifc, TypeCover, "a2")
	return f, a1, a2
}

func simTime(t int64) *Time {
	v := NewSimTime(t)
	return &v
}
