package hostsim

import (
	"fmt"

	"github.com/svaunit/svabridge/bridge"
)

// Attempt is one scripted evaluation of a construct: it starts at Start,
// completes at End and passes or fails.
type Attempt struct {
	Start int64
	End   int64
	Pass  bool
}

// attemptRun is an attempt in flight.
type attemptRun struct {
	start     int64
	pass      bool
	cancelled bool
}

// construct is the assertion state attached to a construct node.
type construct struct {
	handle   bridge.Handle
	disabled bool
	stepping bool
	inflight []*attemptRun

	failedCovered    int64
	succeededCovered int64
}

// cancelInflight drops every in-flight attempt and reports how many there were.
func (c *construct) cancelInflight() int {
	n := len(c.inflight)
	for _, r := range c.inflight {
		r.cancelled = true
	}
	c.inflight = nil
	return n
}

func (c *construct) finish(run *attemptRun) bool {
	for i, r := range c.inflight {
		if r == run {
			c.inflight = append(c.inflight[:i], c.inflight[i+1:]...)
			return true
		}
	}
	return false
}

// node is one element of the design hierarchy.
type node struct {
	typ      bridge.ObjectType
	name     string
	fullName string
	parent   bridge.Handle
	children []bridge.Handle
	value    int64
	assert   *construct
}

// childTypes lists the node types that may appear under each parent type.
var childTypes = map[bridge.ObjectType]map[bridge.ObjectType]bool{
	bridge.TypeModule:        scopeChildren,
	bridge.TypeInterface:     scopeChildren,
	bridge.TypeProgram:       scopeChildren,
	bridge.TypeGenScope:      scopeChildren,
	bridge.TypeGenScopeArray: {bridge.TypeGenScope: true},
}

var scopeChildren = map[bridge.ObjectType]bool{
	bridge.TypeModule:          true,
	bridge.TypeInterface:       true,
	bridge.TypeProgram:         true,
	bridge.TypeGenScope:        true,
	bridge.TypeGenScopeArray:   true,
	bridge.TypeParameter:       true,
	bridge.TypeAssert:          true,
	bridge.TypeImmediateAssert: true,
	bridge.TypeCover:           true,
	bridge.TypePropertyDecl:    true,
	bridge.TypePropertyInst:    true,
}

func (s *Simulator) node(h bridge.Handle) *node {
	if h == bridge.NilHandle || int(h) > len(s.nodes) {
		return nil
	}
	return s.nodes[h-1]
}

// AddNode adds a node of type typ called name under parent and returns its
// handle. A NilHandle parent adds a top-level module.
func (s *Simulator) AddNode(parent bridge.Handle, typ bridge.ObjectType, name string) (bridge.Handle, error) {
	if name == "" {
		return bridge.NilHandle, fmt.Errorf("adding %s: empty name", typ)
	}
	n := &node{typ: typ, name: name, fullName: name, parent: parent}

	if parent == bridge.NilHandle {
		if typ != bridge.TypeModule {
			return bridge.NilHandle, fmt.Errorf("adding %s %q: only modules may be top-level", typ, name)
		}
	} else {
		p := s.node(parent)
		if p == nil {
			return bridge.NilHandle, fmt.Errorf("adding %s %q: unknown parent handle %d", typ, name, parent)
		}
		if !childTypes[p.typ][typ] {
			return bridge.NilHandle, fmt.Errorf("adding %s %q: not allowed under %s %q", typ, name, p.typ, p.fullName)
		}
		// generated scopes are named after their array, e.g. top.g[0]
		base := p
		if p.typ == bridge.TypeGenScopeArray {
			base = s.node(p.parent)
		}
		n.fullName = base.fullName + "." + name
	}

	s.nodes = append(s.nodes, n)
	h := bridge.Handle(len(s.nodes))
	if parent == bridge.NilHandle {
		s.tops = append(s.tops, h)
	} else {
		p := s.node(parent)
		p.children = append(p.children, h)
	}
	if bridge.KindOf(typ) != bridge.KindUnknown {
		n.assert = &construct{handle: h}
		s.constructs = append(s.constructs, n.assert)
	}
	return h, nil
}

// AddParameter adds an integer parameter under parent.
func (s *Simulator) AddParameter(parent bridge.Handle, name string, value int64) (bridge.Handle, error) {
	h, err := s.AddNode(parent, bridge.TypeParameter, name)
	if err != nil {
		return h, err
	}
	s.node(h).value = value
	return h, nil
}

// AddAttempt schedules a scripted attempt on construct h.
func (s *Simulator) AddAttempt(h bridge.Handle, a Attempt) error {
	n := s.node(h)
	if n == nil || n.assert == nil {
		return fmt.Errorf("handle %d is not an assertion construct", h)
	}
	if a.Start < 0 || a.End < a.Start {
		return fmt.Errorf("%s: invalid attempt window [%d, %d]", n.fullName, a.Start, a.End)
	}
	s.schedule(&AttemptStartEvent{
		baseEvent: s.newBaseEvent(a.Start, EventTypeAttemptStart),
		construct: n.assert,
		attempt:   a,
	})
	return nil
}

// Lookup returns the handle of the node with the given full name.
func (s *Simulator) Lookup(fullName string) (bridge.Handle, bool) {
	for i, n := range s.nodes {
		if n.fullName == fullName {
			return bridge.Handle(i + 1), true
		}
	}
	return bridge.NilHandle, false
}

// Iterate implements bridge.Hierarchy.
func (s *Simulator) Iterate(rel bridge.Relation, parent bridge.Handle) []bridge.Handle {
	var candidates []bridge.Handle
	if parent == bridge.NilHandle {
		candidates = s.tops
	} else if p := s.node(parent); p != nil {
		candidates = p.children
	}

	var out []bridge.Handle
	for _, h := range candidates {
		if relationMatches(rel, s.node(h).typ) {
			out = append(out, h)
		}
	}
	return out
}

func relationMatches(rel bridge.Relation, t bridge.ObjectType) bool {
	switch rel {
	case bridge.RelModule:
		return t == bridge.TypeModule
	case bridge.RelInternalScope:
		return t == bridge.TypeModule || t == bridge.TypeInterface || t == bridge.TypeProgram || t == bridge.TypeGenScope
	case bridge.RelGenScopeArray:
		return t == bridge.TypeGenScopeArray
	case bridge.RelGenScope:
		return t == bridge.TypeGenScope
	case bridge.RelInterface:
		return t == bridge.TypeInterface
	case bridge.RelProgram:
		return t == bridge.TypeProgram
	case bridge.RelParameter:
		return t == bridge.TypeParameter
	case bridge.RelAssertion:
		return bridge.KindOf(t) != bridge.KindUnknown
	}
	return false
}

// Type implements bridge.Introspector.
func (s *Simulator) Type(h bridge.Handle) bridge.ObjectType {
	if n := s.node(h); n != nil {
		return n.typ
	}
	return bridge.TypeUnknown
}

// Name implements bridge.Introspector.
func (s *Simulator) Name(h bridge.Handle) string {
	if n := s.node(h); n != nil {
		return n.name
	}
	return ""
}

// FullName implements bridge.Introspector.
func (s *Simulator) FullName(h bridge.Handle) string {
	if n := s.node(h); n != nil {
		return n.fullName
	}
	return ""
}

// ParamValue implements bridge.Introspector.
func (s *Simulator) ParamValue(h bridge.Handle) (int64, bool) {
	n := s.node(h)
	if n == nil || n.typ != bridge.TypeParameter {
		return 0, false
	}
	return n.value, true
}

// CoverCounts implements bridge.Introspector. Non-cover handles report zero.
func (s *Simulator) CoverCounts(h bridge.Handle) (failed, succeeded int64) {
	n := s.node(h)
	if n == nil || n.typ != bridge.TypeCover {
		return 0, 0
	}
	return n.assert.failedCovered, n.assert.succeededCovered
}
