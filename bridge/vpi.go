package bridge

import "fmt"

// Handle is an opaque reference to a node in the host's design hierarchy.
// Handles are owned by the simulator; the bridge only stores them.
type Handle uint32

// NilHandle is the absent handle. Passed as a parent it selects the top level.
const NilHandle Handle = 0

// ObjectType classifies a hierarchy node.
type ObjectType int

const (
	TypeUnknown ObjectType = iota
	TypeModule
	TypeInterface
	TypeProgram
	TypeGenScope
	TypeGenScopeArray
	TypeParameter
	TypeAssert
	TypeImmediateAssert
	TypeCover
	TypePropertyDecl
	TypePropertyInst
)

var objectTypeNames = map[ObjectType]string{
	TypeUnknown:         "unknown",
	TypeModule:          "module",
	TypeInterface:       "interface",
	TypeProgram:         "program",
	TypeGenScope:        "gen_scope",
	TypeGenScopeArray:   "gen_scope_array",
	TypeParameter:       "parameter",
	TypeAssert:          "assert",
	TypeImmediateAssert: "immediate_assert",
	TypeCover:           "cover",
	TypePropertyDecl:    "property_decl",
	TypePropertyInst:    "property_inst",
}

func (t ObjectType) String() string {
	if s, ok := objectTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("ObjectType(%d)", int(t))
}

// ParseObjectType maps a lower-case type name back to its ObjectType.
func ParseObjectType(s string) (ObjectType, bool) {
	for t, name := range objectTypeNames {
		if name == s && t != TypeUnknown {
			return t, true
		}
	}
	return TypeUnknown, false
}

// Relation selects which children Iterate returns.
type Relation int

const (
	RelModule Relation = iota + 1
	RelInternalScope
	RelGenScopeArray
	RelGenScope
	RelInterface
	RelProgram
	RelParameter
	RelAssertion
)

// RawReason is the host's numeric callback reason.
// Values follow the IEEE 1800 cbAssertion* codes.
type RawReason int32

const (
	CbAssertionStart       RawReason = 606
	CbAssertionSuccess     RawReason = 607
	CbAssertionFailure     RawReason = 608
	CbAssertionStepSuccess RawReason = 609
	CbAssertionStepFailure RawReason = 610
	CbAssertionDisable     RawReason = 611
	CbAssertionEnable      RawReason = 612
	CbAssertionReset       RawReason = 613
	CbAssertionKill        RawReason = 614
)

// ControlType is an assertion control operation understood by the host.
// Values follow the IEEE 1800 vpiAssertion* control codes.
type ControlType int32

const (
	ControlDisable     ControlType = 620
	ControlEnable      ControlType = 621
	ControlReset       ControlType = 622
	ControlKill        ControlType = 623
	ControlEnableStep  ControlType = 624
	ControlDisableStep ControlType = 625
	ControlSysOn       ControlType = 627
	ControlSysOff      ControlType = 628
	ControlSysEnd      ControlType = 629
	ControlSysReset    ControlType = 630
)

// ClockSteps is the step-size selector passed with step controls.
const ClockSteps int32 = 626

var controlTypeNames = map[ControlType]string{
	ControlReset:       "RESET",
	ControlDisable:     "DISABLE",
	ControlEnable:      "ENABLE",
	ControlKill:        "KILL",
	ControlEnableStep:  "ENABLE_STEP",
	ControlDisableStep: "DISABLE_STEP",
	ControlSysReset:    "SYS_RESET",
	ControlSysOn:       "SYS_ON",
	ControlSysOff:      "SYS_OFF",
	ControlSysEnd:      "SYS_END",
}

func (c ControlType) String() string {
	if s, ok := controlTypeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("ControlType(%d)", int32(c))
}

// ParseControlType accepts the upper-case control names (e.g. "SYS_OFF").
func ParseControlType(s string) (ControlType, error) {
	for c, name := range controlTypeNames {
		if name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown control type %q", s)
}

// IsGlobal reports whether c applies to the whole assertion subsystem.
func (c ControlType) IsGlobal() bool {
	switch c {
	case ControlSysReset, ControlSysOn, ControlSysOff, ControlSysEnd:
		return true
	}
	return false
}

// TimeType selects which field of a Time carries the value.
type TimeType int

const (
	SimTime TimeType = iota + 1
	ScaledRealTime
)

// Time is a host time value in one of two representations.
type Time struct {
	Type TimeType
	High uint32
	Low  uint32
	Real float64
}

// NewSimTime splits t into the high/low words of a SimTime value.
func NewSimTime(t int64) Time {
	return Time{Type: SimTime, High: uint32(uint64(t) >> 32), Low: uint32(uint64(t))}
}

// Ticks returns the integer time carried by t. Scaled real values are truncated.
func (t Time) Ticks() int64 {
	switch t.Type {
	case ScaledRealTime:
		return int64(t.Real)
	case SimTime:
		return int64(uint64(t.High)<<32 | uint64(t.Low))
	}
	return 0
}

// AttemptInfo describes the assertion attempt a callback belongs to.
type AttemptInfo struct {
	StartTime Time
}

// CallbackFunc is invoked by the host when an assertion event occurs.
// cbTime and info may be nil.
type CallbackFunc func(reason RawReason, cbTime *Time, h Handle, info *AttemptInfo)

// CallbackID identifies one registered callback for later removal.
type CallbackID uint64

// ControlArg carries the optional arguments of a per-construct control.
type ControlArg struct {
	Time     Time
	StepSize int32
}

// Hierarchy walks the host's design hierarchy.
// An absent relation yields an empty slice.
type Hierarchy interface {
	Iterate(rel Relation, parent Handle) []Handle
}

// Introspector reads node attributes.
type Introspector interface {
	Type(h Handle) ObjectType
	Name(h Handle) string
	FullName(h Handle) string
	// ParamValue returns the integer value of a parameter node.
	ParamValue(h Handle) (int64, bool)
	// CoverCounts returns the cumulative triggered-and-failed and
	// triggered-and-succeeded counts of a cover construct.
	CoverCounts(h Handle) (failed, succeeded int64)
}

// CallbackRegistry attaches and removes assertion callbacks.
type CallbackRegistry interface {
	RegisterAssertionCallback(h Handle, reason RawReason, fn CallbackFunc) (CallbackID, error)
	RemoveCallback(id CallbackID) error
}

// Controller applies assertion control operations.
type Controller interface {
	Control(op ControlType, h Handle, arg ControlArg)
	SysControl(op ControlType)
}

// Simulator is the full host surface used by the bridge.
type Simulator interface {
	Hierarchy
	Introspector
	CallbackRegistry
	Controller
}
