package bridge

import "fmt"

// ConstructKind classifies a monitored construct.
type ConstructKind int

const (
	KindUnknown ConstructKind = iota
	KindConcurrentAssertion
	KindImmediateAssertion
	KindCoverProperty
	KindPropertyDecl
	KindPropertyInst
)

var kindLabels = map[ConstructKind]string{
	KindUnknown:             "UNKNOWN",
	KindConcurrentAssertion: "SVA",
	KindImmediateAssertion:  "IMMEDIATE",
	KindCoverProperty:       "COVER",
	KindPropertyDecl:        "PROPERTY",
	KindPropertyInst:        "PROPERTY_INST",
}

// Label is the kind name handed to the consumer.
func (k ConstructKind) Label() string {
	if s, ok := kindLabels[k]; ok {
		return s
	}
	return kindLabels[KindUnknown]
}

func (k ConstructKind) String() string { return k.Label() }

// KindOf maps a host object type to a construct kind.
// Non-assertion types map to KindUnknown.
func KindOf(t ObjectType) ConstructKind {
	switch t {
	case TypeAssert:
		return KindConcurrentAssertion
	case TypeImmediateAssert:
		return KindImmediateAssertion
	case TypeCover:
		return KindCoverProperty
	case TypePropertyDecl:
		return KindPropertyDecl
	case TypePropertyInst:
		return KindPropertyInst
	}
	return KindUnknown
}

// Construct is one discovered assertion, cover or property node.
type Construct struct {
	Handle   Handle
	Name     string
	FullName string
	Kind     ConstructKind
}

// Reason is the canonical callback reason forwarded to the consumer.
type Reason int

const (
	ReasonUnknown Reason = iota
	ReasonStart
	ReasonSuccess
	ReasonFailure
	ReasonDisable
	ReasonEnable
	ReasonReset
	ReasonKill
	ReasonStepSuccess
	ReasonStepFailure
)

var reasonNames = [...]string{
	ReasonUnknown:     "UNKNOWN",
	ReasonStart:       "START",
	ReasonSuccess:     "SUCCESS",
	ReasonFailure:     "FAILURE",
	ReasonDisable:     "DISABLE",
	ReasonEnable:      "ENABLE",
	ReasonReset:       "RESET",
	ReasonKill:        "KILL",
	ReasonStepSuccess: "STEP_SUCCESS",
	ReasonStepFailure: "STEP_FAILURE",
}

func (r Reason) String() string {
	if r >= 0 && int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// ParseReason is the inverse of Reason.String.
func ParseReason(s string) (Reason, bool) {
	for i, name := range reasonNames {
		if name == s {
			return Reason(i), true
		}
	}
	return ReasonUnknown, false
}

// Record is one triggered callback waiting to be forwarded.
type Record struct {
	Name         string
	Kind         string
	Reason       Reason
	StartTime    int64
	CallbackTime int64
}

func (r Record) String() string {
	return fmt.Sprintf("%s %s %s start=%d time=%d", r.Name, r.Kind, r.Reason, r.StartTime, r.CallbackTime)
}
