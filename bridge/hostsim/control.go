package hostsim

import (
	"github.com/sirupsen/logrus"

	"github.com/svaunit/svabridge/bridge"
)

// Control implements bridge.Controller for per-construct operations.
// Operations on unknown handles or with global types are ignored.
func (s *Simulator) Control(op bridge.ControlType, h bridge.Handle, arg bridge.ControlArg) {
	n := s.node(h)
	if n == nil || n.assert == nil || op.IsGlobal() {
		logrus.Warnf("[tick %07d] Ignoring control %s on handle %d", s.Clock, op, h)
		return
	}
	s.ControlLog = append(s.ControlLog, ControlRecord{Clock: s.Clock, Op: op, Target: n.fullName, Arg: arg})

	c := n.assert
	switch op {
	case bridge.ControlReset:
		c.cancelInflight()
		s.fire(h, bridge.CbAssertionReset, nil)
	case bridge.ControlKill:
		c.cancelInflight()
		s.fire(h, bridge.CbAssertionKill, nil)
	case bridge.ControlDisable:
		c.disabled = true
		s.fire(h, bridge.CbAssertionDisable, nil)
	case bridge.ControlEnable:
		c.disabled = false
		s.fire(h, bridge.CbAssertionEnable, nil)
	case bridge.ControlEnableStep:
		c.stepping = true
	case bridge.ControlDisableStep:
		c.stepping = false
	}
}

// SysControl implements bridge.Controller for global operations.
func (s *Simulator) SysControl(op bridge.ControlType) {
	if !op.IsGlobal() {
		logrus.Warnf("[tick %07d] Ignoring non-global control %s", s.Clock, op)
		return
	}
	s.ControlLog = append(s.ControlLog, ControlRecord{Clock: s.Clock, Op: op})
	logrus.Infof("[tick %07d] Assertion system control %s", s.Clock, op)

	switch op {
	case bridge.ControlSysReset:
		for _, c := range s.constructs {
			c.cancelInflight()
			s.fire(c.handle, bridge.CbAssertionReset, nil)
		}
	case bridge.ControlSysOff:
		s.assertionsOff = true
	case bridge.ControlSysOn:
		s.assertionsOff = false
	case bridge.ControlSysEnd:
		for _, c := range s.constructs {
			c.cancelInflight()
		}
		s.assertionsEnd = true
	}
}

// AssertionsEnded reports whether SYS_END has been applied.
func (s *Simulator) AssertionsEnded() bool { return s.assertionsEnd }
