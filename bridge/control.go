package bridge

// Control applies a control operation.
//
// Per-construct operations (RESET, DISABLE, ENABLE, KILL, ENABLE_STEP,
// DISABLE_STEP) go to every discovered construct called name. Global
// operations (SYS_*) go once to the host. Step operations are only
// forwarded when the host supports step control. Unmatched names and
// unsupported operations are silently ignored.
func (b *Bridge) Control(name string, op ControlType, simTime int64) {
	if op.IsGlobal() {
		b.log.Infof("Assertion control %s", op)
		b.sim.SysControl(op)
		return
	}

	var arg ControlArg
	switch op {
	case ControlReset, ControlDisable, ControlEnable:
		arg.Time = NewSimTime(simTime)
	case ControlKill:
		arg.Time = NewSimTime(0)
	case ControlEnableStep, ControlDisableStep:
		if !b.caps.StepControl {
			b.log.Debugf("Ignoring %s on %s: host has no step control", op, name)
			return
		}
		arg.Time = NewSimTime(0)
		arg.StepSize = ClockSteps
	default:
		return
	}

	for _, c := range b.constructs {
		if c.Name != name || !controllable(c.Kind) {
			continue
		}
		b.log.Debugf("Assertion control %s on %s at %d", op, c.FullName, simTime)
		b.sim.Control(op, c.Handle, arg)
	}
}

// controllable reports whether control operations may target constructs of
// kind k.
//
// TODO(product): decide whether property declarations and instances should
// be excluded. They currently receive controls like every other kind.
func controllable(k ConstructKind) bool {
	return true
}
