package bridge

// Discover walks the design hierarchy and returns the assertion constructs
// owned by every assertion unit, in traversal order. It does not change the
// bridge's discovery list; RegisterAssertions does that.
//
// Assertion units are collected under each top-level module from:
//   - named generate scopes (interfaces instantiated inside them)
//   - generate scope arrays (interfaces inside each generated scope)
//   - directly instantiated interfaces
//   - directly instantiated submodules
//   - directly instantiated programs
//
// A unit whose full name equals the active scope's full name is skipped so
// the consumer never monitors its own constructs.
func (b *Bridge) Discover() []Construct {
	units := b.assertionUnits()

	self := b.activeScopeName()
	var found []Construct
	for _, unit := range units {
		b.logParameters(unit)

		if b.sim.FullName(unit) == self {
			b.log.Debugf("Skipping active scope %s", self)
			continue
		}
		for _, h := range b.sim.Iterate(RelAssertion, unit) {
			found = append(found, Construct{
				Handle:   h,
				Name:     b.sim.Name(h),
				FullName: b.sim.FullName(h),
				Kind:     KindOf(b.sim.Type(h)),
			})
		}
	}
	b.log.Debugf("Discovered %d constructs in %d units", len(found), len(units))
	return found
}

func (b *Bridge) assertionUnits() []Handle {
	var units []Handle
	for _, top := range b.sim.Iterate(RelModule, NilHandle) {
		for _, gen := range b.sim.Iterate(RelInternalScope, top) {
			if b.sim.Type(gen) != TypeGenScope {
				continue
			}
			for _, inner := range b.sim.Iterate(RelInternalScope, gen) {
				if b.sim.Type(inner) == TypeInterface {
					units = append(units, inner)
				}
			}
		}

		for _, arr := range b.sim.Iterate(RelGenScopeArray, top) {
			for _, scope := range b.sim.Iterate(RelGenScope, arr) {
				units = append(units, b.sim.Iterate(RelInterface, scope)...)
			}
		}

		units = append(units, b.sim.Iterate(RelInterface, top)...)
		units = append(units, b.sim.Iterate(RelModule, top)...)
		units = append(units, b.sim.Iterate(RelProgram, top)...)
	}
	return units
}

// logParameters reports a unit's parameter values. Diagnostic only.
func (b *Bridge) logParameters(unit Handle) {
	for _, p := range b.sim.Iterate(RelParameter, unit) {
		if v, ok := b.sim.ParamValue(p); ok {
			b.log.Debugf("Parameter %s = %d", b.sim.FullName(p), v)
		}
	}
}
