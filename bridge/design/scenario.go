package design

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/svaunit/svabridge/bridge"
	"github.com/svaunit/svabridge/bridge/hostsim"
)

// StepResult is the outcome of one executed script step.
type StepResult struct {
	Step  Step
	Clock int64
	// Drained is the number of records forwarded by a drain step.
	Drained int
	// Stats and Found report a stats step.
	Stats bridge.CoverStats
	Found bool
	Err   error
}

func (r StepResult) String() string {
	switch r.Step.Action {
	case "drain":
		if r.Err != nil {
			return fmt.Sprintf("[tick %d] drain: %v", r.Clock, r.Err)
		}
		return fmt.Sprintf("[tick %d] drain: %d records", r.Clock, r.Drained)
	case "control":
		if r.Step.Target == "" {
			return fmt.Sprintf("[tick %d] control %s", r.Clock, r.Step.Op)
		}
		return fmt.Sprintf("[tick %d] control %s %s", r.Clock, r.Step.Op, r.Step.Target)
	case "stats":
		if !r.Found {
			return fmt.Sprintf("[tick %d] stats %s: no cover", r.Clock, r.Step.Target)
		}
		return fmt.Sprintf("[tick %d] stats %s: failed=%d succeeded=%d", r.Clock, r.Step.Target, r.Stats.Failed, r.Stats.Succeeded)
	}
	return fmt.Sprintf("[tick %d] %s", r.Clock, r.Step.Action)
}

// Result is the outcome of Execute.
type Result struct {
	Sim        *hostsim.Simulator
	Bridge     *bridge.Bridge
	Discovered int
	Steps      []StepResult
	// FinalDrain is the number of records forwarded after the run ended.
	FinalDrain int
}

// Execute builds the design, connects a bridge to consumer, registers
// assertions, runs the script to completion and drains what is left.
func Execute(d *Design, consumer bridge.Consumer, opts ...bridge.Option) (*Result, error) {
	sim, err := d.Build()
	if err != nil {
		return nil, err
	}
	caps, err := d.Capabilities()
	if err != nil {
		return nil, err
	}

	opts = append([]bridge.Option{bridge.WithCapabilities(caps)}, opts...)
	b := bridge.New(sim, consumer, opts...)
	b.SetActiveScope(bridge.NamedScope(d.Scope))

	res := &Result{Sim: sim, Bridge: b}
	res.Discovered = b.RegisterAssertions()
	logrus.Infof("Discovered %d constructs", res.Discovered)

	d.ScheduleScript(sim, b, func(r StepResult) {
		res.Steps = append(res.Steps, r)
	})
	sim.Run()

	n, err := b.Drain(d.Requestor)
	if err != nil {
		return res, fmt.Errorf("final drain: %w", err)
	}
	res.FinalDrain = n
	return res, nil
}

// ScheduleScript schedules every script step on sim as a host task acting on
// b. report receives each step's result when it executes.
func (d *Design) ScheduleScript(sim *hostsim.Simulator, b *bridge.Bridge, report func(StepResult)) {
	for _, st := range d.Script {
		st := st
		sim.At(st.At, func() {
			r := StepResult{Step: st, Clock: sim.Clock}
			switch st.Action {
			case "drain":
				r.Drained, r.Err = b.Drain(d.Requestor)
			case "control":
				op, err := bridge.ParseControlType(st.Op)
				if err != nil {
					r.Err = err
					break
				}
				b.Control(st.Target, op, sim.Clock)
			case "stats":
				r.Stats, r.Found = b.CoverStatistics(st.Target)
			}
			if report != nil {
				report(r)
			}
		})
	}
}
