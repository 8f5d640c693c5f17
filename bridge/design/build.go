package design

import (
	"fmt"

	"github.com/svaunit/svabridge/bridge"
	"github.com/svaunit/svabridge/bridge/hostsim"
)

// Build validates the design and creates a host simulator holding its
// hierarchy and scripted attempts. The script is not scheduled; see Execute.
func (d *Design) Build() (*hostsim.Simulator, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	caps, err := d.Capabilities()
	if err != nil {
		return nil, err
	}
	sim := hostsim.New(hostsim.Config{
		Horizon:      d.Simulator.Horizon,
		TimeType:     d.TimeType(),
		Capabilities: caps,
	})
	for i := range d.Hierarchy {
		if err := addUnit(sim, bridge.NilHandle, &d.Hierarchy[i]); err != nil {
			return nil, err
		}
	}
	return sim, nil
}

func addUnit(sim *hostsim.Simulator, parent bridge.Handle, u *Unit) error {
	typ, ok := bridge.ParseObjectType(u.Kind)
	if !ok {
		return fmt.Errorf("unit %q: unknown kind %q", u.Name, u.Kind)
	}
	h, err := sim.AddNode(parent, typ, u.Name)
	if err != nil {
		return err
	}
	for _, p := range u.Parameters {
		if _, err := sim.AddParameter(h, p.Name, p.Value); err != nil {
			return err
		}
	}
	for _, c := range u.Constructs {
		if err := addConstruct(sim, h, &c); err != nil {
			return err
		}
	}
	for i := range u.Children {
		if err := addUnit(sim, h, &u.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

// constructTypes maps YAML construct kinds to host object types.
var constructTypes = map[string]bridge.ObjectType{
	"assert":           bridge.TypeAssert,
	"immediate_assert": bridge.TypeImmediateAssert,
	"cover":            bridge.TypeCover,
	"property_decl":    bridge.TypePropertyDecl,
	"property_inst":    bridge.TypePropertyInst,
}

func addConstruct(sim *hostsim.Simulator, parent bridge.Handle, c *Construct) error {
	h, err := sim.AddNode(parent, constructTypes[c.Kind], c.Name)
	if err != nil {
		return err
	}
	for _, a := range c.Attempts {
		if err := sim.AddAttempt(h, hostsim.Attempt{Start: a.Start, End: a.End, Pass: a.Result == "pass"}); err != nil {
			return err
		}
	}
	return nil
}
