// Package design loads YAML descriptions of a design hierarchy, the host
// simulator it runs on, and a timed script of consumer requests, and turns
// them into a runnable hostsim.Simulator.
package design

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/svaunit/svabridge/bridge"
)

// Design is the top-level YAML document.
type Design struct {
	Simulator SimulatorConfig `yaml:"simulator"`
	// Scope is the full name of the consumer's own unit, excluded from discovery.
	Scope string `yaml:"scope"`
	// Requestor is passed with every drain. Defaults to DefaultRequestor.
	Requestor string `yaml:"requestor"`
	Hierarchy []Unit  `yaml:"hierarchy"`
	Script    []Step  `yaml:"script"`
}

// SimulatorConfig selects the host profile. Nil capability fields mean
// "not set" and keep the profile's value.
type SimulatorConfig struct {
	Profile               string `yaml:"profile"`
	StepCallbacks         *bool  `yaml:"step_callbacks"`
	PropertyDeclCallbacks *bool  `yaml:"property_decl_callbacks"`
	StepControl           *bool  `yaml:"step_control"`
	TimeType              string `yaml:"time_type"`
	Horizon               int64  `yaml:"horizon"`
}

// Unit is a module, interface, program, generate scope or generate scope
// array together with what it contains.
type Unit struct {
	Name       string      `yaml:"name"`
	Kind       string      `yaml:"kind"`
	Parameters []Parameter `yaml:"parameters"`
	Constructs []Construct `yaml:"constructs"`
	Children   []Unit      `yaml:"children"`
}

// Parameter is an integer parameter of a unit.
type Parameter struct {
	Name  string `yaml:"name"`
	Value int64  `yaml:"value"`
}

// Construct is an assertion, cover or property node with its scripted attempts.
type Construct struct {
	Name     string    `yaml:"name"`
	Kind     string    `yaml:"kind"`
	Attempts []Attempt `yaml:"attempts"`
}

// Attempt is one scripted evaluation window.
type Attempt struct {
	Start  int64  `yaml:"start"`
	End    int64  `yaml:"end"`
	Result string `yaml:"result"`
}

// Step is a consumer request executed at tick At.
type Step struct {
	At     int64  `yaml:"at"`
	Action string `yaml:"action"`
	Target string `yaml:"target"`
	Op     string `yaml:"op"`
}

// DefaultRequestor names drains when the design does not.
const DefaultRequestor = "svaunit_test"

// Valid value registries.
var (
	validUnitKinds = map[string]bool{
		"module": true, "interface": true, "program": true, "gen_scope": true, "gen_scope_array": true,
	}
	validConstructKinds = map[string]bool{
		"assert": true, "immediate_assert": true, "cover": true, "property_decl": true, "property_inst": true,
	}
	validResults   = map[string]bool{"pass": true, "fail": true}
	validTimeTypes = map[string]bool{"": true, "sim": true, "scaled_real": true}
	validActions   = map[string]bool{"drain": true, "control": true, "stats": true}
)

// Load reads and parses a YAML design file.
func Load(path string) (*Design, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading design: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML design. Uses strict parsing: unrecognized keys
// (typos) are rejected.
func Parse(data []byte) (*Design, error) {
	var d Design
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&d); err != nil {
		return nil, fmt.Errorf("parsing design: %w", err)
	}
	if d.Requestor == "" {
		d.Requestor = DefaultRequestor
	}
	return &d, nil
}

// Validate checks every field of the design.
func (d *Design) Validate() error {
	if _, err := bridge.LookupProfile(d.Simulator.Profile); err != nil {
		return err
	}
	if !validTimeTypes[d.Simulator.TimeType] {
		return fmt.Errorf("unknown time_type %q; valid: sim, scaled_real", d.Simulator.TimeType)
	}
	if d.Simulator.Horizon < 0 {
		return fmt.Errorf("horizon must be non-negative, got %d", d.Simulator.Horizon)
	}
	for i, u := range d.Hierarchy {
		prefix := fmt.Sprintf("hierarchy[%d]", i)
		if u.Kind != "module" {
			return fmt.Errorf("%s: top-level unit %q must be a module, got %q", prefix, u.Name, u.Kind)
		}
		if err := validateUnit(&u, prefix); err != nil {
			return err
		}
	}
	for i, st := range d.Script {
		if err := validateStep(&st, i); err != nil {
			return err
		}
	}
	return nil
}

func validateUnit(u *Unit, prefix string) error {
	if u.Name == "" {
		return fmt.Errorf("%s: name required", prefix)
	}
	if !validUnitKinds[u.Kind] {
		return fmt.Errorf("%s: unknown unit kind %q; valid: module, interface, program, gen_scope, gen_scope_array", prefix, u.Kind)
	}
	if u.Kind == "gen_scope_array" {
		if len(u.Parameters) > 0 || len(u.Constructs) > 0 {
			return fmt.Errorf("%s: gen_scope_array %q may only contain gen_scope children", prefix, u.Name)
		}
		for i, c := range u.Children {
			if c.Kind != "gen_scope" {
				return fmt.Errorf("%s.children[%d]: gen_scope_array %q may only contain gen_scope children, got %q", prefix, i, u.Name, c.Kind)
			}
		}
	}
	for i, p := range u.Parameters {
		if p.Name == "" {
			return fmt.Errorf("%s.parameters[%d]: name required", prefix, i)
		}
	}
	for i, c := range u.Constructs {
		if err := validateConstruct(&c, fmt.Sprintf("%s.constructs[%d]", prefix, i)); err != nil {
			return err
		}
	}
	for i, c := range u.Children {
		if err := validateUnit(&c, fmt.Sprintf("%s.children[%d]", prefix, i)); err != nil {
			return err
		}
	}
	return nil
}

func validateConstruct(c *Construct, prefix string) error {
	if c.Name == "" {
		return fmt.Errorf("%s: name required", prefix)
	}
	if !validConstructKinds[c.Kind] {
		return fmt.Errorf("%s: unknown construct kind %q; valid: assert, immediate_assert, cover, property_decl, property_inst", prefix, c.Kind)
	}
	for i, a := range c.Attempts {
		if !validResults[a.Result] {
			return fmt.Errorf("%s.attempts[%d]: result must be pass or fail, got %q", prefix, i, a.Result)
		}
		if a.Start < 0 || a.End < a.Start {
			return fmt.Errorf("%s.attempts[%d]: invalid window [%d, %d]", prefix, i, a.Start, a.End)
		}
	}
	return nil
}

func validateStep(st *Step, idx int) error {
	prefix := fmt.Sprintf("script[%d]", idx)
	if st.At < 0 {
		return fmt.Errorf("%s: at must be non-negative, got %d", prefix, st.At)
	}
	if !validActions[st.Action] {
		return fmt.Errorf("%s: unknown action %q; valid: drain, control, stats", prefix, st.Action)
	}
	switch st.Action {
	case "control":
		op, err := bridge.ParseControlType(st.Op)
		if err != nil {
			return fmt.Errorf("%s: %w", prefix, err)
		}
		if !op.IsGlobal() && st.Target == "" {
			return fmt.Errorf("%s: control %s requires a target", prefix, st.Op)
		}
	case "stats":
		if st.Target == "" {
			return fmt.Errorf("%s: stats requires a target", prefix)
		}
	}
	return nil
}

// Capabilities resolves the simulator profile and applies any overrides.
func (d *Design) Capabilities() (bridge.Capabilities, error) {
	caps, err := bridge.LookupProfile(d.Simulator.Profile)
	if err != nil {
		return caps, err
	}
	if v := d.Simulator.StepCallbacks; v != nil {
		caps.StepCallbacks = *v
	}
	if v := d.Simulator.PropertyDeclCallbacks; v != nil {
		caps.PropertyDeclCallbacks = *v
	}
	if v := d.Simulator.StepControl; v != nil {
		caps.StepControl = *v
	}
	return caps, nil
}

// TimeType maps the configured time representation.
func (d *Design) TimeType() bridge.TimeType {
	if d.Simulator.TimeType == "scaled_real" {
		return bridge.ScaledRealTime
	}
	return bridge.SimTime
}
