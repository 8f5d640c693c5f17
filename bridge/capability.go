package bridge

import (
	"fmt"
	"sort"
	"strings"
)

// Capabilities describes what the host simulator supports.
// It is resolved once at startup and consulted by the registrar, the
// callback handler and the control dispatcher.
type Capabilities struct {
	// StepCallbacks: the host delivers cbAssertionStepSuccess/StepFailure.
	StepCallbacks bool `yaml:"step_callbacks"`
	// PropertyDeclCallbacks: callbacks may be attached to property declarations.
	PropertyDeclCallbacks bool `yaml:"property_decl_callbacks"`
	// StepControl: ENABLE_STEP/DISABLE_STEP are forwarded to the host.
	StepControl bool `yaml:"step_control"`
}

// FullCapabilities is the descriptor of a host implementing the whole
// assertion API.
var FullCapabilities = Capabilities{
	StepCallbacks:         true,
	PropertyDeclCallbacks: true,
	StepControl:           true,
}

// profiles maps simulator names to their capability descriptors.
var profiles = map[string]Capabilities{
	"generic": FullCapabilities,
	"questa":  FullCapabilities,
	"vcs":     FullCapabilities,
	"xcelium": {},
	"irun":    {},
	"cadence": {},
}

// DefaultProfile is used when no simulator profile is configured.
const DefaultProfile = "generic"

// LookupProfile returns the capabilities of a named simulator profile.
// Names are case-insensitive; the empty name selects DefaultProfile.
func LookupProfile(name string) (Capabilities, error) {
	if name == "" {
		name = DefaultProfile
	}
	caps, ok := profiles[strings.ToLower(name)]
	if !ok {
		return Capabilities{}, fmt.Errorf("unknown simulator profile %q; valid: %s", name, strings.Join(ProfileNames(), ", "))
	}
	return caps, nil
}

// IsValidProfile returns true if name is a recognized simulator profile.
func IsValidProfile(name string) bool {
	_, err := LookupProfile(name)
	return err == nil
}

// ProfileNames lists the known profiles in sorted order.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// registeredReasons returns the raw reasons the registrar attaches for a
// construct of kind k, in registration order. A nil result means the
// construct is not registered at all.
func (c Capabilities) registeredReasons(k ConstructKind) []RawReason {
	if k == KindPropertyDecl && !c.PropertyDeclCallbacks {
		return nil
	}
	reasons := []RawReason{
		CbAssertionStart,
		CbAssertionFailure,
		CbAssertionSuccess,
		CbAssertionDisable,
		CbAssertionEnable,
		CbAssertionReset,
		CbAssertionKill,
	}
	if c.StepCallbacks {
		reasons = append(reasons, CbAssertionStepSuccess, CbAssertionStepFailure)
	}
	return reasons
}
