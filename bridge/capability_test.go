package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupProfile_KnownNames(t *testing.T) {
	tests := []struct {
		name string
		want Capabilities
	}{
		{"", FullCapabilities},
		{"generic", FullCapabilities},
		{"Questa", FullCapabilities},
		{"VCS", FullCapabilities},
		{"xcelium", Capabilities{}},
		{"irun", Capabilities{}},
		{"cadence", Capabilities{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LookupProfile(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookupProfile_Unknown_ListsValidNames(t *testing.T) {
	_, err := LookupProfile("modelsim-se")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "modelsim-se")
	assert.Contains(t, err.Error(), "generic")
	assert.False(t, IsValidProfile("modelsim-se"))
}

func TestProfileNames_Sorted(t *testing.T) {
	names := ProfileNames()
	assert.Contains(t, names, DefaultProfile)
	assert.Contains(t, names, "irun")
	for i := 1; i < len(names); i++ {
		assert.True(t, names[i-1] < names[i], "names must be sorted: %q >= %q", names[i-1], names[i])
	}
}

func TestRegisteredReasons_FullHost_IncludesStepReasons(t *testing.T) {
	got := FullCapabilities.registeredReasons(KindConcurrentAssertion)
	assert.Equal(t, []RawReason{
		CbAssertionStart, CbAssertionFailure, CbAssertionSuccess,
		CbAssertionDisable, CbAssertionEnable, CbAssertionReset, CbAssertionKill,
		CbAssertionStepSuccess, CbAssertionStepFailure,
	}, got)
}

func TestRegisteredReasons_LimitedHost_OmitsStepReasons(t *testing.T) {
	got := Capabilities{}.registeredReasons(KindCoverProperty)
	assert.Len(t, got, 7)
	assert.NotContains(t, got, CbAssertionStepSuccess)
	assert.NotContains(t, got, CbAssertionStepFailure)
}

func TestRegisteredReasons_PropertyDecl_DependsOnHost(t *testing.T) {
	assert.Nil(t, Capabilities{}.registeredReasons(KindPropertyDecl))
	assert.NotNil(t, Capabilities{PropertyDeclCallbacks: true}.registeredReasons(KindPropertyDecl))
	// property instances are registered everywhere
	assert.NotNil(t, Capabilities{}.registeredReasons(KindPropertyInst))
}
