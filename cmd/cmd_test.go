package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svaunit/svabridge/bridge"
	"github.com/svaunit/svabridge/bridge/journal"
)

func TestMain(m *testing.M) {
	// Suppress CLI logs during tests
	// Set DEBUG_TESTS=1 to see full logs: DEBUG_TESTS=1 go test ./cmd/... -v
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.WarnLevel)
	}
	os.Exit(m.Run())
}

func designFile(name string) string {
	return filepath.Join("..", "testdata", "designs", name+".yaml")
}

// runCLI executes the root command with args and returns its stdout.
// Flag variables are package state, so they are reset first.
func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	designPath, profileName, requestor, journalPath, coverName = "", "", "", "", ""
	logLevel = "warn"

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestProfilesCmd_ListsEveryProfile(t *testing.T) {
	out := runCLI(t, "profiles")

	for _, name := range bridge.ProfileNames() {
		assert.Contains(t, out, name)
	}
	assert.Regexp(t, `irun\s+false\s+false\s+false`, out)
	assert.Regexp(t, `questa\s+true\s+true\s+true`, out)
}

func TestDiscoverCmd_ExcludesActiveScope(t *testing.T) {
	// GIVEN the basic design whose scope is top.checker
	// WHEN discover runs
	out := runCLI(t, "discover", "--design", designFile("basic"))

	// THEN the interface constructs are listed in traversal order
	assert.Regexp(t, `a1\s+SVA\s+top\.ifc\.a1`, out)
	assert.Regexp(t, `a2\s+COVER\s+top\.ifc\.a2`, out)
	assert.Less(t, strings.Index(out, "top.ifc.a1"), strings.Index(out, "top.ifc.a2"))
	// AND the checker's own assertion is not
	assert.NotContains(t, out, "own_check")
}

func TestStatsCmd(t *testing.T) {
	tests := []struct {
		cover string
		want  string
	}{
		{"a2", "a2: failed=1 succeeded=2\n"},
		{"a1", "a1: no cover construct\n"},
		{"missing", "missing: no cover construct\n"},
	}
	for _, tt := range tests {
		t.Run(tt.cover, func(t *testing.T) {
			out := runCLI(t, "stats", "--design", designFile("basic"), "--cover", tt.cover)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRunCmd_PrintsScriptTraceAndSummary(t *testing.T) {
	out := runCLI(t, "run", "--design", designFile("basic"))

	assert.Contains(t, out, "=== Script ===\n[tick 35] drain: 8 records\n")
	assert.Contains(t, out, "[tick 45] control RESET a1\n")
	assert.Contains(t, out, "=== Trace ===\ncreate a1 SVA\ncreate a2 COVER\n")
	assert.Contains(t, out, "event svaunit_test a1 SVA RESET start=45 time=45\n")
	assert.Contains(t, out, "=== Summary ===\nconstructs: 2, events: 10\n")
	assert.Regexp(t, `a2\s+COVER\s+6\s+3\s+2\s+1`, out)
}

func TestRunCmd_RequestorOverride(t *testing.T) {
	out := runCLI(t, "run", "--design", designFile("basic"), "--requestor", "bus_test")

	assert.Contains(t, out, "event bus_test a1 SVA FAILURE start=10 time=30\n")
	assert.NotContains(t, out, "event svaunit_test")
}

func TestRunCmd_ProfileOverride_DropsStepEvents(t *testing.T) {
	full := runCLI(t, "run", "--design", designFile("stepping"))
	limited := runCLI(t, "run", "--design", designFile("stepping"), "--profile", "irun")

	assert.Contains(t, full, "STEP_SUCCESS start=5 time=10")
	assert.NotContains(t, limited, "STEP_SUCCESS start=")
	assert.Contains(t, limited, "constructs: 2, events: 6\n")
}

func TestRunCmd_Journal_RecordsRun(t *testing.T) {
	// GIVEN a journal path
	path := filepath.Join(t.TempDir(), "runs.db")

	// WHEN the basic design runs with --journal
	runCLI(t, "run", "--design", designFile("basic"), "--journal", path)

	// THEN the journal holds one run with every forwarded event
	j, err := journal.Open(path)
	require.NoError(t, err)
	defer j.Close()
	ctx := context.Background()
	runs, err := j.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, designFile("basic"), runs[0].Label)

	events, err := j.Events(ctx, runs[0].ID)
	require.NoError(t, err)
	assert.Len(t, events, 10)
	assert.Equal(t, "top.checker", events[0].Scope)

	counts, err := j.CountByReason(ctx, runs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[bridge.ReasonReset])
}
