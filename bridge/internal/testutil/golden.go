// Package testutil provides shared test infrastructure for the bridge
// packages: design fixtures and golden trace comparison.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// testdataDir resolves the repository's testdata directory relative to this
// source file: bridge/internal/testutil/ → testdata/.
func testdataDir(t *testing.T) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata")
}

// DesignPath returns the path of testdata/designs/<name>.yaml.
func DesignPath(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(testdataDir(t), "designs", name+".yaml")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Failed to find design fixture %q: %v", name, err)
	}
	return path
}

// AssertGolden compares got against testdata/golden/<name>.golden.
// Run with -update to rewrite the golden file.
func AssertGolden(t *testing.T, name string, got []byte) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir(filepath.Join(testdataDir(t), "golden")),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, got)
}
