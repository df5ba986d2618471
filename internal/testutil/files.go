// Package testutil holds fixtures shared by the package tests: a thread-safe
// log buffer and a helper that lays out HCL tree files on disk.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFiles creates a temporary directory holding the given files. Names
// are relative paths, so "nested/a.hcl" creates the subdirectory as well.
// The directory is removed when the test ends.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

// WriteHCL writes a single main.hcl file and returns its path.
func WriteHCL(t *testing.T, src string) string {
	t.Helper()
	dir := WriteFiles(t, map[string]string{"main.hcl": src})
	return filepath.Join(dir, "main.hcl")
}
