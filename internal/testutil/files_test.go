package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFiles(t *testing.T) {
	dir := WriteFiles(t, map[string]string{"a/b.hcl": "x"})
	content, err := os.ReadFile(filepath.Join(dir, "a", "b.hcl"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(content))
}

func TestSafeBuffer(t *testing.T) {
	var b SafeBuffer
	_, err := b.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello", b.String())
}
