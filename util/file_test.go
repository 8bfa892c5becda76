package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndAppendLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.txt")
	require.NoError(t, WriteLines(path, "a", "b"))
	require.NoError(t, AppendLines(path, "c"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc\n", string(content))

	require.NoError(t, WriteLines(path))
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, content)
}
