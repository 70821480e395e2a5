package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/witctl/witctl/internal/utils"
)

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "fields.yaml")

	assert.False(t, utils.FileExists(path))

	require.NoError(t, os.WriteFile(path, []byte("fields: []\n"), 0o644))
	assert.True(t, utils.FileExists(path))

	// Directories don't count as files.
	assert.False(t, utils.FileExists(dir))
}

func TestCapitalizeFirst(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "exported", want: "Exported"},
		{in: "Already", want: "Already"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, utils.CapitalizeFirst(tt.in))
	}
}
