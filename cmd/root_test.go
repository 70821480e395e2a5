package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteRejectsInvalidLogLevel(t *testing.T) {
	root := CmdForTest("0.0.0")
	root.SetArgs([]string{"collections", "--logLevel", "verbose"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log level must be one of")
}
