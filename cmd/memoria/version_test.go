package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionCommandOutputsBuildInfo(t *testing.T) {
	originalVersion := version
	originalCommit := commit
	originalDate := date
	t.Cleanup(func() {
		version = originalVersion
		commit = originalCommit
		date = originalDate
	})

	version = "1.2.3"
	commit = "abcdef1"
	date = "2026-10-03"

	root := newRootCmd(&AppContext{})
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())

	output := buf.String()
	require.Contains(t, output, "Memoria 1.2.3")
	require.Contains(t, output, "abcdef1")
	require.Contains(t, output, "2026-10-03")
}

func TestCommandErrorFormat(t *testing.T) {
	err := newCommandError("login", "authenticating \"ada\"", os.ErrPermission, "Try again.")
	require.Equal(t, "Failed to login: authenticating \"ada\"\n\nError: permission denied\n\nSuggestion: Try again.", err.Error())
	require.ErrorIs(t, err, os.ErrPermission)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
