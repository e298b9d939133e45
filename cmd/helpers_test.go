package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points the database, audio directory and config file at a temp dir
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ANNOTATOR_DATABASE_PATH", filepath.Join(dir, "annotator.db"))
	t.Setenv("ANNOTATOR_SERVER_AUDIO_DIR", filepath.Join(dir, "audios"))
	t.Setenv("ANNOTATOR_LOGGING_LEVEL", "error")
	cfgFile = filepath.Join(dir, "settings.yaml")
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

// executeWithInput runs the root command with input on stdin
func executeWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(append(args, "--config", cfgFile))
	err := cmd.Execute()
	return buf.String(), err
}
