package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCommand(t *testing.T) {
	isolate(t)

	tests := []struct {
		name           string
		args           []string
		wantErr        bool
		expectedOutput string
	}{
		{
			name:           "serve command with help",
			args:           []string{"serve", "--help"},
			wantErr:        false,
			expectedOutput: "Start the dataset API server",
		},
		{
			name:           "serve command with invalid port",
			args:           []string{"serve", "--port", "invalid"},
			wantErr:        true,
			expectedOutput: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Errorf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.expectedOutput != "" && !strings.Contains(out, tt.expectedOutput) {
				t.Errorf("Expected output to contain %q, got %q", tt.expectedOutput, out)
			}
		})
	}
	serveCmd.Flags().Lookup("help").Changed = false
	_ = serveCmd.Flags().Set("help", "false")
}

func TestServeRunsUntilCanceled(t *testing.T) {
	dir := isolate(t)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	serveCmd.SetContext(ctx)
	defer serveCmd.SetContext(context.Background())

	_, err := execute(t, "serve", "--host", "127.0.0.1", "--port", "0")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "audios"))
	assert.NoError(t, err, "audio directory is created")
	_, err = os.Stat(filepath.Join(dir, "annotator.db"))
	assert.NoError(t, err, "database is created")
}

func TestServeCommandFlags(t *testing.T) {
	cmd := NewRootCmd()
	serveCmd, _, err := cmd.Find([]string{"serve"})
	if err != nil {
		t.Fatalf("Failed to find serve command: %v", err)
	}

	if serveCmd.Flags().Lookup("port") == nil {
		t.Error("Expected port flag to be registered")
	}
	if serveCmd.Flags().Lookup("host") == nil {
		t.Error("Expected host flag to be registered")
	}
}
