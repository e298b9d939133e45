package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "migrate", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run mode")
	assert.Contains(t, out, "Would create: projects, data, segmentations, labels, label_values")

	out, err = execute(t, "migrate", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Database Migration Status")
	assert.Regexp(t, `projects\s+missing`, out)

	out, err = execute(t, "migrate", "--dry-run=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Migrated 5 models, created projects")

	out, err = execute(t, "migrate", "status")
	require.NoError(t, err)
	assert.Regexp(t, `label_values\s+ok`, out)
	assert.NotContains(t, out, "missing")

	out, err = execute(t, "migrate", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "All tables exist")
	_ = migrateCmd.Flags().Set("dry-run", "false")
}

func TestMigrateCommandFlags(t *testing.T) {
	cmd := NewRootCmd()
	migrateCmd, _, err := cmd.Find([]string{"migrate"})
	require.NoError(t, err)
	assert.NotNil(t, migrateCmd.Flags().Lookup("dry-run"))

	statusCmd, _, err := cmd.Find([]string{"migrate", "status"})
	require.NoError(t, err)
	assert.Equal(t, "status", statusCmd.Name())
}
