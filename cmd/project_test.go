package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectAndLabelCreate(t *testing.T) {
	isolate(t)

	out, err := execute(t, "project", "create", "clips")
	require.NoError(t, err)
	assert.Contains(t, out, "Project:  1")
	assert.Contains(t, out, "Name:     clips")
	assert.Regexp(t, `API key:  \S+`, out)

	out, err = execute(t, "label", "create", "noise", "--project", "1", "--type", "multiselect", "--values", "music,traffic")
	require.NoError(t, err)
	assert.Contains(t, out, "Label noise (multiselect, id 1): music(1), traffic(2)")

	_, err = execute(t, "label", "create", "speaker", "--project", "9", "--type", "single", "--values", "male")
	assert.Error(t, err, "unknown project")

	_, err = execute(t, "label", "create", "mood", "--project", "1", "--type", "ranked")
	assert.Error(t, err)
}

func TestProjectCreateRequiresName(t *testing.T) {
	isolate(t)

	_, err := execute(t, "project", "create")
	assert.Error(t, err)
}
