package segmentations_test

import (
	"net/http"
	"testing"

	"github.com/killallgit/annotator/api/apitest"
	"github.com/killallgit/annotator/api/segmentations"
	"github.com/killallgit/annotator/api/types"
	"github.com/killallgit/annotator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*apitest.Env, uint) {
	env := apitest.New(t)
	segmentations.RegisterRoutes(env.Router.Group("/api/projects/:project_id"), env.Deps)
	return env, env.AddClip(t, "clip.wav")
}

func TestCreate(t *testing.T) {
	env, dataID := setup(t)
	path := env.ProjectPath("/data/%d/segmentations", dataID)

	tests := []struct {
		name           string
		body           map[string]any
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "annotated segment",
			body: map[string]any{
				"start":         0.5,
				"end":           2.0,
				"transcription": "hello",
				"annotations": map[string]any{
					"noise":   map[string]any{"label_id": env.Noise.LabelID, "values": []string{apitest.ValueID(env.Noise, 1)}},
					"speaker": map[string]any{"label_id": env.Speaker.LabelID, "values": apitest.ValueID(env.Speaker, 0)},
				},
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "single placeholder is skipped",
			body:           map[string]any{"start": 3, "end": 4, "annotations": map[string]any{"speaker": map[string]any{"values": "-1"}}},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "unknown label",
			body:           map[string]any{"start": 0, "end": 1, "annotations": map[string]any{"mood": map[string]any{"values": "1"}}},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Label not found with name: `mood`",
		},
		{
			name:           "value of another label",
			body:           map[string]any{"start": 0, "end": 1, "annotations": map[string]any{"noise": map[string]any{"values": []string{"999"}}}},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "`noise` does not have label value with id `999`",
		},
		{
			name:           "inverted bounds",
			body:           map[string]any{"start": 2, "end": 1},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.JSON(http.MethodPost, path, tt.body)
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedStatus == http.StatusCreated {
				var seg models.Segmentation
				apitest.Decode(t, w, &seg)
				assert.NotZero(t, seg.SegmentationID)
				return
			}
			var resp types.ErrorResponse
			apitest.Decode(t, w, &resp)
			if tt.expectedMsg != "" {
				assert.Equal(t, tt.expectedMsg, resp.Message)
			}
		})
	}

	w := env.JSON(http.MethodPost, env.ProjectPath("/data/%d/segmentations", dataID+10), map[string]any{"start": 0, "end": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateAndDelete(t *testing.T) {
	env, dataID := setup(t)

	w := env.JSON(http.MethodPost, env.ProjectPath("/data/%d/segmentations", dataID), map[string]any{
		"start": 0, "end": 1, "transcription": "first",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Segmentation
	apitest.Decode(t, w, &created)
	segPath := env.ProjectPath("/data/%d/segmentations/%d", dataID, created.SegmentationID)

	w = env.JSON(http.MethodPut, segPath, map[string]any{
		"start":         0.25,
		"end":           1.5,
		"transcription": "second",
		"annotations": map[string]any{
			"noise": map[string]any{"values": []string{apitest.ValueID(env.Noise, 0), apitest.ValueID(env.Noise, 1)}},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Segmentation
	apitest.Decode(t, w, &updated)
	assert.Equal(t, created.SegmentationID, updated.SegmentationID)
	assert.Equal(t, "second", updated.Transcription)
	assert.Equal(t, 0.25, updated.StartTime)
	assert.True(t, updated.Annotations["noise"].Values.Multi)
	assert.Len(t, updated.Annotations["noise"].Values.List, 2)

	w = env.JSON(http.MethodPut, env.ProjectPath("/data/%d/segmentations/%d", dataID, created.SegmentationID+100), map[string]any{"start": 0, "end": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.JSON(http.MethodDelete, segPath, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = env.JSON(http.MethodDelete, segPath, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.JSON(http.MethodDelete, env.ProjectPath("/data/%d/segmentations/x", dataID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
