package data_test

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/killallgit/annotator/api/apitest"
	"github.com/killallgit/annotator/api/data"
	"github.com/killallgit/annotator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *apitest.Env {
	env := apitest.New(t)
	data.RegisterRoutes(env.Router.Group("/api"), env.Deps)
	return env
}

func TestList(t *testing.T) {
	env := setup(t)
	ids := []uint{env.AddClip(t, "a_1.wav"), env.AddClip(t, "a_2.wav"), env.AddClip(t, "a_3.wav")}
	_, err := env.Deps.Catalog.CreateSegmentation(context.Background(), env.Project.ID, ids[1], models.SegmentationPayload{Start: 0, End: 1})
	require.NoError(t, err)

	listPath := "/api/current_user/projects/" + itoa(env.Project.ID) + "/data"

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		validate       func(t *testing.T, w models.PaginationWindow)
	}{
		{
			name:           "defaults to pending page one",
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, w models.PaginationWindow) {
				assert.Equal(t, models.StatusPending, w.Active)
				assert.Equal(t, 1, w.Page)
				require.Len(t, w.Items, 2)
				assert.Equal(t, int64(ids[0]), w.Items[0].DataID)
				assert.Equal(t, int64(ids[2]), w.Items[1].DataID)
				assert.Nil(t, w.NextPage)
				assert.Equal(t, 3, w.Count[models.StatusAll])
				assert.Equal(t, 1, w.Count[models.StatusCompleted])
			},
		},
		{
			name:           "all statuses second page",
			query:          "?page=2&active=all",
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, w models.PaginationWindow) {
				require.Len(t, w.Items, 1)
				assert.Equal(t, int64(ids[2]), w.Items[0].DataID)
				require.NotNil(t, w.PrevPage)
				assert.Equal(t, 1, *w.PrevPage)
			},
		},
		{
			name:           "completed",
			query:          "?active=completed",
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, w models.PaginationWindow) {
				require.Len(t, w.Items, 1)
				assert.Equal(t, 1, w.Items[0].NumberOfSegmentations)
			},
		},
		{
			name:           "unknown status",
			query:          "?active=archived",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad page",
			query:          "?page=two",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.JSON(http.MethodGet, listPath+tt.query, nil)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.validate != nil {
				var window models.PaginationWindow
				apitest.Decode(t, w, &window)
				tt.validate(t, window)
			}
		})
	}

	w := env.JSON(http.MethodGet, "/api/current_user/projects/999/data", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGet(t *testing.T) {
	env := setup(t)
	id := env.AddClip(t, "clip.wav")

	w := env.JSON(http.MethodGet, env.ProjectPath("/data/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var detail models.DataDetail
	apitest.Decode(t, w, &detail)
	assert.Equal(t, "clip.wav", detail.Filename)
	assert.NotNil(t, detail.Segmentations)
	assert.Empty(t, detail.Segmentations)

	w = env.JSON(http.MethodGet, env.ProjectPath("/data/%d", id+10), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.JSON(http.MethodGet, env.ProjectPath("/data/abc"), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPatchReview(t *testing.T) {
	env := setup(t)
	id := env.AddClip(t, "clip.wav")

	w := env.JSON(http.MethodPatch, env.ProjectPath("/data/%d", id), map[string]any{"is_marked_for_review": true})
	require.Equal(t, http.StatusOK, w.Code)
	var detail models.DataDetail
	apitest.Decode(t, w, &detail)
	assert.True(t, detail.IsMarkedForReview)

	w = env.JSON(http.MethodPatch, env.ProjectPath("/data/%d", id), map[string]any{"is_marked_for_review": false})
	require.Equal(t, http.StatusOK, w.Code)
	apitest.Decode(t, w, &detail)
	assert.False(t, detail.IsMarkedForReview)

	w = env.JSON(http.MethodPatch, env.ProjectPath("/data/%d", id), map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code, "flag is required")

	w = env.JSON(http.MethodPatch, env.ProjectPath("/data/%d", id+10), map[string]any{"is_marked_for_review": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
