// Package apitest sets up an in-memory catalog behind a gin router for
// handler tests.
package apitest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/annotator/api/types"
	"github.com/killallgit/annotator/internal/database"
	"github.com/killallgit/annotator/internal/models"
	"github.com/killallgit/annotator/internal/services/catalog"
	"github.com/stretchr/testify/require"
)

// Env is a seeded project with a multiselect "noise" label and a single
// "speaker" label
type Env struct {
	Deps    *types.Dependencies
	Router  *gin.Engine
	Project *models.Project
	Noise   *models.Label
	Speaker *models.Label
	repo    catalog.Repository
}

// New builds an Env on a fresh in-memory database
func New(t *testing.T) *Env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Initialize(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.AutoMigrate(models.CatalogModels()...))

	audioDir := t.TempDir()
	repo := catalog.NewRepository(db.DB)
	svc := catalog.NewService(repo, catalog.WithAudioDir(audioDir), catalog.WithPageSize(2))

	ctx := context.Background()
	project, err := svc.CreateProject(ctx, "clips")
	require.NoError(t, err)
	noise, err := svc.CreateLabel(ctx, project.ID, "noise", models.LabelTypeMultiselect, []string{"music", "traffic"})
	require.NoError(t, err)
	speaker, err := svc.CreateLabel(ctx, project.ID, "speaker", models.LabelTypeSingle, []string{"male", "female"})
	require.NoError(t, err)

	return &Env{
		Deps:    &types.Dependencies{DB: db, Catalog: svc, AudioDir: audioDir},
		Router:  gin.New(),
		Project: project,
		Noise:   noise,
		Speaker: speaker,
		repo:    repo,
	}
}

// AddClip stores a clip without segmentations and returns its id
func (e *Env) AddClip(t *testing.T, name string) uint {
	t.Helper()
	rec := &models.DataRecord{ProjectID: e.Project.ID, Filename: name, OriginalFilename: name}
	require.NoError(t, e.repo.CreateData(context.Background(), rec))
	return rec.ID
}

// ProjectPath prefixes format with the project's API path
func (e *Env) ProjectPath(format string, args ...any) string {
	path := "/api/projects/" + strconv.FormatUint(uint64(e.Project.ID), 10)
	return path + fmt.Sprintf(format, args...)
}

// ValueID returns the id of a label's i-th value as sent on the wire
func ValueID(l *models.Label, i int) string {
	return strconv.FormatInt(l.Values[i].ValueID, 10)
}

// JSON sends body encoded as JSON
func (e *Env) JSON(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return e.Serve(req)
}

// Serve runs req through the router
func (e *Env) Serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

// Decode unmarshals a recorded body
func Decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}
