package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/killallgit/annotator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataList(t *testing.T) {
	isolate(t)

	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		next := 3
		prev := 1
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.PaginationWindow{
			Items: []models.DataItem{
				{DataID: 7, OriginalFilename: "vid_2.wav", NumberOfSegmentations: 2, YoutubeStartTimeMs: 2000},
			},
			Count:    map[models.Status]int{models.StatusPending: 4, models.StatusAll: 9},
			Active:   models.StatusAll,
			Page:     2,
			NextPage: &next,
			PrevPage: &prev,
		})
	}))
	defer srv.Close()

	out, err := execute(t, "data", "list", "--project", "3", "--base-url", srv.URL, "--active", "all", "--page", "2")
	require.NoError(t, err)

	assert.Equal(t, "/api/current_user/projects/3/data", gotPath)
	assert.Equal(t, "active=all&page=2", gotQuery)
	assert.Contains(t, out, "page 2 (all)  pending=4 completed=0 all=9 marked_review=0")
	assert.Contains(t, out, "vid_2.wav")
	assert.Contains(t, out, "7&vid_2.wav&2000&2&all")
	assert.Contains(t, out, "prev: 1  next: 3")
}

func TestDataListRejectsStatus(t *testing.T) {
	isolate(t)

	_, err := execute(t, "data", "list", "--active", "archived")
	assert.Error(t, err)
	_ = dataListCmd.Flags().Set("active", string(models.StatusPending))
}

func TestDataListReportsAPIErrors(t *testing.T) {
	isolate(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Project not found"}`))
	}))
	defer srv.Close()

	_, err := execute(t, "data", "list", "--project", "3", "--base-url", srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Project not found")
}

func TestDataFetch(t *testing.T) {
	dir := isolate(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/projects/3/data/7":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(models.DataDetail{Filename: "0a1b.wav", OriginalFilename: "vid_2.wav"})
		case "/audios/0a1b.wav":
			w.Header().Set("Content-Type", "audio/wave")
			_, _ = w.Write([]byte("RIFFdata"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	outDir := filepath.Join(dir, "clips")
	out, err := execute(t, "data", "fetch", "7", "--project", "3", "--base-url", srv.URL, "--out", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved "+filepath.Join(outDir, "vid_2.wav")+" (8 bytes)")

	raw, err := os.ReadFile(filepath.Join(outDir, "vid_2.wav"))
	require.NoError(t, err)
	assert.Equal(t, "RIFFdata", string(raw))

	_, err = execute(t, "data", "fetch", "7", "--project", "3", "--base-url", srv.URL, "--out", outDir)
	assert.Error(t, err, "existing files are kept without --force")
	_ = dataFetchCmd.Flags().Set("out", ".")
}

func TestDataFetchRejectsID(t *testing.T) {
	isolate(t)

	_, err := execute(t, "data", "fetch", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid data id "abc"`)
}
