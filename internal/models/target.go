package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Target is the navigation target consumed when a session opens.
// Encoded as dataId&filename&youtubeStartTimeMs&page&status.
type Target struct {
	DataID             int64
	Filename           string
	YoutubeStartTimeMs int64
	Page               int
	Active             Status
}

// ParseTarget decodes an encoded navigation target. Page defaults to 1 and
// status to pending when missing.
func ParseTarget(raw string) (Target, error) {
	parts := strings.Split(raw, "&")
	if len(parts) < 2 {
		return Target{}, fmt.Errorf("navigation target %q: expected dataId&filename", raw)
	}

	dataID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Target{}, fmt.Errorf("navigation target %q: invalid data id: %w", raw, err)
	}

	t := Target{
		DataID:   dataID,
		Filename: parts[1],
		Page:     1,
		Active:   StatusPending,
	}

	if len(parts) > 2 {
		t.YoutubeStartTimeMs = parseLooseInt(parts[2])
	}
	if len(parts) > 3 {
		if page := int(parseLooseInt(parts[3])); page > 0 {
			t.Page = page
		}
	}
	if len(parts) > 4 {
		active, err := ParseStatus(parts[4])
		if err != nil {
			return Target{}, fmt.Errorf("navigation target %q: %w", raw, err)
		}
		t.Active = active
	}

	return t, nil
}

// parseLooseInt reads "null", "" and garbage as zero, and truncates floats
func parseLooseInt(s string) int64 {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int64(f)
	}
	return 0
}

// String encodes the target in its URL form
func (t Target) String() string {
	return fmt.Sprintf("%d&%s&%d&%d&%s", t.DataID, t.Filename, t.YoutubeStartTimeMs, t.Page, t.Active)
}

// AnnotatePath is the route that opens a session on this target
func (t Target) AnnotatePath(projectID int64) string {
	return fmt.Sprintf("/projects/%d/data/%s/annotate", projectID, t.String())
}

// YoutubeID derives the reference video id from the filename stem: the part
// before the trailing _<index>
func (t Target) YoutubeID() string {
	stem := t.Filename
	if i := strings.Index(stem, "."); i >= 0 {
		stem = stem[:i]
	}
	if i := strings.LastIndex(stem, "_"); i >= 0 {
		return stem[:i]
	}
	return ""
}

// YoutubeStartSeconds is the start offset rounded down to whole seconds
func (t Target) YoutubeStartSeconds() int64 {
	if t.YoutubeStartTimeMs <= 0 {
		return 0
	}
	return t.YoutubeStartTimeMs / 1000
}

// ReferenceVideoURL is the embed URL of the source video, or "" when the
// filename carries no video id
func (t Target) ReferenceVideoURL() string {
	id := t.YoutubeID()
	if id == "" {
		return ""
	}
	return fmt.Sprintf("https://www.youtube.com/embed/%s?start=%d", id, t.YoutubeStartSeconds())
}
