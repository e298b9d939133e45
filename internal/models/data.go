package models

import (
	"fmt"
	"time"
)

// Status is the completion filter applied to a dataset listing
type Status string

const (
	StatusPending      Status = "pending"
	StatusCompleted    Status = "completed"
	StatusAll          Status = "all"
	StatusMarkedReview Status = "marked_review"
)

// Statuses lists every filter in tab order
var Statuses = []Status{StatusPending, StatusCompleted, StatusAll, StatusMarkedReview}

// ParseStatus converts a raw filter value, defaulting to pending when empty
func ParseStatus(raw string) (Status, error) {
	if raw == "" {
		return StatusPending, nil
	}
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown status filter %q", raw)
	}
	return s, nil
}

// Valid reports whether s is one of the known filters
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusAll, StatusMarkedReview:
		return true
	}
	return false
}

// DataItem is one audio clip as listed by the dataset API
type DataItem struct {
	DataID                int64     `json:"data_id"`
	OriginalFilename      string    `json:"original_filename"`
	CreatedOn             time.Time `json:"created_on"`
	NumberOfSegmentations int       `json:"number_of_segmentations"`
	YoutubeStartTimeMs    int64     `json:"youtube_start_time"`
}

// PaginationWindow is one page of the dataset listing
type PaginationWindow struct {
	Items    []DataItem     `json:"data"`
	Count    map[Status]int `json:"count"`
	Active   Status         `json:"active"`
	Page     int            `json:"page"`
	NextPage *int           `json:"next_page"`
	PrevPage *int           `json:"prev_page"`
}

// IndexOf returns the position of dataID in the window, or -1
func (w *PaginationWindow) IndexOf(dataID int64) int {
	for i, item := range w.Items {
		if item.DataID == dataID {
			return i
		}
	}
	return -1
}

// DataDetail is the full record of the open item
type DataDetail struct {
	Filename               string         `json:"filename"`
	OriginalFilename       string         `json:"original_filename,omitempty"`
	ReferenceTranscription string         `json:"reference_transcription"`
	IsMarkedForReview      bool           `json:"is_marked_for_review"`
	Segmentations          []Segmentation `json:"segmentations"`
}

// Neighbor identifies an adjacent item well enough to navigate to it
type Neighbor struct {
	DataID             int64
	Filename           string
	YoutubeStartTimeMs int64
	Page               int
	Active             Status
}

// Target converts the neighbor into a navigation target
func (n *Neighbor) Target() Target {
	return Target{
		DataID:             n.DataID,
		Filename:           n.Filename,
		YoutubeStartTimeMs: n.YoutubeStartTimeMs,
		Page:               n.Page,
		Active:             n.Active,
	}
}

// NeighborOf builds a Neighbor from an item living on page
func NeighborOf(item DataItem, page int, active Status) *Neighbor {
	return &Neighbor{
		DataID:             item.DataID,
		Filename:           item.OriginalFilename,
		YoutubeStartTimeMs: item.YoutubeStartTimeMs,
		Page:               page,
		Active:             active,
	}
}

// Cursor holds the resolved previous/next items for the open item
type Cursor struct {
	Previous *Neighbor
	Next     *Neighbor
}
