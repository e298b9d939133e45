package types

import "github.com/killallgit/annotator/internal/models"

// ReviewRequest toggles the review flag of a clip
type ReviewRequest struct {
	IsMarkedForReview *bool `json:"is_marked_for_review" binding:"required"`
}

// ProjectRequest creates a project
type ProjectRequest struct {
	Name string `json:"name" binding:"required"`
}

// LabelRequest creates a label with its values
type LabelRequest struct {
	Name   string           `json:"name" binding:"required"`
	Type   models.LabelType `json:"type"`
	Values []string         `json:"values"`
}

// UploadSegmentation is one segmentation sent along with an uploaded clip
type UploadSegmentation struct {
	StartTime     *float64                          `json:"start_time"`
	EndTime       *float64                          `json:"end_time"`
	Transcription *string                           `json:"transcription"`
	Annotations   map[string]models.AnnotationValue `json:"annotations"`
}

// Payload converts the upload form into a segmentation payload, reporting
// false when a required key is missing
func (u UploadSegmentation) Payload() (models.SegmentationPayload, bool) {
	if u.StartTime == nil || u.EndTime == nil || u.Transcription == nil {
		return models.SegmentationPayload{}, false
	}
	return models.SegmentationPayload{
		Start:         *u.StartTime,
		End:           *u.EndTime,
		Transcription: *u.Transcription,
		Annotations:   u.Annotations,
	}, true
}
