package catalog

import (
	"strconv"

	"github.com/killallgit/annotator/internal/models"
)

func toLabel(r models.LabelRecord) models.Label {
	label := models.Label{
		Key:     r.Name,
		Type:    r.Type,
		LabelID: int64(r.ID),
		Values:  make([]models.LabelValue, 0, len(r.Values)),
	}
	for _, v := range r.Values {
		label.Values = append(label.Values, models.LabelValue{ValueID: int64(v.ID), Value: v.Value})
	}
	return label
}

func toDetail(record *models.DataRecord, labels []models.LabelRecord) *models.DataDetail {
	detail := &models.DataDetail{
		Filename:               record.Filename,
		OriginalFilename:       record.OriginalFilename,
		ReferenceTranscription: record.ReferenceTranscription,
		IsMarkedForReview:      record.IsMarkedForReview,
		Segmentations:          make([]models.Segmentation, 0, len(record.Segmentations)),
	}
	for _, seg := range record.Segmentations {
		detail.Segmentations = append(detail.Segmentations, toSegmentation(seg, labels))
	}
	return detail
}

// toSegmentation groups a segmentation's stored values by label: multiselect
// labels produce a list of value ids, single labels one value id
func toSegmentation(seg models.SegmentationRecord, labels []models.LabelRecord) models.Segmentation {
	owner := make(map[uint]*models.LabelRecord)
	for i := range labels {
		for _, v := range labels[i].Values {
			owner[v.ID] = &labels[i]
		}
	}

	out := models.Segmentation{
		SegmentationID: int64(seg.ID),
		StartTime:      seg.StartTime,
		EndTime:        seg.EndTime,
		Transcription:  seg.Transcription,
	}
	for _, v := range seg.Values {
		label, ok := owner[v.ID]
		if !ok {
			continue
		}
		if out.Annotations == nil {
			out.Annotations = make(map[string]models.AnnotationValue)
		}

		id := strconv.FormatUint(uint64(v.ID), 10)
		ann, seen := out.Annotations[label.Name]
		if !seen {
			ann.LabelID = int64(label.ID)
		}
		if label.Type == models.LabelTypeMultiselect {
			ann.Values = models.MultiValue(append(ann.Values.List, id)...)
		} else {
			ann.Values = models.SingleValue(id)
		}
		out.Annotations[label.Name] = ann
	}
	return out
}
