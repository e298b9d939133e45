package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SkipMarker is the transcription written for a clip the reviewer skipped
const SkipMarker = "*skipped_file*"

// SegmentState is the persistence state of a client-side segment
type SegmentState string

const (
	SegmentNew      SegmentState = "new"
	SegmentSaving   SegmentState = "saving"
	SegmentSaved    SegmentState = "saved"
	SegmentDeleting SegmentState = "deleting"
)

// Stable reports whether no request is outstanding for the segment
func (s SegmentState) Stable() bool {
	return s == SegmentNew || s == SegmentSaved
}

// LabelValues holds either a single selected value or an ordered list of values.
// On the wire it is a JSON string or a JSON array of strings.
type LabelValues struct {
	Multi  bool
	Single string
	List   []string
}

// SingleValue builds a single-select value
func SingleValue(v string) LabelValues {
	return LabelValues{Single: v}
}

// MultiValue builds a multiselect value, never nil
func MultiValue(v ...string) LabelValues {
	list := make([]string, len(v))
	copy(list, v)
	return LabelValues{Multi: true, List: list}
}

// Strings returns the selected values as a list
func (v LabelValues) Strings() []string {
	if v.Multi {
		return append([]string{}, v.List...)
	}
	if v.Single == "" {
		return []string{}
	}
	return []string{v.Single}
}

// IsEmpty reports whether nothing is selected
func (v LabelValues) IsEmpty() bool {
	if v.Multi {
		return len(v.List) == 0
	}
	return v.Single == ""
}

// MarshalJSON implements json.Marshaler
func (v LabelValues) MarshalJSON() ([]byte, error) {
	if v.Multi {
		if v.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.List)
	}
	return json.Marshal(v.Single)
}

// UnmarshalJSON implements json.Unmarshaler
func (v *LabelValues) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = LabelValues{}
		return nil
	case len(data) > 0 && data[0] == '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		list := make([]string, 0, len(raw))
		for _, r := range raw {
			s, err := scalarString(r)
			if err != nil {
				return err
			}
			list = append(list, s)
		}
		*v = LabelValues{Multi: true, List: list}
		return nil
	default:
		s, err := scalarString(data)
		if err != nil {
			return err
		}
		*v = LabelValues{Single: s}
		return nil
	}
}

// scalarString accepts a JSON string or number
func scalarString(data []byte) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("label value must be a string or number, got %s", string(data))
}

// AnnotationValue is a bound label value; LabelID keeps it stable across key renames
type AnnotationValue struct {
	LabelID int64       `json:"label_id"`
	Values  LabelValues `json:"values" swaggertype:"array,string"`
}

// Segmentation is a persisted segment as returned by the backend
type Segmentation struct {
	SegmentationID int64                      `json:"segmentation_id"`
	StartTime      float64                    `json:"start_time"`
	EndTime        float64                    `json:"end_time"`
	Transcription  string                     `json:"transcription"`
	Annotations    map[string]AnnotationValue `json:"annotations,omitempty"`
}

// SegmentationPayload is the request body for create and update
type SegmentationPayload struct {
	Start         float64                    `json:"start"`
	End           float64                    `json:"end"`
	Transcription string                     `json:"transcription"`
	Annotations   map[string]AnnotationValue `json:"annotations,omitempty"`
}

// Segment is one reviewer-drawn region and its annotation data
type Segment struct {
	RegionID       string
	Start          float64
	End            float64
	SegmentationID *int64
	Transcription  string
	Annotations    map[string]AnnotationValue
	State          SegmentState
}

// Persisted reports whether the backend has assigned an id
func (s *Segment) Persisted() bool {
	return s.SegmentationID != nil
}

// Payload builds the create/update body from the current local fields
func (s *Segment) Payload() SegmentationPayload {
	return SegmentationPayload{
		Start:         s.Start,
		End:           s.End,
		Transcription: s.Transcription,
		Annotations:   cloneAnnotations(s.Annotations),
	}
}

// Clone returns a deep copy
func (s *Segment) Clone() Segment {
	c := *s
	if s.SegmentationID != nil {
		id := *s.SegmentationID
		c.SegmentationID = &id
	}
	c.Annotations = cloneAnnotations(s.Annotations)
	return c
}

// SegmentFromSegmentation hydrates a saved segment from a persisted record
func SegmentFromSegmentation(regionID string, seg Segmentation) Segment {
	id := seg.SegmentationID
	return Segment{
		RegionID:       regionID,
		Start:          seg.StartTime,
		End:            seg.EndTime,
		SegmentationID: &id,
		Transcription:  seg.Transcription,
		Annotations:    cloneAnnotations(seg.Annotations),
		State:          SegmentSaved,
	}
}

func cloneAnnotations(in map[string]AnnotationValue) map[string]AnnotationValue {
	if in == nil {
		return nil
	}
	out := make(map[string]AnnotationValue, len(in))
	for k, v := range in {
		if v.Values.Multi {
			v.Values = MultiValue(v.Values.List...)
		}
		out[k] = v
	}
	return out
}
