// Package labels binds segment annotation values to a project's label schema.
package labels

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/killallgit/annotator/internal/models"
	apperrors "github.com/killallgit/annotator/pkg/errors"
)

// Placeholder is the single-select value shown as "Choose Label Type". It
// means nothing is selected and is never persisted.
const Placeholder = "-1"

var (
	ErrUnknownLabel = errors.New("unknown label")
	ErrUnknownValue = errors.New("label has no such value")
	ErrWrongShape   = errors.New("value shape does not match label type")
)

// Schema is the label set of one project, keyed by label name
type Schema struct {
	keys   []string
	labels map[string]models.Label
}

// NewSchema builds a schema from the labels endpoint response. Keys are
// kept in name order so the editable set renders deterministically.
func NewSchema(raw map[string]models.Label) *Schema {
	s := &Schema{
		keys:   make([]string, 0, len(raw)),
		labels: make(map[string]models.Label, len(raw)),
	}
	for key, label := range raw {
		label.Key = key
		s.labels[key] = label
		s.keys = append(s.keys, key)
	}
	sort.Strings(s.keys)
	return s
}

// Keys returns every label key in order
func (s *Schema) Keys() []string {
	return append([]string{}, s.keys...)
}

// Lookup returns the label named key
func (s *Schema) Lookup(key string) (models.Label, bool) {
	label, ok := s.labels[key]
	return label, ok
}

// Editable returns the labels a reviewer can set. Labels without any
// values have nothing to choose from and are left out.
func (s *Schema) Editable() []models.Label {
	out := make([]models.Label, 0, len(s.keys))
	for _, key := range s.keys {
		if label := s.labels[key]; len(label.Values) > 0 {
			out = append(out, label)
		}
	}
	return out
}

// Len returns the number of labels
func (s *Schema) Len() int {
	return len(s.keys)
}

// Bind converts raw into an annotation value for label. Multiselect labels
// take a []string of value ids, single labels a string. Every id must belong
// to the label; the single-select placeholder binds to an empty selection.
func Bind(label models.Label, raw any) (models.AnnotationValue, error) {
	bound := models.AnnotationValue{LabelID: label.LabelID}

	if label.IsMultiselect() {
		list, ok := raw.([]string)
		if !ok && raw != nil {
			return bound, shapeError(label, raw)
		}
		for _, v := range list {
			if err := checkValue(label, v); err != nil {
				return bound, err
			}
		}
		bound.Values = models.MultiValue(list...)
		return bound, nil
	}

	var single string
	switch v := raw.(type) {
	case nil:
	case string:
		single = v
	default:
		return bound, shapeError(label, raw)
	}
	if single == Placeholder {
		single = ""
	}
	if single != "" {
		if err := checkValue(label, single); err != nil {
			return bound, err
		}
	}
	bound.Values = models.SingleValue(single)
	return bound, nil
}

// Read returns the values stored on seg for label, or the empty default for
// the label's type when nothing is stored
func Read(seg *models.Segment, label models.Label) models.LabelValues {
	if seg != nil {
		if stored, ok := seg.Annotations[label.Key]; ok {
			if label.IsMultiselect() {
				return models.MultiValue(stored.Values.Strings()...)
			}
			if vals := stored.Values.Strings(); len(vals) > 0 && vals[0] != Placeholder {
				return models.SingleValue(vals[0])
			}
			return models.SingleValue("")
		}
	}
	if label.IsMultiselect() {
		return models.MultiValue()
	}
	return models.SingleValue("")
}

// DisplayValues maps stored value ids to their human-readable values
func DisplayValues(label models.Label, values models.LabelValues) []string {
	out := make([]string, 0)
	for _, id := range values.Strings() {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			continue
		}
		for _, v := range label.Values {
			if v.ValueID == n {
				out = append(out, v.Value)
				break
			}
		}
	}
	return out
}

func checkValue(label models.Label, raw string) error {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || !label.HasValue(id) {
		return apperrors.ValidationError(label.Key,
			fmt.Sprintf("label does not have value with id %q", raw)).WithCause(ErrUnknownValue)
	}
	return nil
}

func shapeError(label models.Label, raw any) error {
	return apperrors.ValidationError(label.Key,
		fmt.Sprintf("%s label cannot take %T", label.Type, raw)).WithCause(ErrWrongShape)
}
