package models

// LabelType distinguishes single-choice from multiselect labels
type LabelType string

const (
	LabelTypeSingle      LabelType = "single"
	LabelTypeMultiselect LabelType = "multiselect"
)

// LabelValue is one selectable value of a label
type LabelValue struct {
	ValueID int64  `json:"value_id"`
	Value   string `json:"value"`
}

// Label is a structured annotation dimension of a project
type Label struct {
	Key     string       `json:"-"`
	Type    LabelType    `json:"type"`
	LabelID int64        `json:"label_id"`
	Values  []LabelValue `json:"values"`
}

// IsMultiselect reports whether several values may be selected at once
func (l *Label) IsMultiselect() bool {
	return l.Type == LabelTypeMultiselect
}

// HasValue reports whether valueID is one of the label's values
func (l *Label) HasValue(valueID int64) bool {
	for _, v := range l.Values {
		if v.ValueID == valueID {
			return true
		}
	}
	return false
}
