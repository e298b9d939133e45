package models

import (
	"time"

	"gorm.io/gorm"
)

// Project groups a dataset and its label schema
type Project struct {
	gorm.Model
	Name   string `json:"name" gorm:"not null"`
	APIKey string `json:"-" gorm:"uniqueIndex;not null"`
}

// TableName returns the table name for the Project model
func (Project) TableName() string {
	return "projects"
}

// DataRecord is a stored audio clip
type DataRecord struct {
	ID                     uint                 `json:"data_id" gorm:"primaryKey"`
	CreatedAt              time.Time            `json:"created_on"`
	UpdatedAt              time.Time            `json:"-"`
	ProjectID              uint                 `json:"-" gorm:"not null;index"`
	Filename               string               `json:"filename" gorm:"not null"`
	OriginalFilename       string               `json:"original_filename" gorm:"not null;index"`
	ReferenceTranscription string               `json:"reference_transcription" gorm:"type:text"`
	IsMarkedForReview      bool                 `json:"is_marked_for_review" gorm:"default:false;index"`
	AssignedTo             string               `json:"assigned_to"`
	YoutubeStartTime       int64                `json:"youtube_start_time"`
	YoutubeEndTime         int64                `json:"youtube_end_time"`
	Segmentations          []SegmentationRecord `json:"-" gorm:"foreignKey:DataID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the DataRecord model
func (DataRecord) TableName() string {
	return "data"
}

// SegmentationRecord is a stored segment of a clip
type SegmentationRecord struct {
	ID            uint               `gorm:"primaryKey"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DataID        uint               `gorm:"not null;index"`
	StartTime     float64            `gorm:"not null"`
	EndTime       float64            `gorm:"not null"`
	Transcription string             `gorm:"type:text"`
	Values        []LabelValueRecord `gorm:"many2many:annotations;"`
}

// TableName returns the table name for the SegmentationRecord model
func (SegmentationRecord) TableName() string {
	return "segmentations"
}

// LabelRecord is a stored label of a project
type LabelRecord struct {
	ID        uint               `gorm:"primaryKey"`
	CreatedAt time.Time
	ProjectID uint               `gorm:"not null;uniqueIndex:idx_label_project_name"`
	Name      string             `gorm:"not null;uniqueIndex:idx_label_project_name"`
	Type      LabelType          `gorm:"type:varchar(20);not null;default:'single'"`
	Values    []LabelValueRecord `gorm:"foreignKey:LabelID"`
}

// TableName returns the table name for the LabelRecord model
func (LabelRecord) TableName() string {
	return "labels"
}

// LabelValueRecord is one selectable value of a stored label
type LabelValueRecord struct {
	ID        uint   `gorm:"primaryKey"`
	CreatedAt time.Time
	LabelID   uint   `gorm:"not null;index"`
	Value     string `gorm:"not null"`
}

// TableName returns the table name for the LabelValueRecord model
func (LabelValueRecord) TableName() string {
	return "label_values"
}

// CatalogModels lists every model the catalog store migrates
func CatalogModels() []any {
	return []any{&Project{}, &DataRecord{}, &SegmentationRecord{}, &LabelRecord{}, &LabelValueRecord{}}
}
