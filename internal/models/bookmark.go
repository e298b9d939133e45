package models

import "time"

// PageBookmark is the last list page a reviewer visited for one project and
// status filter. It lives in the annotator's local database, not on the
// dataset API.
type PageBookmark struct {
	ProjectID int64     `gorm:"primaryKey;autoIncrement:false"`
	Active    Status    `gorm:"primaryKey;size:32"`
	Page      int       `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for the PageBookmark model
func (PageBookmark) TableName() string {
	return "page_bookmarks"
}

// SessionModels lists the models the annotate command keeps locally
func SessionModels() []any {
	return []any{&PageBookmark{}}
}
