// Package bookmarks remembers the last visited list page per status filter
// across annotate runs.
package bookmarks

import (
	"context"
	"time"

	"github.com/killallgit/annotator/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store keeps page bookmarks of one project in the local database
type Store struct {
	db        *gorm.DB
	projectID int64
	logger    *zap.Logger
}

// Option is a functional option for configuring the store
type Option func(*Store)

// WithLogger sets the store logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a store for projectID. The page_bookmarks table must be
// migrated (models.SessionModels).
func NewStore(db *gorm.DB, projectID int64, opts ...Option) *Store {
	s := &Store{db: db, projectID: projectID, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RememberPage records page as the last one visited for active. Failures are
// logged; a lost bookmark only means the next run starts on page 1.
func (s *Store) RememberPage(ctx context.Context, active models.Status, page int) {
	if page < 1 {
		page = 1
	}
	mark := models.PageBookmark{ProjectID: s.projectID, Active: active, Page: page, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}, {Name: "active"}},
		DoUpdates: clause.AssignmentColumns([]string{"page", "updated_at"}),
	}).Create(&mark).Error
	if err != nil {
		s.logger.Warn("saving page bookmark failed",
			zap.Int64("project_id", s.projectID),
			zap.String("active", string(active)),
			zap.Error(err))
	}
}

// LastPage returns the remembered page for active, or 1
func (s *Store) LastPage(ctx context.Context, active models.Status) int {
	var mark models.PageBookmark
	err := s.db.WithContext(ctx).
		Where("project_id = ? AND active = ?", s.projectID, active).
		Limit(1).
		Find(&mark).Error
	if err != nil {
		s.logger.Warn("reading page bookmark failed", zap.Error(err))
		return 1
	}
	if mark.Page < 1 {
		return 1
	}
	return mark.Page
}
