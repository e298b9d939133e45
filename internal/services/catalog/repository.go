package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/killallgit/annotator/internal/models"
	"gorm.io/gorm"
)

const segmentationCount = "(SELECT COUNT(*) FROM segmentations WHERE segmentations.data_id = data.id)"

// RepositoryImpl implements the Repository interface
type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// CreateProject creates a new project
func (r *RepositoryImpl) CreateProject(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return fmt.Errorf("creating project: %w", err)
	}
	return nil
}

// GetProject retrieves a project by its ID
func (r *RepositoryImpl) GetProject(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return &project, nil
}

// GetProjectByAPIKey retrieves the project owning apiKey
func (r *RepositoryImpl) GetProjectByAPIKey(ctx context.Context, apiKey string) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Where("api_key = ?", apiKey).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project by api key: %w", err)
	}
	return &project, nil
}

// statusScope narrows a data query to one completion filter
func statusScope(active models.Status) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch active {
		case models.StatusPending:
			return db.Where(segmentationCount + " = 0")
		case models.StatusCompleted:
			return db.Where(segmentationCount + " > 0")
		case models.StatusMarkedReview:
			return db.Where("data.is_marked_for_review = ?", true)
		default:
			return db
		}
	}
}

type dataRow struct {
	ID                    uint
	CreatedAt             time.Time
	OriginalFilename      string
	YoutubeStartTime      int64
	NumberOfSegmentations int
}

// ListData returns one page of a project's clips under active, in id order
func (r *RepositoryImpl) ListData(ctx context.Context, projectID uint, active models.Status, offset, limit int) ([]models.DataItem, error) {
	var rows []dataRow
	err := r.db.WithContext(ctx).
		Model(&models.DataRecord{}).
		Select("data.id, data.created_at, data.original_filename, data.youtube_start_time, "+segmentationCount+" AS number_of_segmentations").
		Where("data.project_id = ?", projectID).
		Scopes(statusScope(active)).
		Order("data.id ASC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing data: %w", err)
	}

	items := make([]models.DataItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, models.DataItem{
			DataID:                int64(row.ID),
			OriginalFilename:      row.OriginalFilename,
			CreatedOn:             row.CreatedAt,
			NumberOfSegmentations: row.NumberOfSegmentations,
			YoutubeStartTimeMs:    row.YoutubeStartTime,
		})
	}
	return items, nil
}

// CountData counts a project's clips under active
func (r *RepositoryImpl) CountData(ctx context.Context, projectID uint, active models.Status) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.DataRecord{}).
		Where("data.project_id = ?", projectID).
		Scopes(statusScope(active)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting %s data: %w", active, err)
	}
	return int(count), nil
}

// GetData retrieves a clip with its segmentations and their label values
func (r *RepositoryImpl) GetData(ctx context.Context, projectID, dataID uint) (*models.DataRecord, error) {
	var record models.DataRecord
	err := r.db.WithContext(ctx).
		Preload("Segmentations", func(db *gorm.DB) *gorm.DB {
			return db.Order("segmentations.start_time ASC, segmentations.id ASC")
		}).
		Preload("Segmentations.Values").
		Where("project_id = ? AND id = ?", projectID, dataID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDataNotFound
		}
		return nil, fmt.Errorf("getting data: %w", err)
	}
	return &record, nil
}

// CreateData stores clips and any segmentations attached to them in one transaction
func (r *RepositoryImpl) CreateData(ctx context.Context, records ...*models.DataRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, record := range records {
			segs := record.Segmentations
			record.Segmentations = nil
			if err := tx.Create(record).Error; err != nil {
				return fmt.Errorf("creating data: %w", err)
			}
			for i := range segs {
				segs[i].DataID = record.ID
				if err := tx.Omit("Values.*").Create(&segs[i]).Error; err != nil {
					return fmt.Errorf("creating segmentation: %w", err)
				}
			}
			record.Segmentations = segs
		}
		return nil
	})
}

// SetMarkedForReview updates a clip's review flag
func (r *RepositoryImpl) SetMarkedForReview(ctx context.Context, projectID, dataID uint, marked bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.DataRecord{}).
		Where("project_id = ? AND id = ?", projectID, dataID).
		Update("is_marked_for_review", marked)
	if result.Error != nil {
		return fmt.Errorf("updating review flag: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDataNotFound
	}
	return nil
}

// CreateLabel creates a label together with its values
func (r *RepositoryImpl) CreateLabel(ctx context.Context, label *models.LabelRecord) error {
	if err := r.db.WithContext(ctx).Create(label).Error; err != nil {
		return fmt.Errorf("creating label: %w", err)
	}
	return nil
}

// GetLabels retrieves a project's labels with their values
func (r *RepositoryImpl) GetLabels(ctx context.Context, projectID uint) ([]models.LabelRecord, error) {
	var labels []models.LabelRecord
	err := r.db.WithContext(ctx).
		Preload("Values", func(db *gorm.DB) *gorm.DB {
			return db.Order("label_values.id ASC")
		}).
		Where("project_id = ?", projectID).
		Order("name ASC").
		Find(&labels).Error
	if err != nil {
		return nil, fmt.Errorf("getting labels: %w", err)
	}
	return labels, nil
}

// CreateSegmentation stores a segmentation and links its existing label values
func (r *RepositoryImpl) CreateSegmentation(ctx context.Context, seg *models.SegmentationRecord) error {
	if err := r.db.WithContext(ctx).Omit("Values.*").Create(seg).Error; err != nil {
		return fmt.Errorf("creating segmentation: %w", err)
	}
	return nil
}

// GetSegmentation retrieves a segmentation of a clip
func (r *RepositoryImpl) GetSegmentation(ctx context.Context, dataID, segmentationID uint) (*models.SegmentationRecord, error) {
	var seg models.SegmentationRecord
	err := r.db.WithContext(ctx).
		Preload("Values").
		Where("data_id = ? AND id = ?", dataID, segmentationID).
		First(&seg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSegmentationNotFound
		}
		return nil, fmt.Errorf("getting segmentation: %w", err)
	}
	return &seg, nil
}

// UpdateSegmentation rewrites bounds, transcription and label values
func (r *RepositoryImpl) UpdateSegmentation(ctx context.Context, seg *models.SegmentationRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.SegmentationRecord{}).
			Where("data_id = ? AND id = ?", seg.DataID, seg.ID).
			Updates(map[string]any{
				"start_time":    seg.StartTime,
				"end_time":      seg.EndTime,
				"transcription": seg.Transcription,
			})
		if result.Error != nil {
			return fmt.Errorf("updating segmentation: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrSegmentationNotFound
		}

		values := seg.Values
		if err := tx.Model(seg).Association("Values").Clear(); err != nil {
			return fmt.Errorf("clearing label values: %w", err)
		}
		if len(values) > 0 {
			if err := tx.Model(seg).Association("Values").Append(values); err != nil {
				return fmt.Errorf("linking label values: %w", err)
			}
		}
		seg.Values = values
		return nil
	})
}

// DeleteSegmentation removes a segmentation and its label links
func (r *RepositoryImpl) DeleteSegmentation(ctx context.Context, dataID, segmentationID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seg models.SegmentationRecord
		if err := tx.Where("data_id = ? AND id = ?", dataID, segmentationID).First(&seg).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSegmentationNotFound
			}
			return fmt.Errorf("getting segmentation: %w", err)
		}
		if err := tx.Model(&seg).Association("Values").Clear(); err != nil {
			return fmt.Errorf("clearing label values: %w", err)
		}
		if err := tx.Delete(&seg).Error; err != nil {
			return fmt.Errorf("deleting segmentation: %w", err)
		}
		return nil
	})
}
