package catalog

import (
	"context"
	"io"

	"github.com/killallgit/annotator/internal/models"
)

// Repository defines data access for projects, clips, labels and segmentations
type Repository interface {
	// Projects
	CreateProject(ctx context.Context, project *models.Project) error
	GetProject(ctx context.Context, id uint) (*models.Project, error)
	GetProjectByAPIKey(ctx context.Context, apiKey string) (*models.Project, error)

	// Data
	ListData(ctx context.Context, projectID uint, active models.Status, offset, limit int) ([]models.DataItem, error)
	CountData(ctx context.Context, projectID uint, active models.Status) (int, error)
	GetData(ctx context.Context, projectID, dataID uint) (*models.DataRecord, error)
	CreateData(ctx context.Context, records ...*models.DataRecord) error
	SetMarkedForReview(ctx context.Context, projectID, dataID uint, marked bool) error

	// Labels
	CreateLabel(ctx context.Context, label *models.LabelRecord) error
	GetLabels(ctx context.Context, projectID uint) ([]models.LabelRecord, error)

	// Segmentations
	CreateSegmentation(ctx context.Context, seg *models.SegmentationRecord) error
	GetSegmentation(ctx context.Context, dataID, segmentationID uint) (*models.SegmentationRecord, error)
	UpdateSegmentation(ctx context.Context, seg *models.SegmentationRecord) error
	DeleteSegmentation(ctx context.Context, dataID, segmentationID uint) error
}

// Service defines the dataset backend's business rules
type Service interface {
	CreateProject(ctx context.Context, name string) (*models.Project, error)
	CreateLabel(ctx context.Context, projectID uint, name string, labelType models.LabelType, values []string) (*models.Label, error)

	ListData(ctx context.Context, projectID uint, page int, active models.Status) (*models.PaginationWindow, error)
	GetData(ctx context.Context, projectID, dataID uint) (*models.DataDetail, error)
	SetMarkedForReview(ctx context.Context, projectID, dataID uint, marked bool) (*models.DataDetail, error)
	GetLabels(ctx context.Context, projectID uint) (map[string]models.Label, error)

	CreateSegmentation(ctx context.Context, projectID, dataID uint, payload models.SegmentationPayload) (*models.Segmentation, error)
	UpdateSegmentation(ctx context.Context, projectID, dataID, segmentationID uint, payload models.SegmentationPayload) (*models.Segmentation, error)
	DeleteSegmentation(ctx context.Context, projectID, dataID, segmentationID uint) error

	AddData(ctx context.Context, apiKey string, req AddDataRequest, audio io.Reader) (uint, error)
	RegisterDataset(ctx context.Context, apiKey string, req RegisterRequest) (uint, error)
}
