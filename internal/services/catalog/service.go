package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/killallgit/annotator/internal/models"
	apperrors "github.com/killallgit/annotator/pkg/errors"
	"go.uber.org/zap"
)

// DefaultPageSize is the number of clips per listing page
const DefaultPageSize = 10

// skipValue is the single-select placeholder meaning no selection
const skipValue = "-1"

// AllowedExtensions lists the audio formats a dataset may contain
var AllowedExtensions = []string{"wav", "mp3", "ogg"}

// AddDataRequest describes one uploaded clip
type AddDataRequest struct {
	Username               string
	Filename               string
	ReferenceTranscription string
	IsMarkedForReview      bool
	YoutubeStartTime       int64
	YoutubeEndTime         int64
	Segmentations          []models.SegmentationPayload
}

// RegisterRequest describes clips already placed in the audio directory.
// All lists are parallel.
type RegisterRequest struct {
	Username                string
	AudioFilenames          []string
	UUIDFilenames           []string
	YoutubeStartTimes       []int64
	YoutubeEndTimes         []int64
	ReferenceTranscriptions []string
}

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	repository Repository
	audioDir   string
	pageSize   int
	logger     *zap.Logger
}

// ServiceOption configures a ServiceImpl
type ServiceOption func(*ServiceImpl)

// WithAudioDir sets where uploaded clips are written
func WithAudioDir(dir string) ServiceOption {
	return func(s *ServiceImpl) { s.audioDir = dir }
}

// WithPageSize sets the listing page size
func WithPageSize(n int) ServiceOption {
	return func(s *ServiceImpl) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithLogger sets the service logger
func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *ServiceImpl) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a new catalog service
func NewService(repository Repository, opts ...ServiceOption) Service {
	s := &ServiceImpl{
		repository: repository,
		audioDir:   "./data/audios",
		pageSize:   DefaultPageSize,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateProject creates a project with a fresh API key
func (s *ServiceImpl) CreateProject(ctx context.Context, name string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.MissingFieldError("name")
	}
	project := &models.Project{Name: name, APIKey: hexID()}
	if err := s.repository.CreateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// CreateLabel adds a label and its values to a project
func (s *ServiceImpl) CreateLabel(ctx context.Context, projectID uint, name string, labelType models.LabelType, values []string) (*models.Label, error) {
	if _, err := s.project(ctx, projectID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.MissingFieldError("name")
	}
	if labelType == "" {
		labelType = models.LabelTypeSingle
	}
	if labelType != models.LabelTypeSingle && labelType != models.LabelTypeMultiselect {
		return nil, apperrors.ValidationError("type", fmt.Sprintf("unknown label type %q", labelType))
	}

	record := &models.LabelRecord{ProjectID: projectID, Name: name, Type: labelType}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			record.Values = append(record.Values, models.LabelValueRecord{Value: v})
		}
	}
	if err := s.repository.CreateLabel(ctx, record); err != nil {
		return nil, err
	}

	label := toLabel(*record)
	return &label, nil
}

// ListData returns one page of the listing with per-status counts
func (s *ServiceImpl) ListData(ctx context.Context, projectID uint, page int, active models.Status) (*models.PaginationWindow, error) {
	if _, err := s.project(ctx, projectID); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if active == "" {
		active = models.StatusPending
	}
	if !active.Valid() {
		return nil, apperrors.ValidationError("active", fmt.Sprintf("unknown status filter %q", active))
	}

	counts := make(map[models.Status]int, len(models.Statuses))
	for _, status := range models.Statuses {
		n, err := s.repository.CountData(ctx, projectID, status)
		if err != nil {
			return nil, err
		}
		counts[status] = n
	}

	items, err := s.repository.ListData(ctx, projectID, active, (page-1)*s.pageSize, s.pageSize)
	if err != nil {
		return nil, err
	}

	window := &models.PaginationWindow{
		Items:  items,
		Count:  counts,
		Active: active,
		Page:   page,
	}
	if page*s.pageSize < counts[active] {
		next := page + 1
		window.NextPage = &next
	}
	if page > 1 {
		prev := page - 1
		window.PrevPage = &prev
	}
	return window, nil
}

// GetData returns a clip with its segmentations
func (s *ServiceImpl) GetData(ctx context.Context, projectID, dataID uint) (*models.DataDetail, error) {
	record, err := s.data(ctx, projectID, dataID)
	if err != nil {
		return nil, err
	}
	labels, err := s.repository.GetLabels(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return toDetail(record, labels), nil
}

// SetMarkedForReview flips a clip's review flag and returns the updated clip
func (s *ServiceImpl) SetMarkedForReview(ctx context.Context, projectID, dataID uint, marked bool) (*models.DataDetail, error) {
	if err := s.repository.SetMarkedForReview(ctx, projectID, dataID, marked); err != nil {
		if errors.Is(err, ErrDataNotFound) {
			return nil, apperrors.NotFound("data", dataID).WithCause(err)
		}
		return nil, err
	}
	return s.GetData(ctx, projectID, dataID)
}

// GetLabels returns the project schema keyed by label name
func (s *ServiceImpl) GetLabels(ctx context.Context, projectID uint) (map[string]models.Label, error) {
	if _, err := s.project(ctx, projectID); err != nil {
		return nil, err
	}
	records, err := s.repository.GetLabels(ctx, projectID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]models.Label, len(records))
	for _, r := range records {
		out[r.Name] = toLabel(r)
	}
	return out, nil
}

// CreateSegmentation validates and stores a new segmentation on a clip
func (s *ServiceImpl) CreateSegmentation(ctx context.Context, projectID, dataID uint, payload models.SegmentationPayload) (*models.Segmentation, error) {
	if _, err := s.data(ctx, projectID, dataID); err != nil {
		return nil, err
	}
	labels, err := s.repository.GetLabels(ctx, projectID)
	if err != nil {
		return nil, err
	}
	seg, err := buildSegmentation(dataID, payload, labels)
	if err != nil {
		return nil, err
	}
	if err := s.repository.CreateSegmentation(ctx, seg); err != nil {
		return nil, err
	}

	s.logger.Debug("segmentation created",
		zap.Uint("data_id", dataID),
		zap.Uint("segmentation_id", seg.ID))
	out := toSegmentation(*seg, labels)
	return &out, nil
}

// UpdateSegmentation validates and replaces an existing segmentation
func (s *ServiceImpl) UpdateSegmentation(ctx context.Context, projectID, dataID, segmentationID uint, payload models.SegmentationPayload) (*models.Segmentation, error) {
	if _, err := s.data(ctx, projectID, dataID); err != nil {
		return nil, err
	}
	labels, err := s.repository.GetLabels(ctx, projectID)
	if err != nil {
		return nil, err
	}
	seg, err := buildSegmentation(dataID, payload, labels)
	if err != nil {
		return nil, err
	}
	seg.ID = segmentationID

	if err := s.repository.UpdateSegmentation(ctx, seg); err != nil {
		if errors.Is(err, ErrSegmentationNotFound) {
			return nil, apperrors.NotFound("segmentation", segmentationID).WithCause(err)
		}
		return nil, err
	}
	out := toSegmentation(*seg, labels)
	return &out, nil
}

// DeleteSegmentation removes a segmentation from a clip
func (s *ServiceImpl) DeleteSegmentation(ctx context.Context, projectID, dataID, segmentationID uint) error {
	if _, err := s.data(ctx, projectID, dataID); err != nil {
		return err
	}
	if err := s.repository.DeleteSegmentation(ctx, dataID, segmentationID); err != nil {
		if errors.Is(err, ErrSegmentationNotFound) {
			return apperrors.NotFound("segmentation", segmentationID).WithCause(err)
		}
		return err
	}
	return nil
}

// AddData stores an uploaded clip under a generated name together with any
// segmentations supplied with it
func (s *ServiceImpl) AddData(ctx context.Context, apiKey string, req AddDataRequest, audio io.Reader) (uint, error) {
	project, err := s.projectByKey(ctx, apiKey)
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(req.Username) == "" {
		return 0, apperrors.MissingFieldError("username")
	}

	original := filepath.Base(req.Filename)
	ext, err := checkExtension(original)
	if err != nil {
		return 0, err
	}

	labels, err := s.repository.GetLabels(ctx, project.ID)
	if err != nil {
		return 0, err
	}
	segs := make([]models.SegmentationRecord, 0, len(req.Segmentations))
	for _, payload := range req.Segmentations {
		seg, err := buildSegmentation(0, payload, labels)
		if err != nil {
			return 0, err
		}
		segs = append(segs, *seg)
	}

	filename := hexID() + ext
	if err := s.writeAudio(filename, audio); err != nil {
		return 0, err
	}

	record := &models.DataRecord{
		ProjectID:              project.ID,
		Filename:               filename,
		OriginalFilename:       original,
		ReferenceTranscription: req.ReferenceTranscription,
		IsMarkedForReview:      req.IsMarkedForReview,
		AssignedTo:             req.Username,
		YoutubeStartTime:       req.YoutubeStartTime,
		YoutubeEndTime:         req.YoutubeEndTime,
		Segmentations:          segs,
	}
	if err := s.repository.CreateData(ctx, record); err != nil {
		_ = os.Remove(filepath.Join(s.audioDir, filename))
		return 0, err
	}

	s.logger.Info("data created",
		zap.Uint("project_id", project.ID),
		zap.Uint("data_id", record.ID),
		zap.String("filename", filename))
	return record.ID, nil
}

// RegisterDataset records clips whose audio already sits in the audio
// directory. It returns the id of the last clip created.
func (s *ServiceImpl) RegisterDataset(ctx context.Context, apiKey string, req RegisterRequest) (uint, error) {
	project, err := s.projectByKey(ctx, apiKey)
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(req.Username) == "" {
		return 0, apperrors.MissingFieldError("username")
	}

	n := len(req.AudioFilenames)
	if n == 0 {
		return 0, apperrors.MissingFieldError("audio_filenames")
	}
	for _, list := range []struct {
		name string
		n    int
	}{
		{"uuid filenames", len(req.UUIDFilenames)},
		{"youtube start times", len(req.YoutubeStartTimes)},
		{"youtube end times", len(req.YoutubeEndTimes)},
		{"reference transcriptions", len(req.ReferenceTranscriptions)},
	} {
		if list.n != n {
			return 0, apperrors.New(apperrors.ErrCodeValidation,
				fmt.Sprintf("Number of original filenames and %s are not equal", list.name)).
				WithCause(ErrMismatchedLists)
		}
	}

	records := make([]*models.DataRecord, 0, n)
	for i, name := range req.AudioFilenames {
		original := filepath.Base(name)
		if _, err := checkExtension(original); err != nil {
			return 0, err
		}
		records = append(records, &models.DataRecord{
			ProjectID:              project.ID,
			Filename:               req.UUIDFilenames[i],
			OriginalFilename:       original,
			ReferenceTranscription: req.ReferenceTranscriptions[i],
			AssignedTo:             req.Username,
			YoutubeStartTime:       req.YoutubeStartTimes[i],
			YoutubeEndTime:         req.YoutubeEndTimes[i],
		})
	}

	if err := s.repository.CreateData(ctx, records...); err != nil {
		return 0, err
	}
	s.logger.Info("dataset registered",
		zap.Uint("project_id", project.ID),
		zap.Int("clips", len(records)))
	return records[len(records)-1].ID, nil
}

func (s *ServiceImpl) project(ctx context.Context, projectID uint) (*models.Project, error) {
	project, err := s.repository.GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return nil, apperrors.NotFound("project", projectID).WithCause(err)
		}
		return nil, err
	}
	return project, nil
}

func (s *ServiceImpl) projectByKey(ctx context.Context, apiKey string) (*models.Project, error) {
	if apiKey == "" {
		return nil, apperrors.New(apperrors.ErrCodeValidation, "API Key missing from `Authorization` Header").
			WithCause(ErrMissingAPIKey)
	}
	project, err := s.repository.GetProjectByAPIKey(ctx, apiKey)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "No project exist with given API Key").WithCause(err)
		}
		return nil, err
	}
	return project, nil
}

func (s *ServiceImpl) data(ctx context.Context, projectID, dataID uint) (*models.DataRecord, error) {
	record, err := s.repository.GetData(ctx, projectID, dataID)
	if err != nil {
		if errors.Is(err, ErrDataNotFound) {
			return nil, apperrors.NotFound("data", dataID).WithCause(err)
		}
		return nil, err
	}
	return record, nil
}

func (s *ServiceImpl) writeAudio(filename string, audio io.Reader) error {
	if audio == nil {
		return apperrors.MissingFieldError("audio_file")
	}
	if err := os.MkdirAll(s.audioDir, 0755); err != nil {
		return fmt.Errorf("creating audio directory: %w", err)
	}
	f, err := os.Create(filepath.Join(s.audioDir, filename))
	if err != nil {
		return fmt.Errorf("creating audio file: %w", err)
	}
	if _, err := io.Copy(f, audio); err != nil {
		f.Close()
		return fmt.Errorf("writing audio file: %w", err)
	}
	return f.Close()
}

// checkExtension returns the lowercased extension of name when it is an
// allowed audio format. A name without extension is accepted.
func checkExtension(name string) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if len(ext) <= 1 {
		return ext, nil
	}
	for _, allowed := range AllowedExtensions {
		if ext[1:] == allowed {
			return ext, nil
		}
	}
	return "", apperrors.New(apperrors.ErrCodeValidation, "File format is not supported").
		WithDetail("filename", name).
		WithCause(ErrUnsupportedFormat)
}

func hexID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// buildSegmentation validates a payload against the project labels and
// resolves every annotation to stored label values
func buildSegmentation(dataID uint, payload models.SegmentationPayload, labels []models.LabelRecord) (*models.SegmentationRecord, error) {
	if payload.Start < 0 || payload.End <= payload.Start {
		return nil, apperrors.ValidationError("end_time",
			fmt.Sprintf("segment [%g, %g] is not a valid interval", payload.Start, payload.End)).
			WithCause(ErrInvalidBounds)
	}

	byName := make(map[string]*models.LabelRecord, len(labels))
	for i := range labels {
		byName[labels[i].Name] = &labels[i]
	}

	names := make([]string, 0, len(payload.Annotations))
	for name := range payload.Annotations {
		names = append(names, name)
	}
	sort.Strings(names)

	var values []models.LabelValueRecord
	for _, name := range names {
		label, ok := byName[name]
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeNotFound,
				fmt.Sprintf("Label not found with name: `%s`", name)).
				WithCause(ErrLabelNotFound)
		}

		ann := payload.Annotations[name]
		ids := ann.Values.List
		if !ann.Values.Multi {
			if ann.Values.Single == "" || ann.Values.Single == skipValue {
				continue
			}
			ids = []string{ann.Values.Single}
		}

		for _, raw := range ids {
			value, ok := findValue(label, raw)
			if !ok {
				return nil, apperrors.New(apperrors.ErrCodeValidation,
					fmt.Sprintf("`%s` does not have label value with id `%s`", name, raw)).
					WithDetail("label", name).
					WithCause(ErrUnknownLabelValue)
			}
			values = append(values, value)
		}
	}

	return &models.SegmentationRecord{
		DataID:        dataID,
		StartTime:     payload.Start,
		EndTime:       payload.End,
		Transcription: payload.Transcription,
		Values:        values,
	}, nil
}

func findValue(label *models.LabelRecord, raw string) (models.LabelValueRecord, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return models.LabelValueRecord{}, false
	}
	for _, v := range label.Values {
		if uint64(v.ID) == id {
			return v, true
		}
	}
	return models.LabelValueRecord{}, false
}
