package types

import "github.com/killallgit/annotator/internal/models"

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// TypeDataCreated tags the answer to a successful upload or registration
const TypeDataCreated = "DATA_CREATED"

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`   // Error code
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// DataCreatedResponse answers dataset uploads and registrations
type DataCreatedResponse struct {
	DataID  uint   `json:"data_id"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// ProjectResponse describes a created project, including its API key
type ProjectResponse struct {
	ProjectID uint   `json:"project_id"`
	Name      string `json:"name"`
	APIKey    string `json:"api_key"`
}

// LabelsResponse is the project label schema keyed by label name
type LabelsResponse map[string]models.Label
