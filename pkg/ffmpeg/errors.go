package ffmpeg

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrFFprobeNotFound  = errors.New("ffprobe binary not found")
	ErrInvalidAudioFile = errors.New("invalid or unsupported audio file")
)

// ProcessingError represents a failed ffprobe invocation
type ProcessingError struct {
	Operation string // metadata_extraction, metadata_parsing, metadata_validation
	Source    string
	Err       error
	Stderr    string
}

func (e *ProcessingError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("ffprobe %s failed for %s: %v (stderr: %s)", e.Operation, e.Source, e.Err, e.Stderr)
	}
	return fmt.Sprintf("ffprobe %s failed for %s: %v", e.Operation, e.Source, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// NewProcessingError creates a new ProcessingError
func NewProcessingError(operation, source string, err error, stderr string) *ProcessingError {
	return &ProcessingError{
		Operation: operation,
		Source:    source,
		Err:       err,
		Stderr:    stderr,
	}
}
