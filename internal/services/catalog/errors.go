package catalog

import "errors"

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrDataNotFound         = errors.New("data not found")
	ErrSegmentationNotFound = errors.New("segmentation not found")
	ErrLabelNotFound        = errors.New("label not found")
	ErrUnknownLabelValue    = errors.New("unknown label value")
	ErrMissingAPIKey        = errors.New("api key missing")
	ErrUnsupportedFormat    = errors.New("file format is not supported")
	ErrMismatchedLists      = errors.New("mismatched dataset lists")
	ErrInvalidBounds        = errors.New("invalid segmentation bounds")
)
