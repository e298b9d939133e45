package session

import (
	"errors"

	apperrors "github.com/killallgit/annotator/pkg/errors"
)

var (
	// ErrBusy rejects a mutation or navigation while a save, delete, skip or
	// review-flag change is pending
	ErrBusy        = apperrors.New(apperrors.ErrCodeBusy, "a save or delete is still pending")
	ErrNoNeighbor  = errors.New("no item in that direction")
	ErrNoSelection = errors.New("no segment selected")
	ErrClosed      = errors.New("session is closed")
	// ErrNoAudio is returned by Skip before the clip duration is known
	ErrNoAudio = errors.New("clip duration is unknown")
)
