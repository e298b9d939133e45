package types

import (
	"github.com/killallgit/annotator/internal/database"
	"github.com/killallgit/annotator/internal/services/cache"
	"github.com/killallgit/annotator/internal/services/catalog"
	"go.uber.org/zap"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB            *database.DB
	Catalog       catalog.Service
	ResponseCache cache.Cache
	AudioDir      string
	Logger        *zap.Logger
}

// Log returns the configured logger or a no-op logger
func (d *Dependencies) Log() *zap.Logger {
	if d == nil || d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
