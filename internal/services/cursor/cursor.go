package cursor

import (
	"context"
	"errors"

	"github.com/killallgit/annotator/internal/models"
	"github.com/killallgit/annotator/internal/services/ordering"
	apperrors "github.com/killallgit/annotator/pkg/errors"
	"go.uber.org/zap"
)

// ErrNotFound is returned when the current item is not part of its window,
// typically because it no longer matches the window's status filter
var ErrNotFound = errors.New("cannot locate item in this view")

// PageFetcher loads one page of the dataset listing
type PageFetcher interface {
	FetchPage(ctx context.Context, page int, active models.Status) (*models.PaginationWindow, error)
}

// Resolver computes previous/next neighbors across page boundaries
type Resolver struct {
	fetcher PageFetcher
	logger  *zap.Logger
}

// NewResolver creates a neighbor resolver backed by fetcher
func NewResolver(fetcher PageFetcher, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{fetcher: fetcher, logger: logger}
}

// Resolve returns the neighbors of currentID. Interior items never trigger a
// fetch; items at a window edge fetch the adjacent page. A failed or empty
// adjacent page leaves that neighbor nil rather than failing the call.
func (r *Resolver) Resolve(ctx context.Context, window *models.PaginationWindow, currentID int64) (models.Cursor, error) {
	var cur models.Cursor
	if window == nil {
		return cur, notFound(currentID)
	}

	sorted := ordering.Sort(window.Items)
	idx := -1
	for i, item := range sorted {
		if item.DataID == currentID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return cur, notFound(currentID)
	}

	last := len(sorted) - 1

	if idx > 0 {
		cur.Previous = models.NeighborOf(sorted[idx-1], window.Page, window.Active)
	} else {
		cur.Previous = r.edgeNeighbor(ctx, window, window.PrevPage, false)
	}

	if idx < last {
		cur.Next = models.NeighborOf(sorted[idx+1], window.Page, window.Active)
	} else {
		cur.Next = r.edgeNeighbor(ctx, window, window.NextPage, true)
	}

	return cur, nil
}

// edgeNeighbor fetches the adjacent page and takes its first (forward) or
// last (backward) sorted item
func (r *Resolver) edgeNeighbor(ctx context.Context, window *models.PaginationWindow, page *int, forward bool) *models.Neighbor {
	if page == nil || r.fetcher == nil {
		return nil
	}

	adjacent, err := r.fetcher.FetchPage(ctx, *page, window.Active)
	if err != nil {
		r.logger.Warn("adjacent page unavailable",
			zap.Int("page", *page),
			zap.String("active", string(window.Active)),
			zap.Error(err))
		return nil
	}
	if adjacent == nil || len(adjacent.Items) == 0 {
		r.logger.Debug("adjacent page is empty", zap.Int("page", *page))
		return nil
	}

	sorted := ordering.Sort(adjacent.Items)
	item := sorted[len(sorted)-1]
	if forward {
		item = sorted[0]
	}
	return models.NeighborOf(item, *page, window.Active)
}

func notFound(id int64) error {
	return apperrors.NotFound("data item", id).WithCause(ErrNotFound)
}
