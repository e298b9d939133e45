package dataset

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/killallgit/annotator/internal/models"
	"github.com/killallgit/annotator/internal/services/cache"
	"go.uber.org/zap"
)

// FetchPage lists one page of the current user's items under active
func (c *Client) FetchPage(ctx context.Context, page int, active models.Status) (*models.PaginationWindow, error) {
	if page < 1 {
		page = 1
	}
	if active == "" {
		active = models.StatusPending
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("active", string(active))

	var window models.PaginationWindow
	path := fmt.Sprintf("/api/current_user/projects/%d/data", c.config.ProjectID)
	if err := c.do(ctx, http.MethodGet, path, query, nil, &window); err != nil {
		return nil, fmt.Errorf("fetch page %d (%s): %w", page, active, err)
	}
	if window.Page == 0 {
		window.Page = page
	}
	if window.Active == "" {
		window.Active = active
	}
	return &window, nil
}

// GetData fetches the full record of one item
func (c *Client) GetData(ctx context.Context, dataID int64) (*models.DataDetail, error) {
	var detail models.DataDetail
	if err := c.do(ctx, http.MethodGet, c.projectPath("/data/%d", dataID), nil, nil, &detail); err != nil {
		return nil, fmt.Errorf("get data %d: %w", dataID, err)
	}
	return &detail, nil
}

// SetMarkedForReview patches the review flag of one item
func (c *Client) SetMarkedForReview(ctx context.Context, dataID int64, marked bool) (*models.DataDetail, error) {
	body := map[string]bool{"is_marked_for_review": marked}

	var detail models.DataDetail
	if err := c.do(ctx, http.MethodPatch, c.projectPath("/data/%d", dataID), nil, body, &detail); err != nil {
		return nil, fmt.Errorf("mark data %d for review: %w", dataID, err)
	}
	return &detail, nil
}

func (c *Client) labelsKey() string {
	return fmt.Sprintf("labels:%d", c.config.ProjectID)
}

// GetLabels returns the project label schema. The schema is read-only for a
// reviewer, so it is cached when the client has a cache.
func (c *Client) GetLabels(ctx context.Context) (map[string]models.Label, error) {
	var labels map[string]models.Label
	if c.cache != nil && cache.GetJSON(ctx, c.cache, c.labelsKey(), &labels) {
		return withKeys(labels), nil
	}

	if err := c.do(ctx, http.MethodGet, c.projectPath("/labels"), nil, nil, &labels); err != nil {
		return nil, fmt.Errorf("get labels: %w", err)
	}
	if labels == nil {
		labels = map[string]models.Label{}
	}

	if c.cache != nil {
		if err := cache.SetJSON(ctx, c.cache, c.labelsKey(), labels, c.config.LabelCacheTTL); err != nil {
			c.logger.Warn("caching labels failed", zap.Error(err))
		}
	}
	return withKeys(labels), nil
}

// InvalidateLabels drops the cached schema
func (c *Client) InvalidateLabels(ctx context.Context) {
	if c.cache != nil {
		_ = c.cache.Delete(ctx, c.labelsKey())
	}
}

func withKeys(labels map[string]models.Label) map[string]models.Label {
	for key, label := range labels {
		label.Key = key
		labels[key] = label
	}
	return labels
}
