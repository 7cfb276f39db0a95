package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/x3alone/01blog/internal/client/transport"
	"github.com/x3alone/01blog/internal/models"
)

// CreateReport files a complaint about a post.
func (c *Client) CreateReport(ctx context.Context, postID int64, reason, details string) error {
	if strings.TrimSpace(reason) == "" {
		return transport.Invalid("report reason is required")
	}
	req := models.CreateReportRequest{PostID: postID, Reason: reason, Details: details}
	return c.do(ctx, http.MethodPost, "/api/reports", req, nil)
}

// Reports lists all open reports. Admin only.
func (c *Client) Reports(ctx context.Context) ([]models.Report, error) {
	var reports []models.Report
	err := c.do(ctx, http.MethodGet, "/api/reports", nil, &reports)
	return reports, err
}

// DeleteReport dismisses a report. Admin only.
func (c *Client) DeleteReport(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/reports/%d", id), nil, nil)
}
