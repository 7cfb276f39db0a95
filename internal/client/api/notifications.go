package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/x3alone/01blog/internal/models"
)

// Notifications lists the current user's notifications.
func (c *Client) Notifications(ctx context.Context) ([]models.Notification, error) {
	var ns []models.Notification
	err := c.do(ctx, http.MethodGet, "/api/notifications", nil, &ns)
	return ns, err
}

// UnreadCount returns the number of unread notifications.
func (c *Client) UnreadCount(ctx context.Context) (int64, error) {
	var count int64
	err := c.do(ctx, http.MethodGet, "/api/notifications/unread-count", nil, &count)
	return count, err
}

// MarkRead marks one notification as read.
func (c *Client) MarkRead(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/notifications/%d/read", id), nil, nil)
}

// MarkAllRead marks every notification as read.
func (c *Client) MarkAllRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPut, "/api/notifications/read-all", nil, nil)
}
