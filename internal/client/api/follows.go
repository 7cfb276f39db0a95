package api

import (
	"context"
	"fmt"
	"net/http"
)

// Follow subscribes the current user to userID's posts.
func (c *Client) Follow(ctx context.Context, userID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/follows/%d", userID), nil, nil)
}

// Unfollow removes the subscription.
func (c *Client) Unfollow(ctx context.Context, userID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/follows/%d", userID), nil, nil)
}

// IsFollowing reports whether the current user follows userID.
func (c *Client) IsFollowing(ctx context.Context, userID int64) (bool, error) {
	var resp struct {
		IsFollowing bool `json:"isFollowing"`
	}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/follows/%d/check", userID), nil, &resp)
	return resp.IsFollowing, err
}
