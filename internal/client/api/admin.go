package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/x3alone/01blog/internal/models"
)

// AllUsers lists every account. Admin only.
func (c *Client) AllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := c.do(ctx, http.MethodGet, "/api/users/all", nil, &users)
	return users, err
}

// Profile fetches the public profile of a user.
func (c *Client) Profile(ctx context.Context, id int64) (models.UserProfile, error) {
	var profile models.UserProfile
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil, &profile)
	return profile, err
}

// Promote raises a user to the admin role. Admin only.
func (c *Client) Promote(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/users/%d/promote", id), nil, nil)
}

// Demote lowers a user back to the regular role. Admin only.
func (c *Client) Demote(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/users/%d/demote", id), nil, nil)
}

// ToggleBan flips a user's banned flag. Admin only.
func (c *Client) ToggleBan(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/users/%d/ban", id), nil, nil)
}
