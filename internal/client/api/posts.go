package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/x3alone/01blog/internal/client/transport"
	"github.com/x3alone/01blog/internal/models"
)

// Posts fetches the full feed.
func (c *Client) Posts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := c.do(ctx, http.MethodGet, "/api/posts", nil, &posts)
	return posts, err
}

// Post fetches a single post by id.
func (c *Client) Post(ctx context.Context, id int64) (models.Post, error) {
	var post models.Post
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/posts/%d", id), nil, &post)
	return post, err
}

// CreatePost publishes a new post.
func (c *Client) CreatePost(ctx context.Context, req models.CreatePostRequest) (models.Post, error) {
	var post models.Post
	if err := validatePost(req); err != nil {
		return post, err
	}
	err := c.do(ctx, http.MethodPost, "/api/posts", req, &post)
	return post, err
}

// UpdatePost replaces the title and content of an existing post.
func (c *Client) UpdatePost(ctx context.Context, id int64, req models.CreatePostRequest) (models.Post, error) {
	var post models.Post
	if err := validatePost(req); err != nil {
		return post, err
	}
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/posts/%d", id), req, &post)
	return post, err
}

// DeletePost removes a post.
func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/posts/%d", id), nil, nil)
}

// Like records the current user's like on a post.
func (c *Client) Like(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/like", id), nil, nil)
}

// Unlike withdraws the current user's like.
func (c *Client) Unlike(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/posts/%d/like", id), nil, nil)
}

func validatePost(req models.CreatePostRequest) error {
	title := strings.TrimSpace(req.Title)
	if len(title) < 5 || len(title) > 150 {
		return transport.Invalid("title must be between 5 and 150 characters")
	}
	if strings.TrimSpace(req.Content) == "" {
		return transport.Invalid("content is required")
	}
	return nil
}
