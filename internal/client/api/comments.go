package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/x3alone/01blog/internal/client/transport"
	"github.com/x3alone/01blog/internal/models"
)

// Comments fetches all comments attached to a post.
func (c *Client) Comments(ctx context.Context, postID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/comments/post/%d", postID), nil, &comments)
	return comments, err
}

// AddComment attaches a comment to a post and returns the stored record.
func (c *Client) AddComment(ctx context.Context, postID int64, content string) (models.Comment, error) {
	var comment models.Comment
	if strings.TrimSpace(content) == "" {
		return comment, transport.Invalid("comment content is required")
	}
	req := models.CreateCommentRequest{Content: content, PostID: postID}
	err := c.do(ctx, http.MethodPost, "/api/comments", req, &comment)
	return comment, err
}

// DeleteComment removes a comment; the backend enforces ownership.
func (c *Client) DeleteComment(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/comments/%d", id), nil, nil)
}
