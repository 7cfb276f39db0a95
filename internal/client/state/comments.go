package state

import (
	"context"
	"sync"

	"github.com/x3alone/01blog/internal/client/api"
	"github.com/x3alone/01blog/internal/models"
)

// CommentList is the local comment thread of one post. Additions and removals
// take effect only after the server confirms, since neither is cheaply
// reversible in the rendered thread.
type CommentList struct {
	mu       sync.Mutex
	postID   int64
	comments []models.Comment

	coord *Coordinator
	api   *api.Client
}

// NewCommentList builds an empty thread for the given post.
func NewCommentList(coord *Coordinator, client *api.Client, postID int64) *CommentList {
	return &CommentList{coord: coord, api: client, postID: postID}
}

// Refresh replaces the thread with the server's state.
func (l *CommentList) Refresh(ctx context.Context) error {
	comments, err := l.api.Comments(ctx, l.postID)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.comments = comments
	l.mu.Unlock()
	return nil
}

// Comments returns a snapshot of the thread.
func (l *CommentList) Comments() []models.Comment {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Comment, len(l.comments))
	copy(out, l.comments)
	return out
}

// Add submits a comment and appends the stored record once confirmed.
func (l *CommentList) Add(ctx context.Context, content string) bool {
	return l.coord.Do(ctx, Key{ItemID: l.postID, Action: "add comment"}, Mutation{
		Confirm: func(ctx context.Context) error {
			comment, err := l.api.AddComment(ctx, l.postID, content)
			if err != nil {
				return err
			}
			l.mu.Lock()
			l.comments = append(l.comments, comment)
			l.mu.Unlock()
			return nil
		},
	})
}

// Delete removes a comment from the thread on confirmed success only.
func (l *CommentList) Delete(ctx context.Context, commentID int64) bool {
	return l.coord.Do(ctx, Key{ItemID: commentID, Action: "delete comment"}, Mutation{
		Confirm: func(ctx context.Context) error {
			return l.api.DeleteComment(ctx, commentID)
		},
		OnSuccess: func() {
			l.mu.Lock()
			kept := l.comments[:0]
			for _, c := range l.comments {
				if c.ID != commentID {
					kept = append(kept, c)
				}
			}
			l.comments = kept
			l.mu.Unlock()
		},
	})
}
