package state

import (
	"context"
	"sort"
	"sync"

	"github.com/x3alone/01blog/internal/client/api"
	"github.com/x3alone/01blog/internal/models"
)

// Feed is the locally rendered post list.
type Feed struct {
	mu    sync.Mutex
	posts []models.Post

	coord *Coordinator
	api   *api.Client
}

// NewFeed builds an empty feed over the given coordinator and API client.
func NewFeed(coord *Coordinator, client *api.Client) *Feed {
	return &Feed{coord: coord, api: client}
}

// Refresh replaces the feed with the server's state, newest first.
func (f *Feed) Refresh(ctx context.Context) error {
	posts, err := f.api.Posts(ctx)
	if err != nil {
		return err
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	f.mu.Lock()
	f.posts = posts
	f.mu.Unlock()
	return nil
}

// Posts returns a snapshot of the feed.
func (f *Feed) Posts() []models.Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Post, len(f.posts))
	copy(out, f.posts)
	return out
}

// Get returns the post with the given id from the local feed.
func (f *Feed) Get(id int64) (models.Post, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.ID == id {
			return p, true
		}
	}
	return models.Post{}, false
}

// patch applies fn to the post with the given id, if present.
func (f *Feed) patch(id int64, fn func(*models.Post)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.posts {
		if f.posts[i].ID == id {
			fn(&f.posts[i])
			return
		}
	}
}

// remove filters the post with the given id out of the feed.
func (f *Feed) remove(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.posts[:0]
	for _, p := range f.posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	f.posts = kept
}

// ToggleLike flips the liked flag and like count immediately and confirms
// with the server in the background, restoring the captured values on
// failure. Returns false when the post is unknown or a toggle is in flight.
func (f *Feed) ToggleLike(ctx context.Context, postID int64) bool {
	prev, ok := f.Get(postID)
	if !ok {
		return false
	}

	liked := !prev.Liked
	likes := prev.Likes
	if liked {
		likes++
	} else {
		likes--
	}

	return f.coord.Do(ctx, Key{ItemID: postID, Action: "like"}, Mutation{
		Apply: func() {
			f.patch(postID, func(p *models.Post) {
				p.Liked = liked
				p.Likes = likes
			})
		},
		Revert: func() {
			f.patch(postID, func(p *models.Post) {
				p.Liked = prev.Liked
				p.Likes = prev.Likes
			})
		},
		Confirm: func(ctx context.Context) error {
			if liked {
				return f.api.Like(ctx, postID)
			}
			return f.api.Unlike(ctx, postID)
		},
	})
}

// Delete removes a post from the local feed only after the server confirms.
func (f *Feed) Delete(ctx context.Context, postID int64) bool {
	return f.coord.Do(ctx, Key{ItemID: postID, Action: "delete post"}, Mutation{
		Confirm: func(ctx context.Context) error {
			return f.api.DeletePost(ctx, postID)
		},
		OnSuccess: func() {
			f.remove(postID)
		},
	})
}
