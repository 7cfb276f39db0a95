package state

import (
	"context"
	"testing"
	"time"

	"github.com/x3alone/01blog/internal/models"
)

func seedFeed(t *testing.T, env *testEnv) *Feed {
	t.Helper()
	now := time.Now()
	env.backend.posts = []models.Post{
		{ID: 1, Title: "older", CreatedAt: now.Add(-time.Hour), Likes: 3},
		{ID: 2, Title: "newer", CreatedAt: now, Likes: 10, Liked: true},
	}
	feed := NewFeed(env.coord, env.client)
	if err := feed.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	return feed
}

func TestFeedRefresh_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	feed := seedFeed(t, env)

	posts := feed.Posts()
	if len(posts) != 2 {
		t.Fatalf("got %d posts; want 2", len(posts))
	}
	if posts[0].ID != 2 || posts[1].ID != 1 {
		t.Errorf("order = [%d %d]; want newest first [2 1]", posts[0].ID, posts[1].ID)
	}
}

func TestToggleLike_Optimistic(t *testing.T) {
	env := newTestEnv(t)
	feed := seedFeed(t, env)

	if !feed.ToggleLike(context.Background(), 1) {
		t.Fatal("ToggleLike rejected")
	}

	// Visible before the confirmation settles.
	p, _ := feed.Get(1)
	if !p.Liked || p.Likes != 4 {
		t.Errorf("immediately after toggle: liked=%v likes=%d; want true/4", p.Liked, p.Likes)
	}

	env.coord.Wait()
	p, _ = feed.Get(1)
	if !p.Liked || p.Likes != 4 {
		t.Errorf("after confirmation: liked=%v likes=%d; want true/4", p.Liked, p.Likes)
	}
	if n := env.backend.callCount("POST /api/posts/{id}/like"); n != 1 {
		t.Errorf("like requests = %d; want 1", n)
	}
}

func TestToggleLike_RollbackOnFailure(t *testing.T) {
	env := newTestEnv(t)
	feed := seedFeed(t, env)
	env.backend.failWith("POST /api/posts/{id}/like", 500)

	if !feed.ToggleLike(context.Background(), 1) {
		t.Fatal("ToggleLike rejected")
	}
	env.coord.Wait()

	p, _ := feed.Get(1)
	if p.Liked || p.Likes != 3 {
		t.Errorf("after failed confirmation: liked=%v likes=%d; want the captured false/3", p.Liked, p.Likes)
	}
	if env.toasts.errors() != 1 {
		t.Errorf("error toasts = %d; want 1", env.toasts.errors())
	}
}

func TestToggleLike_UnlikeUsesWithdrawal(t *testing.T) {
	env := newTestEnv(t)
	feed := seedFeed(t, env)

	if !feed.ToggleLike(context.Background(), 2) {
		t.Fatal("ToggleLike rejected")
	}
	env.coord.Wait()

	p, _ := feed.Get(2)
	if p.Liked || p.Likes != 9 {
		t.Errorf("liked=%v likes=%d; want false/9", p.Liked, p.Likes)
	}
	if n := env.backend.callCount("DELETE /api/posts/{id}/like"); n != 1 {
		t.Errorf("unlike requests = %d; want 1", n)
	}
}

func TestToggleLike_UnknownPost(t *testing.T) {
	env := newTestEnv(t)
	feed := seedFeed(t, env)

	if feed.ToggleLike(context.Background(), 999) {
		t.Error("toggling an unknown post must be rejected")
	}
	env.coord.Wait()
	if n := env.backend.callCount("POST /api/posts/{id}/like"); n != 0 {
		t.Errorf("like requests = %d; want 0", n)
	}
}

func TestDeletePost_ConfirmedFirst(t *testing.T) {
	env := newTestEnv(t)
	feed := seedFeed(t, env)

	if !feed.Delete(context.Background(), 1) {
		t.Fatal("Delete rejected")
	}
	env.coord.Wait()
	if _, ok := feed.Get(1); ok {
		t.Error("post still present after confirmed deletion")
	}
	if len(feed.Posts()) != 1 {
		t.Errorf("feed size = %d; want 1", len(feed.Posts()))
	}
}

func TestDeletePost_FailureLeavesFeedIntact(t *testing.T) {
	env := newTestEnv(t)
	feed := seedFeed(t, env)
	env.backend.failWith("DELETE /api/posts/{id}", 500)

	if !feed.Delete(context.Background(), 1) {
		t.Fatal("Delete rejected")
	}
	env.coord.Wait()
	if _, ok := feed.Get(1); !ok {
		t.Error("failed deletion must leave the post in place")
	}
	if env.toasts.errors() != 1 {
		t.Errorf("error toasts = %d; want 1", env.toasts.errors())
	}
}
