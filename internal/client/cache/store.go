package cache

import (
	"context"
	"database/sql"
	"time"

	"github.com/x3alone/01blog/internal/models"
)

// Store reads and writes the cached collections.
type Store struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewStore creates a Store over the given cache database.
func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

// ReplaceFeed swaps the cached feed for the given posts in one transaction.
func (s *Store) ReplaceFeed(ctx context.Context, posts []models.Post) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM posts`); err != nil {
		return err
	}
	for _, p := range posts {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO posts (id, title, content, user_id, username, created_at, likes, liked)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Title, p.Content, p.UserID, p.Username, p.CreatedAt.Unix(), p.Likes, p.Liked,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Feed returns the cached feed, newest first.
func (s *Store) Feed(ctx context.Context) ([]models.Post, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, title, content, user_id, username, created_at, likes, liked
		   FROM posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		var createdAt int64
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.UserID, &p.Username, &createdAt, &p.Likes, &p.Liked); err != nil {
			return nil, err
		}
		p.CreatedAt = time.Unix(createdAt, 0).UTC()
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ReplaceNotifications swaps the cached notification list in one transaction.
func (s *Store) ReplaceNotifications(ctx context.Context, ns []models.Notification) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM notifications`); err != nil {
		return err
	}
	for _, n := range ns {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO notifications (id, message, type, related_id, read, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			n.ID, n.Message, n.Type, n.RelatedID, n.Read, n.CreatedAt.Unix(),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Notifications returns the cached notifications, newest first.
func (s *Store) Notifications(ctx context.Context) ([]models.Notification, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, message, type, related_id, read, created_at
		   FROM notifications ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ns []models.Notification
	for rows.Next() {
		var n models.Notification
		var createdAt int64
		if err := rows.Scan(&n.ID, &n.Message, &n.Type, &n.RelatedID, &n.Read, &createdAt); err != nil {
			return nil, err
		}
		n.CreatedAt = time.Unix(createdAt, 0).UTC()
		ns = append(ns, n)
	}
	return ns, rows.Err()
}
