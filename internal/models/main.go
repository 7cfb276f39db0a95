// Package models defines the wire data structures exchanged with the 01blog API.
package models

import "time"

// Role identifies the privilege level carried in a user's token and records.
type Role string

const (
	// RoleUser is the default role assigned at registration.
	RoleUser Role = "USER"
	// RoleAdmin grants access to the moderation endpoints.
	RoleAdmin Role = "ADMIN"
)

// Post is a published entry in the feed.
type Post struct {
	// ID is the unique identifier for the post.
	ID int64 `json:"id"`
	// Title is the post headline, 5 to 150 characters.
	Title string `json:"title"`
	// Content is the post body.
	Content string `json:"content"`
	// UserID is the author's user id.
	UserID int64 `json:"userId"`
	// Username is the author's login name.
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	MediaURL  string    `json:"mediaUrl,omitempty"`
	MediaType string    `json:"mediaType,omitempty"`
	// Likes is the aggregate like count.
	Likes int `json:"likes"`
	// Liked reports whether the current user has liked the post.
	Liked bool `json:"liked"`
}

// Comment is a reply attached to a post.
type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	MediaURL  string    `json:"mediaUrl,omitempty"`
	MediaType string    `json:"mediaType,omitempty"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
}

// User is an account record as returned by the admin user listing.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	Role      Role   `json:"role"`
	Banned    bool   `json:"isBanned"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// UserProfile is the public profile view of a user.
type UserProfile struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Role           Role   `json:"role"`
	FollowersCount int    `json:"followersCount"`
	FollowingCount int    `json:"followingCount"`
	FollowedByMe   bool   `json:"isFollowedByCurrentUser"`
	About          string `json:"about,omitempty"`
	Banned         bool   `json:"isBanned,omitempty"`
	AvatarURL      string `json:"avatarUrl,omitempty"`
}

// Report is a user-submitted complaint about a post, visible to admins.
type Report struct {
	ID        int64     `json:"id"`
	Reason    string    `json:"reason"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`

	ReporterID       int64  `json:"reporterId"`
	ReporterUsername string `json:"reporterUsername"`

	PostID             int64  `json:"reportedPostId"`
	PostTitle          string `json:"reportedPostTitle"`
	PostContent        string `json:"reportedPostContent"`
	PostAuthorUsername string `json:"reportedPostAuthorUsername"`
}

// Notification is an event addressed to the current user.
type Notification struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	RelatedID int64     `json:"relatedId"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Credentials is the login/registration request payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse carries the issued bearer token after a successful login.
type AuthResponse struct {
	Token string `json:"token"`
}

// CreatePostRequest is the payload for publishing a new post.
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CreateCommentRequest is the payload for attaching a comment to a post.
type CreateCommentRequest struct {
	Content string `json:"content"`
	PostID  int64  `json:"postId"`
}

// CreateReportRequest is the payload for reporting a post.
type CreateReportRequest struct {
	PostID  int64  `json:"postId"`
	Reason  string `json:"reason"`
	Details string `json:"details"`
}
