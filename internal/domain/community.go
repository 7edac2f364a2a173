package domain

import "time"

// Post is a community board discussion post.
type Post struct {
	ID            string    `json:"id"`
	Author        string    `json:"author"`
	Category      string    `json:"category"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Tags          []string  `json:"tags"`
	Likes         int       `json:"likes"`
	CommentsCount int       `json:"comments_count"`
	IsPinned      bool      `json:"is_pinned"`
	CreatedAt     time.Time `json:"created_at"`
}

// Comment is a reply attached to a Post.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
