//revive:disable-next-line:var-naming // shared entity package name used across the project
package model

import "time"

// Blog is a blog post as delivered by the blog endpoints. AuthorName is a
// read-only denormalized snapshot; the author relation is owned by the
// backend.
type Blog struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Category   string `json:"category,omitempty"`
	AuthorID   string `json:"authorId"`
	AuthorName string `json:"authorName,omitempty"`
	ImageURL   string `json:"imageUrl,omitempty"`
	// Published is the post's visibility flag (the backend's "status").
	Published bool      `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateBlogInput carries the fields accepted when creating a post.
type CreateBlogInput struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Category  string `json:"category,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Published bool   `json:"status"`
}

// UpdateBlogInput carries the mutable post fields. Nil pointers mean
// "leave unchanged".
type UpdateBlogInput struct {
	Title     *string `json:"title,omitempty"`
	Content   *string `json:"content,omitempty"`
	Category  *string `json:"category,omitempty"`
	ImageURL  *string `json:"imageUrl,omitempty"`
	Published *bool   `json:"status,omitempty"`
}

// BlogListOptions groups list parameters for the blog listing.
type BlogListOptions struct {
	ListOptions
	// Published filters by visibility when non-nil.
	Published *bool
	// Category filters by category when non-empty.
	Category string
}

// BlogStats is the aggregate the backend reports for the blog dashboard
// card.
type BlogStats struct {
	Total      int `json:"total"`
	Published  int `json:"published"`
	Draft      int `json:"draft"`
	Categories int `json:"categories"`
}
