package entity

import "time"

// Post is a published article. AuthorName is denormalized from the users
// table for rendering.
type Post struct {
	ID         int64
	AuthorID   int64
	AuthorName string
	Title      string
	Subtitle   string
	Body       string
	ImageURL   string
	CreatedAt  time.Time
}
