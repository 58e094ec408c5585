package models

import "time"

// Tag labels articles; names are unique ignoring case
type Tag struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

const MaxTagNameLength = 50

// TagCount pairs a tag with the number of articles referencing it
type TagCount struct {
	Tag   Tag
	Count int
}

// CreateTagRequest is the body of POST /api/tags
type CreateTagRequest struct {
	Name string `json:"name"`
}
