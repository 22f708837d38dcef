package models

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Description *string    `json:"description,omitempty"`
	CategoryID  *int       `json:"category_id,omitempty"`
	Price       int        `json:"price"`
	Tags        *string    `json:"tags,omitempty"`
	Level       *string    `json:"level,omitempty"`
	Language    *string    `json:"language,omitempty"`
	Duration    *string    `json:"duration,omitempty"`
	Thumbnail   *string    `json:"thumbnail,omitempty"`
	AuthorID    uuid.UUID  `json:"author_id"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CourseUpdate carries partial-update fields. Nil means "leave as is".
// Slug is immutable and deliberately absent.
type CourseUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	CategoryID  *int    `json:"category_id"`
	Price       *int    `json:"price"`
	Tags        *string `json:"tags"`
	Level       *string `json:"level"`
	Language    *string `json:"language"`
	Duration    *string `json:"duration"`
	Thumbnail   *string `json:"thumbnail"`
}

// CourseCategory groups courses by topic. Names are unique.
type CourseCategory struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type CourseCategoryUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
