package models

import (
	"time"

	"github.com/google/uuid"
)

type Section struct {
	ID          uuid.UUID `json:"id"`
	CourseID    uuid.UUID `json:"course_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Ordering    int       `json:"ordering"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SectionUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// SectionOrdering is one element of a bulk reorder request.
type SectionOrdering struct {
	SectionID uuid.UUID `json:"section_id"`
	Ordering  int       `json:"ordering"`
}
