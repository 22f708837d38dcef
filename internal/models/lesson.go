package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ContentTypeArticle = "article"
	ContentTypeVideo   = "video"
	ContentTypePDF     = "pdf"
	ContentTypeQuiz    = "quiz"

	AccessTypeFree = "free"
	AccessTypePaid = "paid"
)

type Lesson struct {
	ID                  uuid.UUID `json:"id"`
	CourseID            uuid.UUID `json:"course_id"`
	SectionID           uuid.UUID `json:"section_id"`
	Title               string    `json:"title"`
	Description         *string   `json:"description,omitempty"`
	Thumbnail           *string   `json:"thumbnail,omitempty"`
	ContentType         string    `json:"content_type"`
	AccessType          string    `json:"access_type"`
	QuizAttemptsAllowed int       `json:"quiz_attempts_allowed"`
	Ordering            int       `json:"ordering"`
	Duration            int       `json:"duration"`
	Published           bool      `json:"published"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type ArticleContent struct {
	ID        uuid.UUID `json:"id"`
	LessonID  uuid.UUID `json:"lesson_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type FileContent struct {
	ID        uuid.UUID `json:"id"`
	LessonID  uuid.UUID `json:"lesson_id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QuizContent is one question of a quiz lesson. A lesson holds one row per
// question, unique on (lesson_id, question).
type QuizContent struct {
	ID        uuid.UUID `json:"id"`
	LessonID  uuid.UUID `json:"lesson_id"`
	Question  string    `json:"question"`
	Option1   string    `json:"option_1"`
	Option2   string    `json:"option_2"`
	Option3   *string   `json:"option_3,omitempty"`
	Option4   *string   `json:"option_4,omitempty"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LessonContent is the tagged union of content variants. Exactly one branch
// is populated, selected by the lesson's content_type.
type LessonContent struct {
	Article *ArticleContent `json:"article,omitempty"`
	File    *FileContent    `json:"file,omitempty"`
	Quiz    []QuizContent   `json:"quiz,omitempty"`
}

type LessonDetail struct {
	Lesson  Lesson        `json:"lesson"`
	Content LessonContent `json:"content"`
}

type LessonUpdate struct {
	Title               *string `json:"title"`
	Description         *string `json:"description"`
	Thumbnail           *string `json:"thumbnail"`
	AccessType          *string `json:"access_type"`
	QuizAttemptsAllowed *int    `json:"quiz_attempts_allowed"`
	Duration            *int    `json:"duration"`
	Published           *bool   `json:"published"`
}

type ArticleContentUpdate struct {
	Content *string `json:"content"`
}

type FileContentUpdate struct {
	URL *string `json:"url"`
}

type QuizContentUpdate struct {
	Question *string `json:"question"`
	Option1  *string `json:"option_1"`
	Option2  *string `json:"option_2"`
	Option3  *string `json:"option_3"`
	Option4  *string `json:"option_4"`
	Answer   *string `json:"answer"`
}
