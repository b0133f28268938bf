package models

import (
	"time"
)

// Question defines one submitted inquiry based on the 'questions' table.
// AnswerHistory is append-only and ordered by increasing version; the last
// entry is the highest version. LatestAnswer is a snapshot of that entry,
// kept separately so legacy records with a snapshot but no history rows
// still render.
type Question struct {
	ID            int64           `json:"id" db:"id"`
	Title         string          `json:"title" db:"title"`
	Content       string          `json:"content" db:"content"`
	Category      string          `json:"category" db:"category"`
	Status        QuestionStatus  `json:"status" db:"status"`
	StudentID     int64           `json:"-" db:"student_id"`
	StudentName   string          `json:"studentName" db:"student_name"`
	Tags          []string        `json:"tags" db:"tags"`
	CreatedAt     time.Time       `json:"-" db:"created_at"`
	LatestAnswer  *AnswerVersion  `json:"latestAnswer,omitempty"`
	AnswerHistory []AnswerVersion `json:"answerHistory"`
}

// AnswerVersion is one immutable snapshot of an advisor's answer, based on
// the 'answer_versions' table. Versions start at 1 and are strictly
// increasing within one question's history.
type AnswerVersion struct {
	ID         int64     `json:"id" db:"id"`
	QuestionID int64     `json:"-" db:"question_id"`
	Version    int       `json:"version" db:"version"`
	Content    string    `json:"content" db:"content"`
	UpdatedBy  string    `json:"updatedBy" db:"updated_by"`
	Note       string    `json:"note,omitempty" db:"note"`
	CreatedAt  time.Time `json:"-" db:"created_at"`
}
