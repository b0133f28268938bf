package dto

import (
	"github.com/jinzhu/copier"
	"github.com/vhoang/advisorhub/internal/app/models"
	"github.com/vhoang/advisorhub/internal/pkg/helpers"
)

// CreateQuestionRequest represents a student's new question
type CreateQuestionRequest struct {
	Title    string   `json:"title" binding:"required"`
	Content  string   `json:"content" binding:"required"`
	Category string   `json:"category" binding:"required"`
	Tags     []string `json:"tags"`
}

// UpdateQuestionRequest edits an unanswered question's text
type UpdateQuestionRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// UpdateStatusRequest moves a question between workflow states
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateAnswerRequest represents an advisor's answer draft
type CreateAnswerRequest struct {
	Content string `json:"content" binding:"required"`
	Note    string `json:"note"`
}

// AnswerVersionResponse is one answer snapshot as the portal renders it
type AnswerVersionResponse struct {
	ID        int64  `json:"id"`
	Version   int    `json:"version"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedBy string `json:"updatedBy"`
	Note      string `json:"note,omitempty"`
}

// QuestionResponse is a question as the portal renders it. CreatedAt is a
// display string; the portal never parses it.
type QuestionResponse struct {
	ID            int64                   `json:"id"`
	Title         string                  `json:"title"`
	Content       string                  `json:"content"`
	Category      string                  `json:"category"`
	Status        string                  `json:"status"`
	StudentName   string                  `json:"studentName"`
	CreatedAt     string                  `json:"createdAt"`
	Tags          []string                `json:"tags"`
	LatestAnswer  *AnswerVersionResponse  `json:"latestAnswer,omitempty"`
	AnswerHistory []AnswerVersionResponse `json:"answerHistory"`
}

// NewAnswerVersionResponse maps an answer version model to its wire shape
func NewAnswerVersionResponse(answer *models.AnswerVersion) *AnswerVersionResponse {
	if answer == nil {
		return nil
	}
	resp := &AnswerVersionResponse{}
	_ = copier.Copy(resp, answer)
	resp.CreatedAt = helpers.FormatDisplayTime(answer.CreatedAt)
	return resp
}

// NewQuestionResponse maps a question model to its wire shape
func NewQuestionResponse(question *models.Question) *QuestionResponse {
	if question == nil {
		return nil
	}
	resp := &QuestionResponse{}
	_ = copier.Copy(resp, question)
	resp.Status = string(question.Status)
	resp.CreatedAt = helpers.FormatDisplayTime(question.CreatedAt)

	if resp.Tags == nil {
		resp.Tags = []string{}
	}

	resp.AnswerHistory = make([]AnswerVersionResponse, 0, len(question.AnswerHistory))
	for i := range question.AnswerHistory {
		resp.AnswerHistory = append(resp.AnswerHistory, *NewAnswerVersionResponse(&question.AnswerHistory[i]))
	}
	resp.LatestAnswer = NewAnswerVersionResponse(question.LatestAnswer)

	return resp
}

// NewQuestionListResponse maps a question collection, preserving order
func NewQuestionListResponse(questions []models.Question) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(questions))
	for i := range questions {
		out = append(out, *NewQuestionResponse(&questions[i]))
	}
	return out
}
