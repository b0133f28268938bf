package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/vhoang/advisorhub/internal/app/models"
	"github.com/vhoang/advisorhub/internal/app/models/dto"
	"github.com/vhoang/advisorhub/internal/app/qview"
	"github.com/vhoang/advisorhub/internal/app/repositories"
	"github.com/vhoang/advisorhub/internal/pkg/apperrors"
	"github.com/vhoang/advisorhub/internal/pkg/validation"
)

// QuestionService handles question operations
type QuestionService struct {
	questionRepo *repositories.QuestionRepository
	answerRepo   *repositories.AnswerRepository
	logger       zerolog.Logger
}

// NewQuestionService creates a new QuestionService
func NewQuestionService(
	questionRepo *repositories.QuestionRepository,
	answerRepo *repositories.AnswerRepository,
	logger zerolog.Logger,
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		logger:       logger,
	}
}

// ListQuestions returns all questions matching the given filters, newest
// first, with answer histories attached. Empty or "all" filter values
// keep every question.
func (s *QuestionService) ListQuestions(ctx context.Context, status, category, keyword string) ([]models.Question, error) {
	questions, err := s.questionRepo.GetAllQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing questions: %w", err)
	}

	if err := s.attachHistories(ctx, questions); err != nil {
		return nil, err
	}

	return qview.Filter(questions, status, category, keyword), nil
}

// GetQuestion returns a single question with its answer history
func (s *QuestionService) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	question, err := s.questionRepo.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	history, err := s.answerRepo.ListByQuestionID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading answer history: %w", err)
	}
	question.AnswerHistory = history
	deriveLatestAnswer(question)

	return question, nil
}

// ListCategories returns the distinct categories across all questions,
// in first-occurrence order of the newest-first collection.
func (s *QuestionService) ListCategories(ctx context.Context) ([]string, error) {
	questions, err := s.questionRepo.GetAllQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing questions for categories: %w", err)
	}
	return qview.Categories(questions), nil
}

// CreateQuestion posts a new question for a student. New questions always
// start pending with an empty answer history.
func (s *QuestionService) CreateQuestion(ctx context.Context, studentID int64, req *dto.CreateQuestionRequest) (*models.Question, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	category := strings.TrimSpace(req.Category)

	if title == "" {
		return nil, apperrors.NewValidationError("title cannot be empty")
	}
	if len(title) > validation.TitleMaxLength {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("title cannot exceed %d characters", validation.TitleMaxLength))
	}
	if content == "" {
		return nil, apperrors.NewValidationError("content cannot be empty")
	}
	if category == "" {
		return nil, apperrors.NewValidationError("category cannot be empty")
	}

	tags := make([]string, 0, len(req.Tags))
	for _, tag := range req.Tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}

	question := &models.Question{
		Title:     title,
		Content:   content,
		Category:  category,
		Status:    models.StatusPending,
		StudentID: studentID,
		Tags:      tags,
	}

	if _, err := s.questionRepo.CreateQuestion(ctx, question); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("questionID", question.ID).Int64("studentID", studentID).Msg("Question created")

	return s.GetQuestion(ctx, question.ID)
}

// UpdateQuestion edits a question's title and content. Only the owning
// student may edit, and only while the question is still pending.
func (s *QuestionService) UpdateQuestion(ctx context.Context, questionID, userID int64, req *dto.UpdateQuestionRequest) (*models.Question, error) {
	question, err := s.questionRepo.GetQuestionByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	if question.StudentID != userID {
		return nil, apperrors.ErrNotQuestionOwner
	}
	if question.Status != models.StatusPending {
		return nil, apperrors.ErrQuestionAnswered
	}

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" {
		return nil, apperrors.NewValidationError("title cannot be empty")
	}
	if content == "" {
		return nil, apperrors.NewValidationError("content cannot be empty")
	}

	if err := s.questionRepo.UpdateQuestionContent(ctx, questionID, title, content); err != nil {
		return nil, err
	}

	return s.GetQuestion(ctx, questionID)
}

// SetStatus moves a question between workflow states. Advisors use this to
// mark a question in progress; answered is only ever reached by posting an
// answer, so it can neither be set nor left here once a version exists.
func (s *QuestionService) SetStatus(ctx context.Context, questionID int64, status models.QuestionStatus) (*models.Question, error) {
	if _, err := s.questionRepo.GetQuestionByID(ctx, questionID); err != nil {
		return nil, err
	}

	history, err := s.answerRepo.ListByQuestionID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	if err := statusChangeError(status, len(history)); err != nil {
		return nil, err
	}

	if err := s.questionRepo.UpdateStatus(ctx, questionID, status); err != nil {
		return nil, err
	}

	return s.GetQuestion(ctx, questionID)
}

// statusChangeError reports why a question with the given number of answer
// versions cannot move to the requested status. A question carrying answers
// stays answered until the history itself changes.
func statusChangeError(status models.QuestionStatus, versions int) error {
	if !status.Valid() {
		return apperrors.NewValidationError("unknown question status")
	}
	if status == models.StatusAnswered {
		return apperrors.NewValidationError("answered status is set by posting an answer")
	}
	if versions > 0 {
		return apperrors.NewCustomError(apperrors.ErrQuestionAnswered, "status is locked once an answer has been posted")
	}
	return nil
}

// attachHistories loads and attaches answer histories for a question batch
func (s *QuestionService) attachHistories(ctx context.Context, questions []models.Question) error {
	if len(questions) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(questions))
	for i := range questions {
		ids = append(ids, questions[i].ID)
	}

	histories, err := s.answerRepo.ListByQuestionIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("error loading answer histories: %w", err)
	}

	for i := range questions {
		questions[i].AnswerHistory = histories[questions[i].ID]
		deriveLatestAnswer(&questions[i])
	}

	return nil
}

// deriveLatestAnswer keeps the latest-answer snapshot in sync with the
// history so older clients that never read the history still see the
// current answer.
func deriveLatestAnswer(question *models.Question) {
	if len(question.AnswerHistory) == 0 {
		question.LatestAnswer = nil
		return
	}
	latest := question.AnswerHistory[len(question.AnswerHistory)-1]
	question.LatestAnswer = &latest
}
