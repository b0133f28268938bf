package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vhoang/advisorhub/internal/app/models"
	"github.com/vhoang/advisorhub/internal/pkg/apperrors"
	"github.com/vhoang/advisorhub/internal/pkg/logger"
)

// QuestionRepository handles question database operations
type QuestionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(db *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var questionColumns = []string{
	"q.id", "q.title", "q.content", "q.category", "q.status",
	"q.student_id", "u.name", "q.tags", "q.created_at",
}

// CreateQuestion inserts a new question and returns its id
func (r *QuestionRepository) CreateQuestion(ctx context.Context, question *models.Question) (int64, error) {
	sql, args, err := r.sb.Insert("questions").
		Columns("title", "content", "category", "status", "student_id", "tags", "created_at").
		Values(question.Title, question.Content, question.Category, question.Status, question.StudentID, question.Tags, time.Now()).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create question SQL")
		return 0, fmt.Errorf("failed to build create question query: %w", err)
	}

	var id int64
	var createdAt time.Time
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id, &createdAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create question query")
		return 0, fmt.Errorf("error creating question: %w", err)
	}

	question.ID = id
	question.CreatedAt = createdAt
	return id, nil
}

// GetQuestionByID retrieves a question, without its answer history
func (r *QuestionRepository) GetQuestionByID(ctx context.Context, id int64) (*models.Question, error) {
	sql, args, err := r.sb.Select(questionColumns...).
		From("questions q").
		Join("users u ON u.id = q.student_id").
		Where(squirrel.Eq{"q.id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get question SQL")
		return nil, fmt.Errorf("failed to build get question query: %w", err)
	}

	question := &models.Question{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&question.ID, &question.Title, &question.Content, &question.Category,
		&question.Status, &question.StudentID, &question.StudentName,
		&question.Tags, &question.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuestionNotFound
		}
		logger.Error().Err(err).Int64("questionID", id).Msg("Error scanning question row")
		return nil, fmt.Errorf("error getting question by ID: %w", err)
	}

	return question, nil
}

// GetAllQuestions retrieves every question, newest first, so a freshly
// created question lands at the front of the portal's collection.
func (r *QuestionRepository) GetAllQuestions(ctx context.Context) ([]models.Question, error) {
	sql, args, err := r.sb.Select(questionColumns...).
		From("questions q").
		Join("users u ON u.id = q.student_id").
		OrderBy("q.created_at DESC", "q.id DESC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get all questions SQL")
		return nil, fmt.Errorf("failed to build get all questions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all questions query")
		return nil, fmt.Errorf("error querying questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		question := models.Question{}
		if err := rows.Scan(
			&question.ID, &question.Title, &question.Content, &question.Category,
			&question.Status, &question.StudentID, &question.StudentName,
			&question.Tags, &question.CreatedAt,
		); err != nil {
			logger.Error().Err(err).Msg("Error scanning question row during get all")
			return nil, fmt.Errorf("error scanning question row: %w", err)
		}
		questions = append(questions, question)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating question rows")
		return nil, fmt.Errorf("error iterating question rows: %w", err)
	}

	return questions, nil
}

// UpdateQuestionContent edits a question's title and content
func (r *QuestionRepository) UpdateQuestionContent(ctx context.Context, id int64, title, content string) error {
	sql, args, err := r.sb.Update("questions").
		SetMap(map[string]interface{}{
			"title":   title,
			"content": content,
		}).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update question SQL")
		return fmt.Errorf("failed to build update question query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("questionID", id).Msg("Error executing update question query")
		return fmt.Errorf("error updating question: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}

	return nil
}

// UpdateStatus moves a question to a new workflow status
func (r *QuestionRepository) UpdateStatus(ctx context.Context, id int64, status models.QuestionStatus) error {
	sql, args, err := r.sb.Update("questions").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update status SQL")
		return fmt.Errorf("failed to build update status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("questionID", id).Msg("Error executing update status query")
		return fmt.Errorf("error updating question status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}

	return nil
}
