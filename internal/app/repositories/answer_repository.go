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

// AnswerRepository handles answer version database operations
type AnswerRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAnswerRepository creates a new AnswerRepository
func NewAnswerRepository(db *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var answerColumns = []string{
	"a.id", "a.question_id", "a.version", "a.content", "u.name", "a.note", "a.created_at",
}

// ListByQuestionID returns a question's full answer history, oldest version first
func (r *AnswerRepository) ListByQuestionID(ctx context.Context, questionID int64) ([]models.AnswerVersion, error) {
	sql, args, err := r.sb.Select(answerColumns...).
		From("answer_versions a").
		Join("users u ON u.id = a.updated_by").
		Where(squirrel.Eq{"a.question_id": questionID}).
		OrderBy("a.version ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list answers SQL")
		return nil, fmt.Errorf("failed to build list answers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("questionID", questionID).Msg("Error executing list answers query")
		return nil, fmt.Errorf("error querying answer versions: %w", err)
	}
	defer rows.Close()

	return scanAnswerRows(rows)
}

// ListByQuestionIDs returns answer histories for a set of questions,
// grouped by question id with each history ordered oldest version first.
func (r *AnswerRepository) ListByQuestionIDs(ctx context.Context, questionIDs []int64) (map[int64][]models.AnswerVersion, error) {
	histories := make(map[int64][]models.AnswerVersion)
	if len(questionIDs) == 0 {
		return histories, nil
	}

	sql, args, err := r.sb.Select(answerColumns...).
		From("answer_versions a").
		Join("users u ON u.id = a.updated_by").
		Where(squirrel.Eq{"a.question_id": questionIDs}).
		OrderBy("a.question_id ASC", "a.version ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list answers batch SQL")
		return nil, fmt.Errorf("failed to build list answers batch query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list answers batch query")
		return nil, fmt.Errorf("error querying answer versions: %w", err)
	}
	defer rows.Close()

	versions, err := scanAnswerRows(rows)
	if err != nil {
		return nil, err
	}

	for _, version := range versions {
		histories[version.QuestionID] = append(histories[version.QuestionID], version)
	}

	return histories, nil
}

// AppendVersion appends the next answer version to a question inside the
// caller's transaction. The question row is locked so concurrent appends
// serialize and version numbers stay dense. The question is moved to
// answered as part of the same transaction.
func (r *AnswerRepository) AppendVersion(ctx context.Context, tx pgx.Tx, questionID, updatedBy int64, content, note string) (*models.AnswerVersion, error) {
	lockSQL, lockArgs, err := r.sb.Select("id").
		From("questions").
		Where(squirrel.Eq{"id": questionID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building lock question SQL")
		return nil, fmt.Errorf("failed to build lock question query: %w", err)
	}

	var lockedID int64
	if err := tx.QueryRow(ctx, lockSQL, lockArgs...).Scan(&lockedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuestionNotFound
		}
		logger.Error().Err(err).Int64("questionID", questionID).Msg("Error locking question row")
		return nil, fmt.Errorf("error locking question row: %w", err)
	}

	var nextVersion int
	err = tx.QueryRow(ctx,
		"SELECT COALESCE(MAX(version), 0) + 1 FROM answer_versions WHERE question_id = $1",
		questionID,
	).Scan(&nextVersion)
	if err != nil {
		logger.Error().Err(err).Int64("questionID", questionID).Msg("Error computing next answer version")
		return nil, fmt.Errorf("error computing next answer version: %w", err)
	}

	insertSQL, insertArgs, err := r.sb.Insert("answer_versions").
		Columns("question_id", "version", "content", "updated_by", "note", "created_at").
		Values(questionID, nextVersion, content, updatedBy, note, time.Now()).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert answer SQL")
		return nil, fmt.Errorf("failed to build insert answer query: %w", err)
	}

	version := &models.AnswerVersion{
		QuestionID: questionID,
		Version:    nextVersion,
		Content:    content,
		Note:       note,
	}
	if err := tx.QueryRow(ctx, insertSQL, insertArgs...).Scan(&version.ID, &version.CreatedAt); err != nil {
		logger.Error().Err(err).Int64("questionID", questionID).Msg("Error inserting answer version")
		return nil, fmt.Errorf("error inserting answer version: %w", err)
	}

	statusSQL, statusArgs, err := r.sb.Update("questions").
		Set("status", models.StatusAnswered).
		Where(squirrel.Eq{"id": questionID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building answered status SQL")
		return nil, fmt.Errorf("failed to build answered status query: %w", err)
	}

	if _, err := tx.Exec(ctx, statusSQL, statusArgs...); err != nil {
		logger.Error().Err(err).Int64("questionID", questionID).Msg("Error marking question answered")
		return nil, fmt.Errorf("error marking question answered: %w", err)
	}

	return version, nil
}

func scanAnswerRows(rows pgx.Rows) ([]models.AnswerVersion, error) {
	versions := []models.AnswerVersion{}
	for rows.Next() {
		version := models.AnswerVersion{}
		if err := rows.Scan(
			&version.ID, &version.QuestionID, &version.Version,
			&version.Content, &version.UpdatedBy, &version.Note, &version.CreatedAt,
		); err != nil {
			logger.Error().Err(err).Msg("Error scanning answer version row")
			return nil, fmt.Errorf("error scanning answer version row: %w", err)
		}
		versions = append(versions, version)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating answer version rows")
		return nil, fmt.Errorf("error iterating answer version rows: %w", err)
	}

	return versions, nil
}
