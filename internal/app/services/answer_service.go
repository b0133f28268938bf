package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/vhoang/advisorhub/internal/app/models"
	"github.com/vhoang/advisorhub/internal/app/repositories"
	"github.com/vhoang/advisorhub/internal/db"
	"github.com/vhoang/advisorhub/internal/pkg/apperrors"
)

// AnswerService handles answer version operations
type AnswerService struct {
	pool       *pgxpool.Pool
	answerRepo *repositories.AnswerRepository
	logger     zerolog.Logger
}

// NewAnswerService creates a new AnswerService
func NewAnswerService(pool *pgxpool.Pool, answerRepo *repositories.AnswerRepository, logger zerolog.Logger) *AnswerService {
	return &AnswerService{
		pool:       pool,
		answerRepo: answerRepo,
		logger:     logger,
	}
}

// AppendVersion appends a new answer version to a question. The version
// number, insert, and status transition happen in one transaction, so a
// question is never answered without at least one history entry.
func (s *AnswerService) AppendVersion(ctx context.Context, questionID, advisorID int64, content, note string) (*models.AnswerVersion, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.ErrEmptyAnswer
	}
	note = strings.TrimSpace(note)

	var version *models.AnswerVersion
	err := db.WithTransaction(ctx, s.pool, func(txCtx context.Context, tx pgx.Tx) error {
		var txErr error
		version, txErr = s.answerRepo.AppendVersion(txCtx, tx, questionID, advisorID, content, note)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("questionID", questionID).
		Int("version", version.Version).
		Int64("advisorID", advisorID).
		Msg("Answer version appended")

	return version, nil
}

// History returns a question's full answer history, oldest first
func (s *AnswerService) History(ctx context.Context, questionID int64) ([]models.AnswerVersion, error) {
	history, err := s.answerRepo.ListByQuestionID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("error loading answer history: %w", err)
	}
	return history, nil
}
