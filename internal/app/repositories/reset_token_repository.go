package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vhoang/advisorhub/internal/pkg/apperrors"
	"github.com/vhoang/advisorhub/internal/pkg/logger"
)

// ResetToken is a single-use password reset token issued by forgot-password
type ResetToken struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt time.Time
	Used      bool
}

// ResetTokenRepository handles password reset token database operations
type ResetTokenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewResetTokenRepository creates a new ResetTokenRepository
func NewResetTokenRepository(db *pgxpool.Pool) *ResetTokenRepository {
	return &ResetTokenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateToken stores a new reset token for a user
func (r *ResetTokenRepository) CreateToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	sql, args, err := r.sb.Insert("password_reset_tokens").
		Columns("user_id", "token", "expires_at", "used").
		Values(userID, token, expiresAt, false).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create reset token SQL")
		return fmt.Errorf("failed to build create reset token query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error inserting reset token")
		return fmt.Errorf("error creating reset token: %w", err)
	}

	return nil
}

// GetTokenByValue looks up a reset token by its opaque value
func (r *ResetTokenRepository) GetTokenByValue(ctx context.Context, token string) (*ResetToken, error) {
	sql, args, err := r.sb.Select("id", "user_id", "token", "expires_at", "used").
		From("password_reset_tokens").
		Where(squirrel.Eq{"token": token}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get reset token SQL")
		return nil, fmt.Errorf("failed to build get reset token query: %w", err)
	}

	rt := &ResetToken{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&rt.ID, &rt.UserID, &rt.Token, &rt.ExpiresAt, &rt.Used)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidResetToken
		}
		logger.Error().Err(err).Msg("Error scanning reset token row")
		return nil, fmt.Errorf("error getting reset token: %w", err)
	}

	return rt, nil
}

// MarkUsed consumes a reset token so it cannot be replayed
func (r *ResetTokenRepository) MarkUsed(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("password_reset_tokens").
		Set("used", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building mark token used SQL")
		return fmt.Errorf("failed to build mark token used query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("tokenID", id).Msg("Error marking reset token used")
		return fmt.Errorf("error marking reset token used: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInvalidResetToken
	}

	return nil
}
