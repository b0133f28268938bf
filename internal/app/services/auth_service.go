package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vhoang/advisorhub/internal/app/models"
	"github.com/vhoang/advisorhub/internal/app/models/dto"
	"github.com/vhoang/advisorhub/internal/app/repositories"
	"github.com/vhoang/advisorhub/internal/pkg/apperrors"
	"github.com/vhoang/advisorhub/internal/pkg/auth"
	"github.com/vhoang/advisorhub/internal/pkg/validation"
)

// ResetTokenTTL is how long a forgot-password token stays redeemable
const ResetTokenTTL = 30 * time.Minute

// AuthService handles authentication operations
type AuthService struct {
	userRepo   *repositories.UserRepository
	resetRepo  *repositories.ResetTokenRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	resetRepo *repositories.ResetTokenRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		resetRepo:  resetRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// validateEmail validates an email address
func (s *AuthService) validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return apperrors.NewValidationError("email cannot be empty")
	}

	if !validation.CompiledPatterns.Email.MatchString(email) {
		return apperrors.NewValidationError("invalid email format")
	}

	return nil
}

// validatePassword checks if password meets requirements
func (s *AuthService) validatePassword(password string) error {
	if password == "" {
		return apperrors.NewValidationError("password cannot be empty")
	}

	if len(password) < validation.PasswordMinLength {
		return apperrors.NewValidationError(
			fmt.Sprintf("password must be at least %d characters long", validation.PasswordMinLength))
	}

	hasLetter := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return apperrors.NewValidationError("password must contain at least one letter")
	}

	hasDigit := false
	for _, char := range password {
		if unicode.IsDigit(char) {
			hasDigit = true
			break
		}
	}
	if !hasDigit {
		return apperrors.NewValidationError("password must contain at least one digit")
	}

	return nil
}

// validateName validates a display name
func (s *AuthService) validateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < validation.NameMinLength {
		return apperrors.NewValidationError("name cannot be empty")
	}
	if len(trimmed) > validation.NameMaxLength {
		return apperrors.NewValidationError(
			fmt.Sprintf("name cannot exceed %d characters", validation.NameMaxLength))
	}
	return nil
}

// Register creates a new portal account and signs it in
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	if err := s.validateName(req.Name); err != nil {
		return nil, err
	}
	if err := s.validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := s.validatePassword(req.Password); err != nil {
		return nil, err
	}

	role := models.RoleType(req.Role)
	if !role.Valid() {
		return nil, apperrors.NewValidationError("role must be student or advisor")
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hashedPassword,
		Name:     strings.TrimSpace(req.Name),
		RoleType: role,
		IsActive: true,
	}

	userID, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("user creation error: %w", err)
	}
	user.ID = userID

	return s.generateLoginResponse(user)
}

// Login authenticates a user
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := s.validateEmail(req.Email); err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, apperrors.NewValidationError("password cannot be empty")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Could not update last login timestamp")
	}

	return s.generateLoginResponse(user)
}

// ForgotPassword issues a single-use reset token for the account. The token
// is returned to the caller; unknown emails get the same acknowledgement so
// the endpoint does not leak which addresses are registered.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	if err := s.validateEmail(email); err != nil {
		return "", err
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Info().Str("email", email).Msg("Password reset requested for unknown email")
			return "", nil
		}
		return "", fmt.Errorf("error looking up user for password reset: %w", err)
	}

	token := uuid.New().String()
	if err := s.resetRepo.CreateToken(ctx, user.ID, token, time.Now().Add(ResetTokenTTL)); err != nil {
		return "", fmt.Errorf("error storing reset token: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Msg("Password reset token issued")
	return token, nil
}

// ResetPassword redeems a reset token and sets a new password
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if strings.TrimSpace(token) == "" {
		return apperrors.ErrInvalidResetToken
	}
	if err := s.validatePassword(newPassword); err != nil {
		return err
	}

	rt, err := s.resetRepo.GetTokenByValue(ctx, token)
	if err != nil {
		return err
	}

	if rt.Used {
		return apperrors.ErrResetTokenUsed
	}
	if rt.ExpiresAt.Before(time.Now()) {
		return apperrors.ErrInvalidResetToken
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, rt.UserID, hashedPassword); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	if err := s.resetRepo.MarkUsed(ctx, rt.ID); err != nil {
		return fmt.Errorf("error consuming reset token: %w", err)
	}

	s.logger.Info().Int64("userID", rt.UserID).Msg("Password reset completed")
	return nil
}

// generateLoginResponse creates the signed-in session payload
func (s *AuthService) generateLoginResponse(user *models.User) (*dto.LoginResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		User: dto.LoginUser{
			Role:  string(user.RoleType),
			Name:  user.Name,
			Email: user.Email,
		},
	}, nil
}
