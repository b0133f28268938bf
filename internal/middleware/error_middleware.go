package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vhoang/advisorhub/internal/app/models/dto"
	"github.com/vhoang/advisorhub/internal/pkg/apperrors"
	"github.com/vhoang/advisorhub/internal/pkg/logger"
)

// HandleAPIError maps service errors onto HTTP responses. The message on a
// wrapped CustomError wins over the generic text so validation failures stay
// specific.
func HandleAPIError(c *gin.Context, err error) {
	respond := func(status int, code dto.ErrorCode, message string) {
		var customErr *apperrors.CustomError
		if errors.As(err, &customErr) && customErr.Message != "" {
			message = customErr.Message
		}
		c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
	}

	switch {
	case errors.Is(err, apperrors.ErrQuestionNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Question not found")
	case errors.Is(err, apperrors.ErrAnswerVersionNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Answer version not found")
	case errors.Is(err, apperrors.ErrUserNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrNotQuestionOwner):
		respond(http.StatusForbidden, dto.ErrorCodeForbidden, "Only the question owner can do this")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrQuestionAnswered):
		respond(http.StatusConflict, dto.ErrorCodeValidationFailed, "Question is no longer editable")
	case errors.Is(err, apperrors.ErrEmptyAnswer):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Answer content cannot be empty")
	case errors.Is(err, apperrors.ErrInvalidResetToken):
		respond(http.StatusBadRequest, dto.ErrorCodeInvalidToken, "Invalid or expired reset token")
	case errors.Is(err, apperrors.ErrResetTokenUsed):
		respond(http.StatusBadRequest, dto.ErrorCodeInvalidToken, "Reset token already used")
	case errors.Is(err, apperrors.ErrValidationFailed):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		respond(http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}
