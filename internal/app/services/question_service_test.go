package services

import (
	"errors"
	"testing"

	"github.com/vhoang/advisorhub/internal/app/models"
	"github.com/vhoang/advisorhub/internal/pkg/apperrors"
)

func TestStatusChangeError(t *testing.T) {
	tests := []struct {
		name     string
		status   models.QuestionStatus
		versions int
		wantErr  error
	}{
		{"pending with no answers", models.StatusPending, 0, nil},
		{"in progress with no answers", models.StatusInProgress, 0, nil},
		{"unknown status", models.QuestionStatus("archived"), 0, apperrors.ErrValidationFailed},
		{"answered cannot be set directly", models.StatusAnswered, 0, apperrors.ErrValidationFailed},
		{"pending locked after an answer", models.StatusPending, 1, apperrors.ErrQuestionAnswered},
		{"in progress locked after revisions", models.StatusInProgress, 3, apperrors.ErrQuestionAnswered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := statusChangeError(tt.status, tt.versions)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("statusChangeError() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("statusChangeError() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
