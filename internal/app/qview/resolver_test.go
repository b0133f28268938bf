package qview

import (
	"testing"

	"github.com/vhoang/advisorhub/internal/app/models"
)

func questionWithHistory(versions ...int) *models.Question {
	q := &models.Question{ID: 10, Status: models.StatusAnswered}
	for _, v := range versions {
		q.AnswerHistory = append(q.AnswerHistory, models.AnswerVersion{
			ID:      int64(100 + v),
			Version: v,
			Content: "answer",
		})
	}
	if n := len(q.AnswerHistory); n > 0 {
		q.LatestAnswer = &q.AnswerHistory[n-1]
	}
	return q
}

func TestCurrentAnswer(t *testing.T) {
	tests := []struct {
		name            string
		question        *models.Question
		selectedVersion int
		wantVersion     int // 0 means expect nil
	}{
		{"no question selected", nil, 0, 0},
		{"defaults to latest", questionWithHistory(1, 2, 3), 0, 3},
		{"explicit selection wins", questionWithHistory(1, 2, 3), 2, 2},
		{"absent selection falls back to latest", questionWithHistory(1, 2, 3), 99, 3},
		{"single version history", questionWithHistory(1), 0, 1},
		{"empty history no legacy answer", &models.Question{ID: 11}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CurrentAnswer(tt.question, tt.selectedVersion)
			if tt.wantVersion == 0 {
				if got != nil {
					t.Fatalf("expected nil, got version %d", got.Version)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected version %d, got nil", tt.wantVersion)
			}
			if got.Version != tt.wantVersion {
				t.Errorf("got version %d, want %d", got.Version, tt.wantVersion)
			}
		})
	}
}

func TestCurrentAnswerLegacySnapshot(t *testing.T) {
	legacy := &models.AnswerVersion{ID: 7, Version: 1, Content: "pre-history answer"}
	q := &models.Question{ID: 12, LatestAnswer: legacy}

	got := CurrentAnswer(q, 0)
	if got != legacy {
		t.Fatalf("expected legacy latestAnswer, got %+v", got)
	}

	// an explicit selection cannot resurrect history that does not exist
	got = CurrentAnswer(q, 5)
	if got != legacy {
		t.Fatalf("expected legacy latestAnswer for stale selection, got %+v", got)
	}
}
