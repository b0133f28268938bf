package qview

import (
	"github.com/vhoang/advisorhub/internal/app/models"
)

// CurrentAnswer resolves which single answer version to render for a
// question. selectedVersion is the version the user explicitly picked in the
// history list, or 0 when nothing is picked.
//
// With a non-empty history the selected version wins when it exists there;
// any other value, including a selection left over from a previously viewed
// question, silently falls back to the latest (last) entry. An empty history
// falls back to the question's legacy latestAnswer snapshot, if any.
func CurrentAnswer(q *models.Question, selectedVersion int) *models.AnswerVersion {
	if q == nil {
		return nil
	}

	if len(q.AnswerHistory) > 0 {
		if selectedVersion > 0 {
			for i := range q.AnswerHistory {
				if q.AnswerHistory[i].Version == selectedVersion {
					return &q.AnswerHistory[i]
				}
			}
		}
		return &q.AnswerHistory[len(q.AnswerHistory)-1]
	}

	return q.LatestAnswer
}
