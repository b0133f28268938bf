// Package qview implements the question portal's view model: deriving the
// visible question list from filter criteria, resolving which answer version
// is current, and the in-memory board the mock portal runs on. Everything
// here is deterministic and free of hidden state so it can be recomputed on
// every input change.
package qview

import (
	"strings"

	"github.com/vhoang/advisorhub/internal/app/models"
)

// FilterAll is the sentinel value matching every status or category.
const FilterAll = "all"

// Filter returns the ordered subsequence of questions satisfying all three
// criteria: status (exact match, with "all" or blank matching everything),
// category (same rule) and keyword (trimmed, case-insensitive substring of
// title, content or any tag; blank matches everything). Original order is
// preserved.
func Filter(questions []models.Question, status, category, keyword string) []models.Question {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	anyStatus := status == FilterAll || status == ""
	anyCategory := category == FilterAll || category == ""

	result := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		if !anyStatus && string(q.Status) != status {
			continue
		}
		if !anyCategory && q.Category != category {
			continue
		}
		if kw != "" && !matchesKeyword(&q, kw) {
			continue
		}
		result = append(result, q)
	}
	return result
}

// matchesKeyword reports whether kw (already lowercased) occurs in the
// question's title, content or any of its tags.
func matchesKeyword(q *models.Question, kw string) bool {
	if strings.Contains(strings.ToLower(q.Title), kw) {
		return true
	}
	if strings.Contains(strings.ToLower(q.Content), kw) {
		return true
	}
	for _, tag := range q.Tags {
		if strings.Contains(strings.ToLower(tag), kw) {
			return true
		}
	}
	return false
}

// Categories returns the distinct categories present in the collection, in
// order of first occurrence. The "all" sentinel is not included; callers
// building a filter control prepend it themselves.
func Categories(questions []models.Question) []string {
	seen := make(map[string]struct{}, len(questions))
	categories := make([]string, 0, len(questions))
	for _, q := range questions {
		if _, ok := seen[q.Category]; ok {
			continue
		}
		seen[q.Category] = struct{}{}
		categories = append(categories, q.Category)
	}
	return categories
}
