package qview

import (
	"reflect"
	"testing"

	"github.com/vhoang/advisorhub/internal/app/models"
)

func sampleQuestions() []models.Question {
	return []models.Question{
		{ID: 1, Title: "Course load question", Content: "How many credits can I take?", Category: "Course registration", Status: models.StatusPending, Tags: []string{"credits", "registration"}},
		{ID: 2, Title: "Conduct score appeal", Content: "My conduct score seems wrong", Category: "Conduct score", Status: models.StatusAnswered, Tags: []string{"appeal"}},
		{ID: 3, Title: "Prerequisite chain", Content: "Do I need Calculus I before Physics II?", Category: "Curriculum", Status: models.StatusInProgress, Tags: []string{"prerequisites", "physics"}},
		{ID: 4, Title: "Late registration", Content: "Missed the registration window", Category: "Course registration", Status: models.StatusAnswered, Tags: []string{"deadline"}},
	}
}

func ids(questions []models.Question) []int64 {
	out := make([]int64, 0, len(questions))
	for _, q := range questions {
		out = append(out, q.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	questions := sampleQuestions()

	tests := []struct {
		name     string
		status   string
		category string
		keyword  string
		want     []int64
	}{
		{"all pass through", FilterAll, FilterAll, "", []int64{1, 2, 3, 4}},
		{"blank filters pass through", "", "", "", []int64{1, 2, 3, 4}},
		{"status only", "answered", FilterAll, "", []int64{2, 4}},
		{"category only", FilterAll, "Course registration", "", []int64{1, 4}},
		{"status and category", "answered", "Course registration", "", []int64{4}},
		{"keyword in title", FilterAll, FilterAll, "conduct", []int64{2}},
		{"keyword in content", FilterAll, FilterAll, "credits", []int64{1}},
		{"keyword in tag", FilterAll, FilterAll, "physics", []int64{3}},
		{"keyword is case-insensitive", FilterAll, FilterAll, "CONDUCT", []int64{2}},
		{"keyword is trimmed", FilterAll, FilterAll, "  conduct  ", []int64{2}},
		{"whitespace-only keyword matches all", FilterAll, FilterAll, "   ", []int64{1, 2, 3, 4}},
		{"all criteria conjunctive", "answered", "Course registration", "deadline", []int64{4}},
		{"conjunction can be empty", "pending", "Conduct score", "", nil},
		{"no keyword hit", FilterAll, FilterAll, "dormitory", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(questions, tt.status, tt.category, tt.keyword))
			if len(got) == 0 {
				got = nil
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	questions := sampleQuestions()
	got := Filter(questions, FilterAll, "Course registration", "")
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 4 {
		t.Fatalf("expected collection order [1 4], got %v", ids(got))
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	questions := sampleQuestions()
	first := Filter(questions, "answered", FilterAll, "registration")
	second := Filter(questions, "answered", FilterAll, "registration")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical criteria produced different results: %v vs %v", ids(first), ids(second))
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	questions := sampleQuestions()
	before := ids(questions)
	Filter(questions, "answered", FilterAll, "score")
	if !reflect.DeepEqual(ids(questions), before) {
		t.Fatal("Filter mutated its input collection")
	}
}

func TestCategories(t *testing.T) {
	questions := []models.Question{
		{ID: 1, Category: "Course registration"},
		{ID: 2, Category: "Conduct score"},
		{ID: 3, Category: "Course registration"},
	}

	got := Categories(questions)
	want := []string{"Course registration", "Conduct score"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestCategoriesEmptyCollection(t *testing.T) {
	if got := Categories(nil); len(got) != 0 {
		t.Errorf("Categories(nil) = %v, want empty", got)
	}
}
