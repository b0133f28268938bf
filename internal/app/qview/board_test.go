package qview

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/vhoang/advisorhub/internal/app/models"
)

func newTestBoard(t *testing.T, questions []models.Question) *Board {
	t.Helper()
	b := NewBoard("Lan Pham")
	// deterministic clock, one tick per call
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	var calls int64
	b.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Millisecond)
	}
	b.SetQuestions(questions)
	return b
}

func TestBoardSaveAnswerAppendsVersion(t *testing.T) {
	questions := []models.Question{
		{
			ID:     1,
			Title:  "Credit overload",
			Status: models.StatusAnswered,
			AnswerHistory: []models.AnswerVersion{
				{ID: 50, Version: 1, Content: "first answer"},
			},
		},
	}
	b := newTestBoard(t, questions)
	b.Select(1)

	saved, err := b.SaveAnswer("updated guidance", "Dr. Minh", "policy changed")
	if err != nil {
		t.Fatalf("SaveAnswer failed: %v", err)
	}
	if saved.Version != 2 {
		t.Errorf("new version = %d, want 2", saved.Version)
	}

	q := b.Selected()
	if len(q.AnswerHistory) != 2 {
		t.Fatalf("history length = %d, want 2", len(q.AnswerHistory))
	}
	if q.Status != models.StatusAnswered {
		t.Errorf("status = %q, want answered", q.Status)
	}
	if q.LatestAnswer == nil || q.LatestAnswer.Version != 2 {
		t.Errorf("latestAnswer not updated to the new version: %+v", q.LatestAnswer)
	}
	if q.LatestAnswer.Note != "policy changed" {
		t.Errorf("note = %q, want %q", q.LatestAnswer.Note, "policy changed")
	}
}

func TestBoardSaveAnswerFirstVersion(t *testing.T) {
	b := newTestBoard(t, []models.Question{{ID: 1, Status: models.StatusPending}})
	b.Select(1)

	saved, err := b.SaveAnswer("you can take 18 credits", "Dr. Minh", "")
	if err != nil {
		t.Fatalf("SaveAnswer failed: %v", err)
	}
	if saved.Version != 1 {
		t.Errorf("first version = %d, want 1", saved.Version)
	}
	if got := b.Selected().Status; got != models.StatusAnswered {
		t.Errorf("status = %q, want answered", got)
	}
}

func TestBoardSaveAnswerRejections(t *testing.T) {
	b := newTestBoard(t, []models.Question{{ID: 1, Status: models.StatusPending}})

	if _, err := b.SaveAnswer("an answer", "Dr. Minh", ""); !errors.Is(err, ErrNoSelection) {
		t.Errorf("no selection: got %v, want ErrNoSelection", err)
	}

	b.Select(1)
	if _, err := b.SaveAnswer("   \t ", "Dr. Minh", ""); !errors.Is(err, ErrEmptyDraft) {
		t.Errorf("whitespace draft: got %v, want ErrEmptyDraft", err)
	}
	if q := b.Selected(); len(q.AnswerHistory) != 0 || q.Status != models.StatusPending {
		t.Error("rejected save must leave history and status unchanged")
	}
}

func TestBoardCreateQuestion(t *testing.T) {
	existing := []models.Question{{ID: 1, Title: "older question", Category: "Curriculum"}}
	b := newTestBoard(t, existing)

	created, err := b.CreateQuestion("Course load question", "How many credits?", "Course registration")
	if err != nil {
		t.Fatalf("CreateQuestion failed: %v", err)
	}

	all := b.Questions()
	if len(all) != 2 {
		t.Fatalf("collection length = %d, want 2", len(all))
	}
	if all[0].ID != created.ID {
		t.Error("new question must be inserted at index 0")
	}
	if created.Status != models.StatusPending {
		t.Errorf("status = %q, want pending", created.Status)
	}
	if len(created.AnswerHistory) != 0 {
		t.Errorf("answerHistory = %v, want empty", created.AnswerHistory)
	}
	if created.StudentName != "Lan Pham (you)" {
		t.Errorf("studentName = %q, want own marker", created.StudentName)
	}
	if b.Selected() == nil || b.Selected().ID != created.ID {
		t.Error("new question must be selected")
	}
}

func TestBoardCreateQuestionRejectsBlankFields(t *testing.T) {
	b := newTestBoard(t, []models.Question{{ID: 1}})

	if _, err := b.CreateQuestion("  ", "content", "Curriculum"); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("blank title: got %v, want ErrEmptyTitle", err)
	}
	if _, err := b.CreateQuestion("title", "\n", "Curriculum"); !errors.Is(err, ErrEmptyContent) {
		t.Errorf("blank content: got %v, want ErrEmptyContent", err)
	}
	if len(b.Questions()) != 1 {
		t.Error("rejected create must leave the collection unchanged")
	}
}

func TestBoardStaleHistorySelectionFallsBack(t *testing.T) {
	questions := []models.Question{
		*questionWithHistory(1, 2, 3),
		{ID: 20, Status: models.StatusAnswered, AnswerHistory: []models.AnswerVersion{{ID: 201, Version: 1}}},
	}
	questions[1].LatestAnswer = &questions[1].AnswerHistory[0]
	b := newTestBoard(t, questions)

	b.Select(10)
	b.SelectHistoryVersion(2)
	if got := b.CurrentAnswer(); got == nil || got.Version != 2 {
		t.Fatalf("explicit selection on first question: got %+v, want version 2", got)
	}

	// switching questions does not reset the history selection; the
	// resolver fallback is what keeps version 2 from leaking here
	b.Select(20)
	if got := b.CurrentAnswer(); got == nil || got.Version != 1 {
		t.Fatalf("after switch: got %+v, want the second question's latest (version 1)", got)
	}
}

func TestBoardCategoryOptions(t *testing.T) {
	b := newTestBoard(t, []models.Question{
		{ID: 1, Category: "Course registration"},
		{ID: 2, Category: "Conduct score"},
		{ID: 3, Category: "Course registration"},
	})

	got := b.CategoryOptions()
	want := []string{FilterAll, "Course registration", "Conduct score"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CategoryOptions() = %v, want %v", got, want)
	}
}

func TestBoardUpdateQuestion(t *testing.T) {
	b := newTestBoard(t, nil)
	if _, err := b.CreateQuestion("typo in titel", "body", "Curriculum"); err != nil {
		t.Fatalf("CreateQuestion failed: %v", err)
	}

	if err := b.UpdateQuestion("typo in title", "body, fixed"); err != nil {
		t.Fatalf("UpdateQuestion on own pending question failed: %v", err)
	}
	if q := b.Selected(); q.Title != "typo in title" || q.Content != "body, fixed" {
		t.Errorf("edit not applied: %+v", q)
	}

	if _, err := b.SaveAnswer("answered now", "Dr. Minh", ""); err != nil {
		t.Fatalf("SaveAnswer failed: %v", err)
	}
	if err := b.UpdateQuestion("again", "again"); !errors.Is(err, ErrAlreadyAnswered) {
		t.Errorf("editing an answered question: got %v, want ErrAlreadyAnswered", err)
	}

	// someone else's question
	b.SetQuestions([]models.Question{{ID: 99, Title: "not mine", Content: "x", StudentName: "Someone Else", Status: models.StatusPending}})
	b.Select(99)
	if err := b.UpdateQuestion("t", "c"); !errors.Is(err, ErrNotOwned) {
		t.Errorf("editing another student's question: got %v, want ErrNotOwned", err)
	}
}

func TestBoardMockIDsAreMonotonic(t *testing.T) {
	b := NewBoard("Lan Pham")
	fixed := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return fixed } // clock frozen on purpose

	q1, err := b.CreateQuestion("first", "body", "Curriculum")
	if err != nil {
		t.Fatalf("CreateQuestion failed: %v", err)
	}
	q2, err := b.CreateQuestion("second", "body", "Curriculum")
	if err != nil {
		t.Fatalf("CreateQuestion failed: %v", err)
	}
	if q2.ID <= q1.ID {
		t.Errorf("ids not monotonic under a frozen clock: %d then %d", q1.ID, q2.ID)
	}
}
