package qview

import (
	"errors"
	"strings"
	"time"

	"github.com/vhoang/advisorhub/internal/app/models"
)

// Board errors
var (
	ErrNoSelection     = errors.New("no question selected")
	ErrEmptyDraft      = errors.New("draft cannot be empty")
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrEmptyContent    = errors.New("content cannot be empty")
	ErrNotOwned        = errors.New("question belongs to another student")
	ErrAlreadyAnswered = errors.New("answered questions cannot be edited")
)

// OwnMarker is appended to the viewer's display name on questions they
// created, so the list view can tell their own questions apart.
const OwnMarker = " (you)"

// Board holds the portal's working set and interaction state: the question
// collection, the three filter criteria, the selected question and the
// explicitly selected history version. All mutating operations run on
// discrete events; the derived views (Visible, CurrentAnswer) are
// recomputed from scratch on each call.
type Board struct {
	questions []models.Question

	keyword        string
	statusFilter   string
	categoryFilter string

	selectedID      int64
	selectedVersion int

	viewer string

	now    func() time.Time
	lastID int64
}

// NewBoard creates an empty board for the given viewer display name.
func NewBoard(viewer string) *Board {
	return &Board{
		statusFilter:   FilterAll,
		categoryFilter: FilterAll,
		viewer:         viewer,
		now:            time.Now,
	}
}

// SetQuestions replaces the whole working set, as after a fetch. Selection
// and filters are deliberately left alone; a selection pointing at a
// question that no longer exists simply resolves to nothing.
func (b *Board) SetQuestions(questions []models.Question) {
	b.questions = questions
}

// Questions returns the full working set in collection order.
func (b *Board) Questions() []models.Question {
	return b.questions
}

// SetKeyword updates the free-text search criterion.
func (b *Board) SetKeyword(keyword string) {
	b.keyword = keyword
}

// SetStatusFilter updates the status criterion ("all" or a status value).
func (b *Board) SetStatusFilter(status string) {
	b.statusFilter = status
}

// SetCategoryFilter updates the category criterion ("all" or a category).
func (b *Board) SetCategoryFilter(category string) {
	b.categoryFilter = category
}

// Visible derives the filtered question list from the current criteria.
func (b *Board) Visible() []models.Question {
	return Filter(b.questions, b.statusFilter, b.categoryFilter, b.keyword)
}

// CategoryOptions returns the selectable categories: the "all" sentinel
// followed by the distinct categories present in the working set.
func (b *Board) CategoryOptions() []string {
	return append([]string{FilterAll}, Categories(b.questions)...)
}

// Select marks a question as the one being viewed. The history selection is
// NOT reset here; the resolver's mismatch fallback keeps a stale selection
// from leaking another question's version.
func (b *Board) Select(id int64) {
	b.selectedID = id
}

// Selected returns the currently selected question, or nil.
func (b *Board) Selected() *models.Question {
	for i := range b.questions {
		if b.questions[i].ID == b.selectedID {
			return &b.questions[i]
		}
	}
	return nil
}

// SelectHistoryVersion marks a version in the history list as the one to
// display. Passing 0 clears the selection.
func (b *Board) SelectHistoryVersion(version int) {
	b.selectedVersion = version
}

// History returns the selected question's answer history, oldest first.
func (b *Board) History() []models.AnswerVersion {
	q := b.Selected()
	if q == nil {
		return nil
	}
	return q.AnswerHistory
}

// CurrentAnswer resolves the answer version to display for the selected
// question, honoring an explicit history selection when it matches.
func (b *Board) CurrentAnswer() *models.AnswerVersion {
	return CurrentAnswer(b.Selected(), b.selectedVersion)
}

// SaveAnswer appends a new answer version to the selected question: version
// is last+1 (1 for an empty history), status flips to answered and the
// latest-answer snapshot is updated. Empty or whitespace-only drafts and a
// missing selection are rejected without touching any state.
func (b *Board) SaveAnswer(draft, advisor, note string) (*models.AnswerVersion, error) {
	if strings.TrimSpace(draft) == "" {
		return nil, ErrEmptyDraft
	}
	q := b.Selected()
	if q == nil {
		return nil, ErrNoSelection
	}

	version := 1
	if n := len(q.AnswerHistory); n > 0 {
		version = q.AnswerHistory[n-1].Version + 1
	}

	answer := models.AnswerVersion{
		ID:         b.nextID(),
		QuestionID: q.ID,
		Version:    version,
		Content:    draft,
		UpdatedBy:  advisor,
		Note:       note,
		CreatedAt:  b.now(),
	}

	q.AnswerHistory = append(q.AnswerHistory, answer)
	q.LatestAnswer = &q.AnswerHistory[len(q.AnswerHistory)-1]
	q.Status = models.StatusAnswered

	return q.LatestAnswer, nil
}

// CreateQuestion inserts a new pending question at the front of the working
// set and selects it. Blank title or content is rejected without touching
// the collection.
func (b *Board) CreateQuestion(title, content, category string) (*models.Question, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	question := models.Question{
		ID:            b.nextID(),
		Title:         title,
		Content:       content,
		Category:      category,
		Status:        models.StatusPending,
		StudentName:   b.viewer + OwnMarker,
		Tags:          []string{},
		CreatedAt:     b.now(),
		AnswerHistory: []models.AnswerVersion{},
	}

	b.questions = append([]models.Question{question}, b.questions...)
	b.selectedID = question.ID

	return &b.questions[0], nil
}

// UpdateQuestion edits the title and content of the selected question.
// Only the viewer's own questions may be edited, and only while nothing has
// been answered yet.
func (b *Board) UpdateQuestion(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(content) == "" {
		return ErrEmptyContent
	}
	q := b.Selected()
	if q == nil {
		return ErrNoSelection
	}
	if !strings.HasSuffix(q.StudentName, OwnMarker) {
		return ErrNotOwned
	}
	if q.Status == models.StatusAnswered || len(q.AnswerHistory) > 0 {
		return ErrAlreadyAnswered
	}

	q.Title = title
	q.Content = content
	return nil
}

// nextID hands out identifiers the way the mock portal did: millisecond
// timestamps, bumped when two events land inside the same millisecond.
func (b *Board) nextID() int64 {
	id := b.now().UnixMilli()
	if id <= b.lastID {
		id = b.lastID + 1
	}
	b.lastID = id
	return id
}
