package models

// RoleType identifies which side of the portal a user sits on
type RoleType string

const (
	// RoleStudent submits questions
	RoleStudent RoleType = "student"
	// RoleAdvisor answers them
	RoleAdvisor RoleType = "advisor"
)

// Valid reports whether the role is one of the known roles
func (r RoleType) Valid() bool {
	return r == RoleStudent || r == RoleAdvisor
}

// QuestionStatus tracks where a question sits in its lifecycle
type QuestionStatus string

const (
	StatusPending    QuestionStatus = "pending"
	StatusInProgress QuestionStatus = "in_progress"
	StatusAnswered   QuestionStatus = "answered"
)

// Valid reports whether the status is one of the known statuses
func (s QuestionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusAnswered:
		return true
	}
	return false
}
