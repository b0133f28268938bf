package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	QuestionRepository   *QuestionRepository
	AnswerRepository     *AnswerRepository
	ResetTokenRepository *ResetTokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		QuestionRepository:   NewQuestionRepository(db),
		AnswerRepository:     NewAnswerRepository(db),
		ResetTokenRepository: NewResetTokenRepository(db),
	}
}
