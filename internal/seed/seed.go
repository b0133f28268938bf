package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/vhoang/advisorhub/internal/app/models"
	appRepos "github.com/vhoang/advisorhub/internal/app/repositories"
	"github.com/vhoang/advisorhub/internal/pkg/apperrors"
	"github.com/vhoang/advisorhub/internal/pkg/auth"
)

// Default accounts created on first boot so the portal is usable immediately
const (
	DefaultAdvisorEmail = "advisor@advisorhub.app"
	DefaultStudentEmail = "student@advisorhub.app"
	defaultSeedPassword = "advisorhub1"
	defaultAdvisorName  = "Mai Tran"
	defaultStudentName  = "Lan Pham"
)

// CreateDefaultData creates a default advisor and student account plus a
// handful of sample questions when the database is empty. Existing data is
// never touched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	questionRepo := appRepos.NewQuestionRepository(dbPool)
	answerRepo := appRepos.NewAnswerRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")

	advisorID, created, err := ensureUser(ctx, userRepo, defaultAdvisorName, DefaultAdvisorEmail, appModels.RoleAdvisor)
	if err != nil {
		return err
	}
	studentID, _, err := ensureUser(ctx, userRepo, defaultStudentName, DefaultStudentEmail, appModels.RoleStudent)
	if err != nil {
		return err
	}

	// Sample questions only on first boot, so a reset advisor account does
	// not resurrect them.
	if !created {
		return nil
	}

	questions := []struct {
		title    string
		content  string
		category string
		tags     []string
		answers  []string
	}{
		{
			title:    "Which electives count toward the data science track?",
			content:  "I want to finish the data science track next year. Do the statistics department electives count, or only the ones listed in the handbook?",
			category: "Courses",
			tags:     []string{"electives", "data-science"},
			answers: []string{
				"Only handbook electives count for now.",
				"Update: the statistics electives were approved for the track this semester, so both count. Check the revised handbook appendix.",
			},
		},
		{
			title:    "How do I defer my enrollment by a semester?",
			content:  "A family situation means I need to pause for the fall semester. What is the process and the deadline?",
			category: "Enrollment",
			tags:     []string{"deferral"},
			answers: []string{
				"File the deferral form with the registrar before the add/drop deadline. Your scholarship is unaffected for a single semester.",
			},
		},
		{
			title:    "Is there funding for conference travel?",
			content:  "My paper was accepted at a regional conference. Does the department cover travel for undergraduates?",
			category: "Funding",
			tags:     []string{"travel", "conference"},
			answers:  nil,
		},
	}

	for _, q := range questions {
		question := &appModels.Question{
			Title:     q.title,
			Content:   q.content,
			Category:  q.category,
			Status:    appModels.StatusPending,
			StudentID: studentID,
			Tags:      q.tags,
		}
		if _, err := questionRepo.CreateQuestion(ctx, question); err != nil {
			lgr.Error().Err(err).Str("title", q.title).Msg("Error creating sample question")
			continue
		}

		for _, answer := range q.answers {
			tx, err := dbPool.Begin(ctx)
			if err != nil {
				return err
			}
			if _, err := answerRepo.AppendVersion(ctx, tx, question.ID, advisorID, answer, ""); err != nil {
				tx.Rollback(ctx)
				lgr.Error().Err(err).Int64("questionID", question.ID).Msg("Error seeding answer version")
				continue
			}
			if err := tx.Commit(ctx); err != nil {
				return err
			}
		}
	}

	lgr.Info().Msg("Default data ready")
	return nil
}

// ensureUser creates the account if it does not exist and reports whether
// it was created by this call.
func ensureUser(ctx context.Context, userRepo *appRepos.UserRepository, name, email string, role appModels.RoleType) (int64, bool, error) {
	existing, err := userRepo.GetUserByEmail(ctx, email)
	if err == nil {
		return existing.ID, false, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return 0, false, err
	}

	hashed, err := auth.HashPassword(defaultSeedPassword)
	if err != nil {
		return 0, false, err
	}

	user := &appModels.User{
		Email:    email,
		Password: hashed,
		Name:     name,
		RoleType: role,
		IsActive: true,
	}

	id, err := userRepo.CreateUser(ctx, user)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}
