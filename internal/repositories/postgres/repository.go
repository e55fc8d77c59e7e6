package postgres

import (
	"github.com/quizdesk/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	question repositories.QuestionRepository
	attempt  repositories.AttemptRepository
	settings repositories.SettingsRepository
}

// NewRepository wires the GORM-backed stores behind the Repository interface.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		question: NewQuestionPostgreSQL(db),
		attempt:  NewAttemptPostgreSQL(db),
		settings: NewSettingsPostgreSQL(db),
	}
}

func (r *repository) Question() repositories.QuestionRepository {
	return r.question
}

func (r *repository) Attempt() repositories.AttemptRepository {
	return r.attempt
}

func (r *repository) Settings() repositories.SettingsRepository {
	return r.settings
}
