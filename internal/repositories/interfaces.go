package repositories

import (
	"context"

	"github.com/quizdesk/quiz-service/internal/models"
)

// QuestionRepository interface for question bank operations
type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	Update(ctx context.Context, id uint, question *models.Question) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	List(ctx context.Context) ([]models.Question, error)
	Count(ctx context.Context) (int64, error)
}

// AttemptRepository interface for quiz attempt operations
type AttemptRepository interface {
	// ReplaceByEmail deletes any attempts recorded for the attempt's email and
	// inserts the new one, atomically. After it returns, exactly one attempt
	// exists for that email.
	ReplaceByEmail(ctx context.Context, attempt *models.Attempt) error

	// GetLatestByEmail returns the most recent attempt for the email, or nil
	// when none exists.
	GetLatestByEmail(ctx context.Context, email string) (*models.Attempt, error)

	// List returns every attempt, non-null durations first ascending, then
	// null durations, ties broken by creation time descending.
	List(ctx context.Context) ([]models.Attempt, error)

	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) error
}

// SettingsRepository interface for the singleton settings row
type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error)
	Upsert(ctx context.Context, appName string) error
}

// Repository aggregates access to all stores and is injected into services.
type Repository interface {
	Question() QuestionRepository
	Attempt() AttemptRepository
	Settings() SettingsRepository
}
