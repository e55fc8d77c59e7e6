package services

import (
	"log/slog"

	"github.com/quizdesk/quiz-service/internal/cache"
	"github.com/quizdesk/quiz-service/internal/events"
	"github.com/quizdesk/quiz-service/internal/repositories"
	"github.com/quizdesk/quiz-service/internal/validator"
)

// ServiceManager bundles the services for injection into the handlers.
type ServiceManager interface {
	Attempt() AttemptService
	Question() QuestionService
	Settings() SettingsService
	Auth() AuthService
}

type serviceManager struct {
	attempt  AttemptService
	question QuestionService
	settings SettingsService
	auth     AuthService
}

func NewServiceManager(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
	adminPassword string,
) ServiceManager {
	return &serviceManager{
		attempt:  NewAttemptService(repo, publisher, logger, v),
		question: NewQuestionService(repo, cacheService, publisher, logger, v),
		settings: NewSettingsService(repo, cacheService, logger),
		auth:     NewAuthService(adminPassword, logger),
	}
}

func (m *serviceManager) Attempt() AttemptService {
	return m.attempt
}

func (m *serviceManager) Question() QuestionService {
	return m.question
}

func (m *serviceManager) Settings() SettingsService {
	return m.settings
}

func (m *serviceManager) Auth() AuthService {
	return m.auth
}
