package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/quizdesk/quiz-service/internal/cache"
	"github.com/quizdesk/quiz-service/internal/events"
	"github.com/quizdesk/quiz-service/internal/models"
	"github.com/quizdesk/quiz-service/internal/repositories"
	"github.com/quizdesk/quiz-service/internal/validator"
	"gorm.io/datatypes"
)

// SaveQuestionRequest carries the editable question fields for both create
// and update. CorrectIndex is a pointer so a missing field is
// distinguishable from index zero.
type SaveQuestionRequest struct {
	Label        string   `json:"label" validate:"required,min=1"`
	Choices      []string `json:"choices" validate:"required,min=2"`
	CorrectIndex *int     `json:"correctIndex" validate:"required"`
}

func (r *SaveQuestionRequest) QuestionLabel() string {
	return r.Label
}

func (r *SaveQuestionRequest) QuestionChoices() []string {
	return r.Choices
}

func (r *SaveQuestionRequest) QuestionCorrectIndex() int {
	if r.CorrectIndex == nil {
		return -1
	}
	return *r.CorrectIndex
}

// QuestionService manages the question bank. Every update or delete wipes
// the recorded attempts: stored attempts embed a snapshot of the bank at
// take-time, and mutating the bank would make old snapshots inconsistent
// with current grading. The wipe is reported via the attemptsCleared result
// so the admin UI can warn before committing.
type QuestionService interface {
	List(ctx context.Context) ([]models.Question, error)
	Create(ctx context.Context, req *SaveQuestionRequest) (uint, error)
	// Update and Delete return attemptsCleared=true after wiping history.
	Update(ctx context.Context, id uint, req *SaveQuestionRequest) (attemptsCleared bool, err error)
	Delete(ctx context.Context, id uint) (attemptsCleared bool, err error)
}

type questionService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewQuestionService(repo repositories.Repository, cacheService cache.CacheService, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) QuestionService {
	return &questionService{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *questionService) List(ctx context.Context) ([]models.Question, error) {
	var cached []models.Question
	if err := s.cache.Get(ctx, cache.QuestionsKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Question cache read failed", "error", err)
	}

	questions, err := s.repo.Question().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	if err := s.cache.Set(ctx, cache.QuestionsKey, questions, cache.DefaultTTL); err != nil {
		s.logger.Warn("Question cache write failed", "error", err)
	}

	return questions, nil
}

func (s *questionService) Create(ctx context.Context, req *SaveQuestionRequest) (uint, error) {
	if err := s.validator.Validate(req); err != nil {
		return 0, fmt.Errorf("validation failed: %w", err)
	}

	question := &models.Question{
		Label:        req.Label,
		Choices:      datatypes.NewJSONSlice(req.Choices),
		CorrectIndex: *req.CorrectIndex,
	}

	if err := s.repo.Question().Create(ctx, question); err != nil {
		return 0, fmt.Errorf("failed to create question: %w", err)
	}

	s.invalidateQuestionCache(ctx)
	s.logger.Info("Question created", "question_id", question.ID)

	// Creating cannot invalidate past snapshots, so history is kept.
	return question.ID, nil
}

func (s *questionService) Update(ctx context.Context, id uint, req *SaveQuestionRequest) (bool, error) {
	if err := s.validator.Validate(req); err != nil {
		return false, fmt.Errorf("validation failed: %w", err)
	}

	question := &models.Question{
		Label:        req.Label,
		Choices:      datatypes.NewJSONSlice(req.Choices),
		CorrectIndex: *req.CorrectIndex,
	}

	if err := s.repo.Question().Update(ctx, id, question); err != nil {
		return false, fmt.Errorf("failed to update question: %w", err)
	}

	if err := s.clearAttempts(ctx, "question_updated", id); err != nil {
		return false, err
	}

	s.logger.Info("Question updated, attempt history cleared", "question_id", id)
	return true, nil
}

func (s *questionService) Delete(ctx context.Context, id uint) (bool, error) {
	if err := s.repo.Question().Delete(ctx, id); err != nil {
		return false, fmt.Errorf("failed to delete question: %w", err)
	}

	if err := s.clearAttempts(ctx, "question_deleted", id); err != nil {
		return false, err
	}

	s.logger.Info("Question deleted, attempt history cleared", "question_id", id)
	return true, nil
}

// clearAttempts wipes all recorded attempts after a bank mutation. Stored
// snapshots would otherwise drift from the questions currently served.
func (s *questionService) clearAttempts(ctx context.Context, reason string, questionID uint) error {
	if err := s.repo.Attempt().DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear attempts: %w", err)
	}

	s.invalidateQuestionCache(ctx)

	if err := s.publisher.Publish(ctx, events.AttemptsCleared, events.AttemptsClearedPayload{
		Reason:     reason,
		QuestionID: questionID,
	}); err != nil {
		s.logger.Error("Failed to publish attempts-cleared event", "question_id", questionID, "error", err)
	}

	return nil
}

func (s *questionService) invalidateQuestionCache(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.QuestionsKey); err != nil {
		s.logger.Warn("Question cache invalidation failed", "error", err)
	}
}
