package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quizdesk/quiz-service/internal/events"
	"github.com/quizdesk/quiz-service/internal/models"
	"github.com/quizdesk/quiz-service/internal/repositories"
	"github.com/quizdesk/quiz-service/internal/validator"
	"gorm.io/datatypes"
)

// SubmitAttemptRequest is the payload a client sends when its completed local
// progress is pushed to the server. Score and TotalQuestions are pointers so
// a missing field is distinguishable from zero.
type SubmitAttemptRequest struct {
	UserFirstName     string            `json:"userFirstName" validate:"required,min=1"`
	UserLastName      string            `json:"userLastName" validate:"required,min=1"`
	UserEmail         string            `json:"userEmail" validate:"required,min=1"`
	Score             *int              `json:"score" validate:"required"`
	TotalQuestions    *int              `json:"totalQuestions" validate:"required"`
	Answers           []models.Answer   `json:"answers"`
	QuestionsSnapshot []models.Question `json:"questionsSnapshot"`
	StartedAt         string            `json:"startedAt"`
}

type SubmitAttemptResponse struct {
	ID         uint       `json:"id"`
	CreatedAt  time.Time  `json:"createdAt"`
	FinishedAt time.Time  `json:"finishedAt"`
	DurationMs *int64     `json:"durationMs"`
}

// Stats summarizes the full attempt list.
type Stats struct {
	Total             int            `json:"total"`
	Average           float64        `json:"average"`
	Median            float64        `json:"median"`
	Min               int            `json:"min"`
	Max               int            `json:"max"`
	AverageDurationMs float64        `json:"averageDurationMs"`
	Distribution      map[string]int `json:"distribution"`
}

type ListAttemptsResponse struct {
	Attempts []models.Attempt `json:"attempts"`
	Stats    Stats            `json:"stats"`
}

// AttemptService records finished quiz attempts and serves them back with
// aggregate statistics. Submission is last-write-wins per email.
type AttemptService interface {
	Submit(ctx context.Context, req *SubmitAttemptRequest) (*SubmitAttemptResponse, error)
	GetLatestByEmail(ctx context.Context, email string) (*models.Attempt, error)
	List(ctx context.Context) (*ListAttemptsResponse, error)
	Delete(ctx context.Context, id uint) error
}

type attemptService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
	now       func() time.Time
}

func NewAttemptService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) AttemptService {
	return &attemptService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: v,
		now:       time.Now,
	}
}

// Submit validates and records a finished attempt, replacing any earlier
// attempt for the same email. After a successful return exactly one attempt
// exists for that email, and it is the one just submitted.
func (s *attemptService) Submit(ctx context.Context, req *SubmitAttemptRequest) (*SubmitAttemptResponse, error) {
	s.logger.Info("Submitting quiz attempt",
		"user_email", req.UserEmail,
		"answers_count", len(req.Answers))

	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateSequences(req); err != nil {
		return nil, err
	}

	createdAt := s.now().UTC()
	finishedAt := createdAt
	startedAt, durationMs := computeDuration(req.StartedAt, finishedAt)

	attempt := &models.Attempt{
		UserFirstName:     req.UserFirstName,
		UserLastName:      req.UserLastName,
		UserEmail:         req.UserEmail,
		Score:             *req.Score,
		TotalQuestions:    *req.TotalQuestions,
		Answers:           datatypes.NewJSONSlice(req.Answers),
		QuestionsSnapshot: datatypes.NewJSONSlice(req.QuestionsSnapshot),
		StartedAt:         startedAt,
		FinishedAt:        finishedAt,
		DurationMs:        durationMs,
		CreatedAt:         createdAt,
	}

	if err := s.repo.Attempt().ReplaceByEmail(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	if err := s.publisher.Publish(ctx, events.AttemptSubmitted, events.AttemptSubmittedPayload{
		AttemptID:      attempt.ID,
		UserEmail:      attempt.UserEmail,
		Score:          attempt.Score,
		TotalQuestions: attempt.TotalQuestions,
	}); err != nil {
		// Events are advisory; the attempt is already durable.
		s.logger.Error("Failed to publish attempt event", "attempt_id", attempt.ID, "error", err)
	}

	s.logger.Info("Quiz attempt recorded",
		"attempt_id", attempt.ID,
		"user_email", attempt.UserEmail,
		"score", attempt.Score)

	return &SubmitAttemptResponse{
		ID:         attempt.ID,
		CreatedAt:  attempt.CreatedAt,
		FinishedAt: attempt.FinishedAt,
		DurationMs: attempt.DurationMs,
	}, nil
}

func (s *attemptService) GetLatestByEmail(ctx context.Context, email string) (*models.Attempt, error) {
	if email == "" {
		return nil, NewValidationError("email", "is required", email)
	}

	attempt, err := s.repo.Attempt().GetLatestByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get attempt by email: %w", err)
	}

	return attempt, nil
}

func (s *attemptService) List(ctx context.Context) (*ListAttemptsResponse, error) {
	attempts, err := s.repo.Attempt().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	return &ListAttemptsResponse{
		Attempts: attempts,
		Stats:    computeStats(attempts),
	}, nil
}

// Delete removes an attempt by id; deleting a non-existent id succeeds.
func (s *attemptService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Attempt().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete attempt: %w", err)
	}

	s.logger.Info("Attempt deleted", "attempt_id", id)
	return nil
}
