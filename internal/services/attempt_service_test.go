package services

import (
	"context"
	"testing"
	"time"

	"github.com/quizdesk/quiz-service/internal/events"
	"github.com/quizdesk/quiz-service/internal/models"
	"github.com/quizdesk/quiz-service/internal/repositories/memory"
	"github.com/quizdesk/quiz-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAttemptServiceForTest(repo *MockRepository, publisher events.EventPublisher, now time.Time) *attemptService {
	return &attemptService{
		repo:      repo,
		publisher: publisher,
		logger:    testLogger(),
		validator: validator.New(),
		now:       func() time.Time { return now },
	}
}

func validSubmitRequest() *SubmitAttemptRequest {
	return &SubmitAttemptRequest{
		UserFirstName:  "Marie",
		UserLastName:   "Durand",
		UserEmail:      "marie@example.com",
		Score:          intPtr(2),
		TotalQuestions: intPtr(3),
		Answers: []models.Answer{
			{QuestionID: 1, SelectedIndex: 0, CorrectIndex: 0, IsCorrect: true},
			{QuestionID: 2, SelectedIndex: 1, CorrectIndex: 2, IsCorrect: false},
			{QuestionID: 3, SelectedIndex: 2, CorrectIndex: 2, IsCorrect: true},
		},
		QuestionsSnapshot: []models.Question{{ID: 1}, {ID: 2}, {ID: 3}},
	}
}

func TestAttemptService_Submit(t *testing.T) {
	finishedAt := time.Date(2026, 3, 2, 10, 0, 30, 0, time.UTC)

	t.Run("records attempt and derives duration", func(t *testing.T) {
		repo := newMockRepository()
		publisher := events.NewMockEventPublisher()
		service := newAttemptServiceForTest(repo, publisher, finishedAt)

		req := validSubmitRequest()
		req.StartedAt = finishedAt.Add(-30 * time.Second).Format(time.RFC3339)

		repo.attemptRepo.On("ReplaceByEmail", mock.Anything, mock.MatchedBy(func(attempt *models.Attempt) bool {
			return attempt.UserEmail == "marie@example.com" &&
				attempt.Score == 2 &&
				attempt.TotalQuestions == 3 &&
				attempt.DurationMs != nil && *attempt.DurationMs == 30000
		})).Return(nil)

		resp, err := service.Submit(context.Background(), req)

		require.NoError(t, err)
		require.NotNil(t, resp.DurationMs)
		assert.Equal(t, int64(30000), *resp.DurationMs)
		assert.Equal(t, finishedAt, resp.FinishedAt)
		repo.attemptRepo.AssertExpectations(t)

		require.Len(t, publisher.Events, 1)
		assert.Equal(t, events.AttemptSubmitted, publisher.Events[0].Type)
	})

	t.Run("resubmission replaces instead of accumulating", func(t *testing.T) {
		repo := newMockRepository()
		publisher := events.NewMockEventPublisher()
		service := newAttemptServiceForTest(repo, publisher, finishedAt)

		repo.attemptRepo.On("ReplaceByEmail", mock.Anything, mock.Anything).Return(nil).Twice()

		_, err := service.Submit(context.Background(), validSubmitRequest())
		require.NoError(t, err)
		_, err = service.Submit(context.Background(), validSubmitRequest())
		require.NoError(t, err)

		repo.attemptRepo.AssertNumberOfCalls(t, "ReplaceByEmail", 2)
	})

	t.Run("absent startedAt yields null duration", func(t *testing.T) {
		repo := newMockRepository()
		service := newAttemptServiceForTest(repo, events.NewMockEventPublisher(), finishedAt)

		repo.attemptRepo.On("ReplaceByEmail", mock.Anything, mock.MatchedBy(func(attempt *models.Attempt) bool {
			return attempt.StartedAt == nil && attempt.DurationMs == nil
		})).Return(nil)

		resp, err := service.Submit(context.Background(), validSubmitRequest())

		require.NoError(t, err)
		assert.Nil(t, resp.DurationMs)
		repo.attemptRepo.AssertExpectations(t)
	})

	t.Run("unparsable startedAt yields null duration", func(t *testing.T) {
		repo := newMockRepository()
		service := newAttemptServiceForTest(repo, events.NewMockEventPublisher(), finishedAt)

		req := validSubmitRequest()
		req.StartedAt = "yesterday around noon"

		repo.attemptRepo.On("ReplaceByEmail", mock.Anything, mock.MatchedBy(func(attempt *models.Attempt) bool {
			return attempt.DurationMs == nil
		})).Return(nil)

		_, err := service.Submit(context.Background(), req)
		require.NoError(t, err)
		repo.attemptRepo.AssertExpectations(t)
	})

	t.Run("future startedAt clamps duration to zero", func(t *testing.T) {
		repo := newMockRepository()
		service := newAttemptServiceForTest(repo, events.NewMockEventPublisher(), finishedAt)

		req := validSubmitRequest()
		req.StartedAt = finishedAt.Add(time.Minute).Format(time.RFC3339)

		repo.attemptRepo.On("ReplaceByEmail", mock.Anything, mock.MatchedBy(func(attempt *models.Attempt) bool {
			return attempt.DurationMs != nil && *attempt.DurationMs == 0
		})).Return(nil)

		resp, err := service.Submit(context.Background(), req)

		require.NoError(t, err)
		require.NotNil(t, resp.DurationMs)
		assert.Equal(t, int64(0), *resp.DurationMs)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*SubmitAttemptRequest)
		}{
			{"missing email", func(r *SubmitAttemptRequest) { r.UserEmail = "" }},
			{"missing first name", func(r *SubmitAttemptRequest) { r.UserFirstName = "" }},
			{"missing score", func(r *SubmitAttemptRequest) { r.Score = nil }},
			{"missing total", func(r *SubmitAttemptRequest) { r.TotalQuestions = nil }},
			{"nil answers", func(r *SubmitAttemptRequest) { r.Answers = nil }},
			{"nil snapshot", func(r *SubmitAttemptRequest) { r.QuestionsSnapshot = nil }},
			{"empty answers for non-empty quiz", func(r *SubmitAttemptRequest) { r.Answers = []models.Answer{} }},
			{"empty snapshot for non-empty quiz", func(r *SubmitAttemptRequest) { r.QuestionsSnapshot = []models.Question{} }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := newMockRepository()
				service := newAttemptServiceForTest(repo, events.NewMockEventPublisher(), finishedAt)

				req := validSubmitRequest()
				tt.mutate(req)

				_, err := service.Submit(context.Background(), req)

				require.Error(t, err)
				assert.True(t, IsValidation(err), "expected validation error, got %v", err)
				repo.attemptRepo.AssertNotCalled(t, "ReplaceByEmail", mock.Anything, mock.Anything)
			})
		}
	})
}

func TestAttemptService_GetLatestByEmail(t *testing.T) {
	t.Run("returns stored attempt", func(t *testing.T) {
		repo := newMockRepository()
		service := newAttemptServiceForTest(repo, events.NewMockEventPublisher(), time.Now())

		stored := &models.Attempt{ID: 7, UserEmail: "marie@example.com", Score: 5}
		repo.attemptRepo.On("GetLatestByEmail", mock.Anything, "marie@example.com").Return(stored, nil)

		attempt, err := service.GetLatestByEmail(context.Background(), "marie@example.com")

		require.NoError(t, err)
		assert.Equal(t, stored, attempt)
	})

	t.Run("nil when no attempt exists", func(t *testing.T) {
		repo := newMockRepository()
		service := newAttemptServiceForTest(repo, events.NewMockEventPublisher(), time.Now())

		repo.attemptRepo.On("GetLatestByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

		attempt, err := service.GetLatestByEmail(context.Background(), "nobody@example.com")

		require.NoError(t, err)
		assert.Nil(t, attempt)
	})

	t.Run("rejects empty email", func(t *testing.T) {
		repo := newMockRepository()
		service := newAttemptServiceForTest(repo, events.NewMockEventPublisher(), time.Now())

		_, err := service.GetLatestByEmail(context.Background(), "")

		require.Error(t, err)
		assert.True(t, IsValidation(err))
		repo.attemptRepo.AssertNotCalled(t, "GetLatestByEmail", mock.Anything, mock.Anything)
	})
}

func TestAttemptService_List(t *testing.T) {
	repo := newMockRepository()
	service := newAttemptServiceForTest(repo, events.NewMockEventPublisher(), time.Now())

	attempts := []models.Attempt{
		{ID: 1, Score: 2, TotalQuestions: 10, DurationMs: int64Ptr(10000)},
		{ID: 2, Score: 4, TotalQuestions: 10, DurationMs: int64Ptr(30000)},
		{ID: 3, Score: 4, TotalQuestions: 10, DurationMs: nil},
		{ID: 4, Score: 6, TotalQuestions: 10, DurationMs: nil},
	}
	repo.attemptRepo.On("List", mock.Anything).Return(attempts, nil)

	resp, err := service.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, attempts, resp.Attempts)
	assert.Equal(t, 4, resp.Stats.Total)
	assert.Equal(t, 4.0, resp.Stats.Average)
	assert.Equal(t, 4.0, resp.Stats.Median)
	assert.Equal(t, 2, resp.Stats.Min)
	assert.Equal(t, 6, resp.Stats.Max)
	// Null durations are excluded from the average, not counted as zero.
	assert.Equal(t, 20000.0, resp.Stats.AverageDurationMs)
	assert.Equal(t, map[string]int{"2/10": 1, "4/10": 2, "6/10": 1}, resp.Stats.Distribution)
}

func TestAttemptService_List_Empty(t *testing.T) {
	repo := newMockRepository()
	service := newAttemptServiceForTest(repo, events.NewMockEventPublisher(), time.Now())

	repo.attemptRepo.On("List", mock.Anything).Return([]models.Attempt{}, nil)

	resp, err := service.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Stats.Total)
	assert.Equal(t, 0.0, resp.Stats.Average)
	assert.Empty(t, resp.Stats.Distribution)
}

func TestAttemptService_List_OrderingThroughStore(t *testing.T) {
	repo := memory.NewRepository()
	service := &attemptService{
		repo:      repo,
		publisher: events.NewMockEventPublisher(),
		logger:    testLogger(),
		validator: validator.New(),
		now:       time.Now,
	}

	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	ctx := context.Background()

	// Inserted in creation order: slow, timeless, fast.
	for i, attempt := range []*models.Attempt{
		{UserEmail: "a@example.com", Score: 1, TotalQuestions: 3, DurationMs: int64Ptr(30000)},
		{UserEmail: "b@example.com", Score: 2, TotalQuestions: 3, DurationMs: nil},
		{UserEmail: "c@example.com", Score: 3, TotalQuestions: 3, DurationMs: int64Ptr(10000)},
	} {
		attempt.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Attempt().ReplaceByEmail(ctx, attempt))
	}

	resp, err := service.List(ctx)

	require.NoError(t, err)
	require.Len(t, resp.Attempts, 3)
	// Fastest first, untimed last regardless of recency.
	assert.Equal(t, "c@example.com", resp.Attempts[0].UserEmail)
	assert.Equal(t, "a@example.com", resp.Attempts[1].UserEmail)
	assert.Equal(t, "b@example.com", resp.Attempts[2].UserEmail)
	assert.Nil(t, resp.Attempts[2].DurationMs)
}

func TestAttemptService_List_NullDurationTiesNewestFirst(t *testing.T) {
	repo := memory.NewRepository()
	service := &attemptService{
		repo:      repo,
		publisher: events.NewMockEventPublisher(),
		logger:    testLogger(),
		validator: validator.New(),
		now:       time.Now,
	}

	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	ctx := context.Background()

	older := &models.Attempt{UserEmail: "old@example.com", CreatedAt: base}
	newer := &models.Attempt{UserEmail: "new@example.com", CreatedAt: base.Add(time.Hour)}
	require.NoError(t, repo.Attempt().ReplaceByEmail(ctx, older))
	require.NoError(t, repo.Attempt().ReplaceByEmail(ctx, newer))

	resp, err := service.List(ctx)

	require.NoError(t, err)
	require.Len(t, resp.Attempts, 2)
	assert.Equal(t, "new@example.com", resp.Attempts[0].UserEmail)
	assert.Equal(t, "old@example.com", resp.Attempts[1].UserEmail)
}

func TestAttemptService_Delete(t *testing.T) {
	repo := newMockRepository()
	service := newAttemptServiceForTest(repo, events.NewMockEventPublisher(), time.Now())

	repo.attemptRepo.On("Delete", mock.Anything, uint(42)).Return(nil)

	err := service.Delete(context.Background(), 42)

	require.NoError(t, err)
	repo.attemptRepo.AssertExpectations(t)
}

func TestComputeStats_MedianEvenCount(t *testing.T) {
	attempts := []models.Attempt{
		{Score: 1, TotalQuestions: 5},
		{Score: 2, TotalQuestions: 5},
		{Score: 4, TotalQuestions: 5},
		{Score: 5, TotalQuestions: 5},
	}

	stats := computeStats(attempts)

	assert.Equal(t, 3.0, stats.Median)
	assert.Equal(t, 0.0, stats.AverageDurationMs)
}
