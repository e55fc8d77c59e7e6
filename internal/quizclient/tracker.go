package quizclient

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/quizdesk/quiz-service/internal/models"
	"github.com/quizdesk/quiz-service/internal/services"
)

var (
	ErrNoActiveQuiz     = errors.New("no quiz in progress")
	ErrQuizCompleted    = errors.New("quiz already completed")
	ErrChoiceOutOfRange = errors.New("selected choice is out of range")
)

// Tracker drives a quiz attempt on the client side. It owns the local draft
// lifecycle: start, answer-by-answer advance, completion, a once-only submit,
// and reconciliation against the server's stored attempt.
type Tracker struct {
	store  ProgressStore
	api    API
	logger *slog.Logger
	rng    *rand.Rand
	now    func() time.Time
}

type TrackerOption func(*Tracker)

// WithRandSource fixes the shuffle source, mainly for deterministic tests.
func WithRandSource(rng *rand.Rand) TrackerOption {
	return func(t *Tracker) {
		t.rng = rng
	}
}

func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) {
		t.now = now
	}
}

func NewTracker(store ProgressStore, api API, logger *slog.Logger, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		store:  store,
		api:    api,
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Current returns the stored draft, or nil when none exists. The cursor is
// realigned to the answer count before it is returned: the answers slice is
// the source of truth for position, so a drifted cursor (stale save, manual
// edit) never skips or repeats a question.
func (t *Tracker) Current() (*Progress, error) {
	progress, err := t.store.Load()
	if err != nil || progress == nil {
		return progress, err
	}

	index := len(progress.Answers)
	if index > len(progress.QuestionsSnapshot) {
		index = len(progress.QuestionsSnapshot)
	}
	if progress.CurrentIndex != index {
		progress.CurrentIndex = index
		if err := t.store.Save(progress); err != nil {
			return nil, err
		}
	}

	return progress, nil
}

// Start begins a quiz for the given user. An unfinished draft for the same
// email is resumed as-is; anything else is replaced with a fresh draft built
// from a newly fetched and shuffled question set.
func (t *Tracker) Start(ctx context.Context, user models.QuizUser) (*Progress, error) {
	existing, err := t.Current()
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.User.Email == user.Email && !existing.Completed() {
		return existing, nil
	}

	questions, err := t.api.GetQuestions(ctx)
	if err != nil {
		return nil, err
	}

	progress := &Progress{
		User:              user,
		CurrentIndex:      0,
		Answers:           []models.Answer{},
		StartedAt:         t.now(),
		QuestionsSnapshot: ShuffleQuestions(t.rng, questions),
	}
	if err := t.store.Save(progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// Answer records the selected choice for the current question and advances
// the cursor. Answering the last question stamps the finish time.
func (t *Tracker) Answer(selectedIndex int) (*Progress, error) {
	progress, err := t.Current()
	if err != nil {
		return nil, err
	}
	if progress == nil || len(progress.QuestionsSnapshot) == 0 {
		return nil, ErrNoActiveQuiz
	}
	if progress.Completed() {
		return nil, ErrQuizCompleted
	}

	question := progress.QuestionsSnapshot[progress.CurrentIndex]
	if selectedIndex < 0 || selectedIndex >= len(question.Choices) {
		return nil, ErrChoiceOutOfRange
	}

	progress.Answers = append(progress.Answers, models.Answer{
		QuestionID:    question.ID,
		SelectedIndex: selectedIndex,
		CorrectIndex:  question.CorrectIndex,
		IsCorrect:     selectedIndex == question.CorrectIndex,
	})
	progress.CurrentIndex = len(progress.Answers)

	if progress.Completed() {
		finishedAt := t.now()
		progress.FinishedAt = &finishedAt
	}

	if err := t.store.Save(progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// SubmitIfCompleted sends the finished draft to the server exactly once.
// A draft that is incomplete or already submitted is returned untouched.
// Transport failures are logged and swallowed so the local result stays
// visible; the next call retries.
func (t *Tracker) SubmitIfCompleted(ctx context.Context) (*Progress, error) {
	progress, err := t.Current()
	if err != nil {
		return nil, err
	}
	if progress == nil || !progress.Completed() || progress.SubmittedAttemptID != nil {
		return progress, nil
	}

	score := progress.Score()
	total := len(progress.QuestionsSnapshot)
	resp, err := t.api.SubmitAttempt(ctx, &services.SubmitAttemptRequest{
		UserFirstName:     progress.User.FirstName,
		UserLastName:      progress.User.LastName,
		UserEmail:         progress.User.Email,
		Score:             &score,
		TotalQuestions:    &total,
		Answers:           progress.Answers,
		QuestionsSnapshot: progress.QuestionsSnapshot,
		StartedAt:         progress.StartedAt.Format(time.RFC3339),
	})
	if err != nil {
		t.logger.Warn("attempt submission failed, keeping local result", "email", progress.User.Email, "error", err)
		return progress, nil
	}

	progress.SubmittedAttemptID = &resp.ID
	if err := t.store.Save(progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// Reconcile aligns the local draft with the server's stored attempt for the
// same email. The server is authoritative: a stored attempt supersedes any
// local state, and a missing one (attempts wiped after a question change)
// invalidates a draft that believed it was submitted.
func (t *Tracker) Reconcile(ctx context.Context) (*Progress, error) {
	progress, err := t.Current()
	if err != nil || progress == nil {
		return progress, err
	}

	serverAttempt, err := t.api.GetAttemptByEmail(ctx, progress.User.Email)
	if err != nil {
		t.logger.Warn("reconciliation skipped, server unreachable", "email", progress.User.Email, "error", err)
		return progress, nil
	}

	if serverAttempt != nil {
		mirrored := mirrorAttempt(serverAttempt)
		if err := t.store.Save(mirrored); err != nil {
			return nil, err
		}
		return mirrored, nil
	}

	if progress.SubmittedAttemptID != nil {
		if err := t.store.Clear(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return progress, nil
}

// mirrorAttempt rebuilds a local draft from the server's stored attempt, in
// the submitted terminal state.
func mirrorAttempt(attempt *models.Attempt) *Progress {
	mirrored := &Progress{
		User: models.QuizUser{
			FirstName: attempt.UserFirstName,
			LastName:  attempt.UserLastName,
			Email:     attempt.UserEmail,
		},
		CurrentIndex:       len(attempt.Answers),
		Answers:            append([]models.Answer(nil), attempt.Answers...),
		QuestionsSnapshot:  append([]models.Question(nil), attempt.QuestionsSnapshot...),
		SubmittedAttemptID: &attempt.ID,
	}
	// Older attempts may carry no explicit timestamps; creation time is the
	// closest server-side truth for both ends.
	mirrored.StartedAt = attempt.CreatedAt
	if attempt.StartedAt != nil {
		mirrored.StartedAt = *attempt.StartedAt
	}
	finishedAt := attempt.FinishedAt
	if finishedAt.IsZero() {
		finishedAt = attempt.CreatedAt
	}
	mirrored.FinishedAt = &finishedAt
	return mirrored
}
