package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/quizdesk/quiz-service/internal/models"
	"github.com/quizdesk/quiz-service/internal/repositories"
)

// Repository is an in-memory implementation of repositories.Repository. It
// honors the same contracts as the postgres stores, including the attempt
// listing order, and backs tests that need a full store without a database.
type Repository struct {
	mu sync.Mutex

	questions      []models.Question
	nextQuestionID uint

	attempts      []models.Attempt
	nextAttemptID uint

	settings *models.Settings
}

func NewRepository() *Repository {
	return &Repository{
		nextQuestionID: 1,
		nextAttemptID:  1,
	}
}

func (r *Repository) Question() repositories.QuestionRepository {
	return &questionStore{r}
}

func (r *Repository) Attempt() repositories.AttemptRepository {
	return &attemptStore{r}
}

func (r *Repository) Settings() repositories.SettingsRepository {
	return &settingsStore{r}
}

type questionStore struct {
	*Repository
}

func (s *questionStore) Create(ctx context.Context, question *models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	question.ID = s.nextQuestionID
	s.nextQuestionID++
	s.questions = append(s.questions, *question)
	return nil
}

// Update is a silent no-op when the id does not exist, like the SQL store.
func (s *questionStore) Update(ctx context.Context, id uint, question *models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.questions {
		if s.questions[i].ID == id {
			s.questions[i].Label = question.Label
			s.questions[i].Choices = question.Choices
			s.questions[i].CorrectIndex = question.CorrectIndex
			return nil
		}
	}
	return nil
}

func (s *questionStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.questions {
		if s.questions[i].ID == id {
			s.questions = append(s.questions[:i], s.questions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *questionStore) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.questions {
		if s.questions[i].ID == id {
			question := s.questions[i]
			return &question, nil
		}
	}
	return nil, nil
}

func (s *questionStore) List(ctx context.Context) ([]models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]models.Question(nil), s.questions...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *questionStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return int64(len(s.questions)), nil
}

type attemptStore struct {
	*Repository
}

func (s *attemptStore) ReplaceByEmail(ctx context.Context, attempt *models.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.attempts[:0]
	for _, existing := range s.attempts {
		if existing.UserEmail != attempt.UserEmail {
			kept = append(kept, existing)
		}
	}
	s.attempts = kept

	attempt.ID = s.nextAttemptID
	s.nextAttemptID++
	s.attempts = append(s.attempts, *attempt)
	return nil
}

func (s *attemptStore) GetLatestByEmail(ctx context.Context, email string) (*models.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *models.Attempt
	for i := range s.attempts {
		if s.attempts[i].UserEmail != email {
			continue
		}
		if latest == nil || s.attempts[i].CreatedAt.After(latest.CreatedAt) {
			latest = &s.attempts[i]
		}
	}
	if latest == nil {
		return nil, nil
	}

	attempt := *latest
	return &attempt, nil
}

// List orders timed attempts by speed and pushes timeless ones to the back,
// newest first within ties, matching the SQL store's ORDER BY chain.
func (s *attemptStore) List(ctx context.Context) ([]models.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]models.Attempt(nil), s.attempts...)
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].DurationMs, out[j].DurationMs
		if (di == nil) != (dj == nil) {
			return di != nil
		}
		if di != nil && *di != *dj {
			return *di < *dj
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *attemptStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.attempts {
		if s.attempts[i].ID == id {
			s.attempts = append(s.attempts[:i], s.attempts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *attemptStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempts = nil
	return nil
}

type settingsStore struct {
	*Repository
}

func (s *settingsStore) Get(ctx context.Context) (*models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.settings == nil {
		return nil, nil
	}
	settings := *s.settings
	return &settings, nil
}

func (s *settingsStore) Upsert(ctx context.Context, appName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = &models.Settings{ID: models.SettingsID, AppName: appName}
	return nil
}
