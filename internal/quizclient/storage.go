package quizclient

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/quizdesk/quiz-service/internal/models"
)

// Progress is the local draft of an in-progress or just-completed attempt.
// It is advisory only: once a server attempt exists, the server is
// authoritative and reconciliation overwrites this state.
type Progress struct {
	User               models.QuizUser   `json:"user"`
	CurrentIndex       int               `json:"currentIndex"`
	Answers            []models.Answer   `json:"answers"`
	StartedAt          time.Time         `json:"startedAt"`
	FinishedAt         *time.Time        `json:"finishedAt,omitempty"`
	SubmittedAttemptID *uint             `json:"submittedAttemptId,omitempty"`
	QuestionsSnapshot  []models.Question `json:"questionsSnapshot,omitempty"`
}

// Completed reports whether every snapshot question has been answered.
func (p *Progress) Completed() bool {
	return len(p.QuestionsSnapshot) > 0 && len(p.Answers) >= len(p.QuestionsSnapshot)
}

// Score counts the correct answers recorded so far.
func (p *Progress) Score() int {
	score := 0
	for _, answer := range p.Answers {
		if answer.IsCorrect {
			score++
		}
	}
	return score
}

// ProgressStore persists the local draft between application loads.
type ProgressStore interface {
	// Load returns the stored progress, or nil when none exists. Corrupt
	// state reads as empty rather than failing the quiz flow.
	Load() (*Progress, error)
	Save(progress *Progress) error
	Clear() error
}

// FileStore keeps the draft as a JSON file, the durable-local-state
// equivalent of browser storage.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (*Progress, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var progress Progress
	if err := json.Unmarshal(data, &progress); err != nil {
		return nil, nil
	}

	return &progress, nil
}

func (s *FileStore) Save(progress *Progress) error {
	data, err := json.Marshal(progress)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	// Write-then-rename so a crash mid-save never leaves a torn draft.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// MemoryStore is an in-memory ProgressStore for tests.
type MemoryStore struct {
	progress *Progress
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (*Progress, error) {
	if s.progress == nil {
		return nil, nil
	}
	clone := *s.progress
	return &clone, nil
}

func (s *MemoryStore) Save(progress *Progress) error {
	clone := *progress
	s.progress = &clone
	return nil
}

func (s *MemoryStore) Clear() error {
	s.progress = nil
	return nil
}
