package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/quizdesk/quiz-service/internal/models"
)

// validateSequences enforces the sequence preconditions that struct tags
// cannot express: answers and the questions snapshot must be present (an
// absent array binds to nil), and may be empty only for a zero-question quiz.
func validateSequences(req *SubmitAttemptRequest) error {
	if req.Answers == nil {
		return NewValidationError("answers", "is required", nil)
	}
	if req.QuestionsSnapshot == nil {
		return NewValidationError("questionsSnapshot", "is required", nil)
	}
	if *req.TotalQuestions != 0 && len(req.Answers) == 0 {
		return NewValidationError("answers", "must not be empty for a non-empty quiz", len(req.Answers))
	}
	if *req.TotalQuestions != 0 && len(req.QuestionsSnapshot) == 0 {
		return NewValidationError("questionsSnapshot", "must not be empty for a non-empty quiz", len(req.QuestionsSnapshot))
	}
	return nil
}

// computeDuration parses the client-reported start time and derives the
// attempt duration. An absent or unparsable start time yields a null
// duration, never an error; negative spans clamp to zero.
func computeDuration(startedAtRaw string, finishedAt time.Time) (*time.Time, *int64) {
	if startedAtRaw == "" {
		return nil, nil
	}

	startedAt, err := time.Parse(time.RFC3339, startedAtRaw)
	if err != nil {
		return nil, nil
	}

	durationMs := finishedAt.Sub(startedAt).Milliseconds()
	if durationMs < 0 {
		durationMs = 0
	}

	started := startedAt.UTC()
	return &started, &durationMs
}

// computeStats aggregates scores and durations over the attempt list.
func computeStats(attempts []models.Attempt) Stats {
	stats := Stats{
		Distribution: make(map[string]int),
	}
	stats.Total = len(attempts)
	if stats.Total == 0 {
		return stats
	}

	scores := make([]int, 0, len(attempts))
	var scoreSum int
	var durationSum int64
	var durationCount int

	for _, attempt := range attempts {
		scores = append(scores, attempt.Score)
		scoreSum += attempt.Score

		if attempt.DurationMs != nil {
			durationSum += *attempt.DurationMs
			durationCount++
		}

		key := fmt.Sprintf("%d/%d", attempt.Score, attempt.TotalQuestions)
		stats.Distribution[key]++
	}

	sort.Ints(scores)

	stats.Average = float64(scoreSum) / float64(stats.Total)
	stats.Min = scores[0]
	stats.Max = scores[len(scores)-1]

	mid := len(scores) / 2
	if len(scores)%2 == 1 {
		stats.Median = float64(scores[mid])
	} else {
		stats.Median = float64(scores[mid-1]+scores[mid]) / 2
	}

	if durationCount > 0 {
		stats.AverageDurationMs = float64(durationSum) / float64(durationCount)
	}

	return stats
}
