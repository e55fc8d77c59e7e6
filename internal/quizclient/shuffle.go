package quizclient

import (
	"math/rand"

	"github.com/quizdesk/quiz-service/internal/models"
	"gorm.io/datatypes"
)

// shuffled returns a Fisher-Yates-shuffled copy of items.
func shuffled[T any](rng *rand.Rand, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// ShuffleQuestions permutes the question order and, independently, each
// question's choice order, remapping the correct index to follow the moved
// choice. The result is computed once at quiz start and frozen into the
// snapshot; recomputing it mid-attempt would desynchronize shown labels from
// stored answers.
func ShuffleQuestions(rng *rand.Rand, questions []models.Question) []models.Question {
	type indexedChoice struct {
		choice string
		index  int
	}

	out := shuffled(rng, questions)
	for qi, question := range out {
		indexed := make([]indexedChoice, len(question.Choices))
		for i, choice := range question.Choices {
			indexed[i] = indexedChoice{choice: choice, index: i}
		}

		indexed = shuffled(rng, indexed)

		choices := make([]string, len(indexed))
		correctIndex := question.CorrectIndex
		for i, item := range indexed {
			choices[i] = item.choice
			if item.index == question.CorrectIndex {
				correctIndex = i
			}
		}

		out[qi].Choices = datatypes.NewJSONSlice(choices)
		out[qi].CorrectIndex = correctIndex
	}

	return out
}
