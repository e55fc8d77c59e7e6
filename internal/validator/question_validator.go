package validator

import (
	apperrors "github.com/quizdesk/quiz-service/internal/errors"
)

// QuestionContent is implemented by requests that carry question fields.
type QuestionContent interface {
	QuestionLabel() string
	QuestionChoices() []string
	QuestionCorrectIndex() int
}

// QuestionValidator enforces the question bank rules: a non-empty label, at
// least two choices, and a correct index that points at an existing choice.
type QuestionValidator struct{}

func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

func (qv *QuestionValidator) Validate(q QuestionContent) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors

	if q.QuestionLabel() == "" {
		errs = append(errs, *apperrors.NewValidationError("label", "is required", q.QuestionLabel()))
	}

	choices := q.QuestionChoices()
	if len(choices) < 2 {
		errs = append(errs, *apperrors.NewValidationError("choices", "must contain at least 2 entries", len(choices)))
	}
	for i, choice := range choices {
		if choice == "" {
			errs = append(errs, *apperrors.NewValidationError("choices", "must not contain empty entries", i))
			break
		}
	}

	// An out-of-range index would silently produce a question with no valid
	// correct answer, so bounds are checked against the choice list.
	if idx := q.QuestionCorrectIndex(); idx < 0 || idx >= len(choices) {
		errs = append(errs, *apperrors.NewValidationError("correctIndex", "must index an existing choice", idx))
	}

	return errs
}
