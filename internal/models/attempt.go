package models

import (
	"time"

	"gorm.io/datatypes"
)

// Answer records a single answered question, with the correct index copied at
// answer time so the record stays meaningful after the bank changes.
type Answer struct {
	QuestionID    uint `json:"questionId"`
	SelectedIndex int  `json:"selectedIndex"`
	CorrectIndex  int  `json:"correctIndex"`
	IsCorrect     bool `json:"isCorrect"`
}

// Attempt is one completed quiz submission. The questions snapshot freezes the
// exact set, order and shuffle the user saw; at most one attempt exists per
// email at any time.
type Attempt struct {
	ID                uint                          `json:"id" gorm:"primaryKey"`
	UserFirstName     string                        `json:"userFirstName" gorm:"not null"`
	UserLastName      string                        `json:"userLastName" gorm:"not null"`
	UserEmail         string                        `json:"userEmail" gorm:"not null;index"`
	Score             int                           `json:"score" gorm:"not null"`
	TotalQuestions    int                           `json:"totalQuestions" gorm:"not null"`
	Answers           datatypes.JSONSlice[Answer]   `json:"answers" gorm:"type:jsonb;not null"`
	QuestionsSnapshot datatypes.JSONSlice[Question] `json:"questionsSnapshot" gorm:"type:jsonb;not null"`
	StartedAt         *time.Time                    `json:"startedAt"`
	FinishedAt        time.Time                     `json:"finishedAt"`
	DurationMs        *int64                        `json:"durationMs"`
	CreatedAt         time.Time                     `json:"createdAt"`
}

func (Attempt) TableName() string {
	return "attempts"
}

// QuizUser is the identity a quiz taker enters before starting.
type QuizUser struct {
	FirstName string `json:"firstName" validate:"required,min=1"`
	LastName  string `json:"lastName" validate:"required,min=1"`
	Email     string `json:"email" validate:"required,min=1"`
}
