package models

import (
	"gorm.io/datatypes"
)

// Question is one multiple-choice entry of the bank. Choices are stored as a
// jsonb array; CorrectIndex points into Choices.
type Question struct {
	ID           uint                        `json:"id" gorm:"primaryKey"`
	Label        string                      `json:"label" gorm:"type:text;not null" validate:"required,min=1"`
	Choices      datatypes.JSONSlice[string] `json:"choices" gorm:"type:jsonb;not null" validate:"required,min=2"`
	CorrectIndex int                         `json:"correctIndex" gorm:"not null" validate:"min=0"`
}

func (Question) TableName() string {
	return "questions"
}
