package postgres

import (
	"context"
	"errors"

	"github.com/quizdesk/quiz-service/internal/models"
	"github.com/quizdesk/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type AttemptPostgreSQL struct {
	db *gorm.DB
}

func NewAttemptPostgreSQL(db *gorm.DB) repositories.AttemptRepository {
	return &AttemptPostgreSQL{db: db}
}

// ReplaceByEmail wraps delete-then-insert in one transaction so two racing
// submissions for the same email serialize in the store: exactly one attempt
// survives, never both, never zero.
func (a AttemptPostgreSQL) ReplaceByEmail(ctx context.Context, attempt *models.Attempt) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_email = ?", attempt.UserEmail).Delete(&models.Attempt{}).Error; err != nil {
			return err
		}
		return tx.Create(attempt).Error
	})
}

func (a AttemptPostgreSQL) GetLatestByEmail(ctx context.Context, email string) (*models.Attempt, error) {
	var attempt models.Attempt
	if err := a.db.WithContext(ctx).
		Where("user_email = ?", email).
		Order("created_at DESC").
		First(&attempt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &attempt, nil
}

func (a AttemptPostgreSQL) List(ctx context.Context) ([]models.Attempt, error) {
	var attempts []models.Attempt

	// Timed attempts rank by speed; timeless ones go to the back, newest first.
	if err := a.db.WithContext(ctx).
		Order("duration_ms IS NULL").
		Order("duration_ms ASC").
		Order("created_at DESC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}

	return attempts, nil
}

func (a AttemptPostgreSQL) Delete(ctx context.Context, id uint) error {
	return a.db.WithContext(ctx).Delete(&models.Attempt{}, id).Error
}

func (a AttemptPostgreSQL) DeleteAll(ctx context.Context) error {
	return a.db.WithContext(ctx).Where("1 = 1").Delete(&models.Attempt{}).Error
}
