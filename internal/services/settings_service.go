package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/quizdesk/quiz-service/internal/cache"
	"github.com/quizdesk/quiz-service/internal/models"
	"github.com/quizdesk/quiz-service/internal/repositories"
)

// SettingsService manages the singleton application settings row.
type SettingsService interface {
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, appName string) (*models.Settings, error)
}

type settingsService struct {
	repo   repositories.Repository
	cache  cache.CacheService
	logger *slog.Logger
}

func NewSettingsService(repo repositories.Repository, cacheService cache.CacheService, logger *slog.Logger) SettingsService {
	return &settingsService{
		repo:   repo,
		cache:  cacheService,
		logger: logger,
	}
}

func (s *settingsService) Get(ctx context.Context) (*models.Settings, error) {
	var cached models.Settings
	if err := s.cache.Get(ctx, cache.SettingsKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Settings cache read failed", "error", err)
	}

	settings, err := s.repo.Settings().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	if settings == nil {
		settings = &models.Settings{ID: models.SettingsID, AppName: models.DefaultAppName}
	}

	if err := s.cache.Set(ctx, cache.SettingsKey, settings, cache.DefaultTTL); err != nil {
		s.logger.Warn("Settings cache write failed", "error", err)
	}

	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, appName string) (*models.Settings, error) {
	if appName == "" {
		return nil, NewValidationError("appName", "is required", appName)
	}

	if err := s.repo.Settings().Upsert(ctx, appName); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	if err := s.cache.Delete(ctx, cache.SettingsKey); err != nil {
		s.logger.Warn("Settings cache invalidation failed", "error", err)
	}

	s.logger.Info("Settings updated", "app_name", appName)
	return &models.Settings{ID: models.SettingsID, AppName: appName}, nil
}
