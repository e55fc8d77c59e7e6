package services

import (
	"log/slog"
)

// AuthService gates the admin surface behind a shared password. There are no
// sessions or tokens; the client re-sends the password check on demand.
type AuthService interface {
	Login(password string) error
}

type authService struct {
	adminPassword string
	logger        *slog.Logger
}

func NewAuthService(adminPassword string, logger *slog.Logger) AuthService {
	return &authService{
		adminPassword: adminPassword,
		logger:        logger,
	}
}

func (s *authService) Login(password string) error {
	if password != s.adminPassword {
		s.logger.Warn("Admin login rejected")
		return ErrInvalidCredentials
	}
	return nil
}
