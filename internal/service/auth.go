package service

import (
	"context"
	"errors"

	"rental-ops-backend/internal/domain"
	"rental-ops-backend/internal/logger"
	"rental-ops-backend/internal/repository"
	"rental-ops-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	staffRepo repository.StaffRepository
	tokens    security.TokenManager
}

func NewAuthService(staffRepo repository.StaffRepository, tokens security.TokenManager) AuthService {
	return &authService{
		staffRepo: staffRepo,
		tokens:    tokens,
	}
}

// Login checks the staff member's password and issues an access token.
// Unknown emails and wrong passwords return the same error.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.Staff, error) {
	logger.EnterMethod("authService.Login")

	staff, err := s.staffRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err = ErrInvalidCredentials
		}
		logger.ExitMethodWithError("authService.Login", err)
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(password)); err != nil {
		logger.ExitMethodWithError("authService.Login", ErrInvalidCredentials, "staffID", staff.ID)
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(staff.ID, staff.Email, staff.Role)
	if err != nil {
		logger.ExitMethodWithError("authService.Login", err, "staffID", staff.ID)
		return "", nil, err
	}

	logger.ExitMethod("authService.Login", "staffID", staff.ID, "role", staff.Role)
	return token, staff, nil
}
