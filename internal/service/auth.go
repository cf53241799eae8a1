package service

import (
	"context"
	"errors"

	"petreserve-backend/internal/domain"
	"petreserve-backend/internal/repository"
	"petreserve-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type authService struct {
	staffRepo repository.StaffRepository
	tokens    security.TokenManager
}

func NewAuthService(staffRepo repository.StaffRepository, tokens security.TokenManager) AuthService {
	return &authService{staffRepo: staffRepo, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.Staff, error) {
	staff, err := s.staffRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.tokens.GenerateToken(staff)
	if err != nil {
		return "", nil, err
	}
	return token, staff, nil
}
