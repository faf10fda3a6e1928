package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/hisably/pos-api/internal/domain/repository"
	"github.com/hisably/pos-api/pkg/apperror"
	"github.com/hisably/pos-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// AuthService handles authentication and token management
type AuthService struct {
	employeeRepo repository.EmployeeRepository
	jwtManager   *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(employeeRepo repository.EmployeeRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		employeeRepo: employeeRepo,
		jwtManager:   jwtManager,
	}
}

// TokenPair holds a freshly issued access and refresh token
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResult is returned on a successful login
type LoginResult struct {
	Employee *entity.Employee `json:"employee"`
	Tokens   TokenPair        `json:"tokens"`
}

// Login verifies the credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	employee, err := s.employeeRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.ErrInvalidCredentials
	}
	if !employee.IsActive {
		return nil, apperror.ErrForbidden
	}
	if !utils.CheckPasswordHash(password, employee.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(employee)
	if err != nil {
		return nil, err
	}

	if err := s.employeeRepo.UpdateLastLogin(ctx, employee.ID); err != nil {
		logrus.WithError(err).Warn("failed to record last login")
	}

	logrus.WithField("username", employee.Username).Info("employee logged in")

	return &LoginResult{Employee: employee, Tokens: *tokens}, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	employeeID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil || !employee.IsActive {
		return nil, apperror.ErrUnauthorized
	}

	return s.issueTokens(employee)
}

// ChangePassword verifies the current password and replaces it
func (s *AuthService) ChangePassword(ctx context.Context, employeeID uuid.UUID, current, next string) error {
	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if employee == nil {
		return apperror.NewNotFoundError("Employee")
	}
	if !utils.CheckPasswordHash(current, employee.Password) {
		return apperror.ErrInvalidCredentials
	}
	if len(next) < 8 {
		return apperror.NewBadRequestError("Password must be at least 8 characters")
	}

	hashed, err := utils.HashPassword(next)
	if err != nil {
		return err
	}
	employee.Password = hashed

	return s.employeeRepo.Update(ctx, employee)
}

// Me returns the employee behind an access token's subject
func (s *AuthService) Me(ctx context.Context, employeeID uuid.UUID) (*entity.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.ErrUnauthorized
	}
	return employee, nil
}

func (s *AuthService) issueTokens(employee *entity.Employee) (*TokenPair, error) {
	access, err := s.jwtManager.GenerateAccessToken(employee.ID, employee.Username, employee.Role, employee.StoreID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(employee.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
