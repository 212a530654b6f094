package service

import (
	"context"
	"fmt"

	"soundhub/internal/auth"
	"soundhub/internal/model"
	"soundhub/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// authService implements AuthService for both user classes.
type authService struct {
	employees repository.EmployeeRepository
	customers repository.CustomerRepository
	tokens    *auth.TokenIssuer
	logger    zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	employees repository.EmployeeRepository,
	customers repository.CustomerRepository,
	tokens *auth.TokenIssuer,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		employees: employees,
		customers: customers,
		tokens:    tokens,
		logger:    logger.With().Str("service", "auth").Logger(),
	}
}

// RegisterEmployee creates a back-office account. Duplicate emails are
// rejected by a pre-check query.
func (s *authService) RegisterEmployee(ctx context.Context, name, email, password string) (int64, error) {
	existing, err := s.employees.GetByEmail(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("failed to register employee: %w", err)
	}
	if existing != nil {
		return 0, model.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("failed to register employee: %w", err)
	}

	id, err := s.employees.Insert(ctx, &model.Employee{
		FullName:     name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleStaff,
		Status:       model.EmployeeStatusActive,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to register employee: %w", err)
	}

	s.logger.Info().Int64("employee_id", id).Msg("employee registered")

	return id, nil
}

// LoginEmployee verifies credentials and returns the employee plus a signed
// token. Locked accounts are refused even with the right password.
func (s *authService) LoginEmployee(ctx context.Context, email, password string) (*model.Employee, string, error) {
	employee, err := s.employees.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to login employee: %w", err)
	}
	if employee == nil {
		return nil, "", model.ErrInvalidCredentials
	}

	if employee.Status != model.EmployeeStatusActive {
		return nil, "", model.ErrAccountLocked
	}

	if bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)) != nil {
		return nil, "", model.ErrInvalidCredentials
	}

	token, err := s.tokens.IssueEmployee(employee.ID, employee.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to login employee: %w", err)
	}

	return employee, token, nil
}

// RegisterCustomer creates a shopper account.
func (s *authService) RegisterCustomer(ctx context.Context, name, email, phone, password string) (*model.Customer, error) {
	existing, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to register customer: %w", err)
	}
	if existing != nil {
		return nil, model.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to register customer: %w", err)
	}

	customer := &model.Customer{
		FullName:     name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		Status:       model.CustomerStatusActive,
	}

	id, err := s.customers.Insert(ctx, customer)
	if err != nil {
		return nil, fmt.Errorf("failed to register customer: %w", err)
	}
	customer.ID = id

	s.logger.Info().Int64("customer_id", id).Msg("customer registered")

	return customer, nil
}

// LoginCustomer verifies credentials and returns the customer plus a signed
// token.
func (s *authService) LoginCustomer(ctx context.Context, email, password string) (*model.Customer, string, error) {
	customer, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to login customer: %w", err)
	}
	if customer == nil {
		return nil, "", model.ErrInvalidCredentials
	}

	if customer.Status != model.CustomerStatusActive {
		return nil, "", model.ErrAccountLocked
	}

	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)) != nil {
		return nil, "", model.ErrInvalidCredentials
	}

	token, err := s.tokens.IssueCustomer(customer.ID, customer.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to login customer: %w", err)
	}

	return customer, token, nil
}
