package service

import (
	"context"
	"testing"

	"soundhub/internal/auth"
	"soundhub/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockEmployeeRepository is a mock implementation of EmployeeRepository.
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) GetByEmail(ctx context.Context, email string) (*model.Employee, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Insert(ctx context.Context, e *model.Employee) (int64, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) FindAdminID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newAuthService(employees *MockEmployeeRepository, customers *MockCustomerRepository) AuthService {
	issuer := auth.NewTokenIssuer("test-secret")
	return NewAuthService(employees, customers, issuer, zerolog.Nop())
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_RegisterEmployee_Success(t *testing.T) {
	ctx := context.Background()
	employees := new(MockEmployeeRepository)
	customers := new(MockCustomerRepository)

	employees.On("GetByEmail", ctx, "staff@soundhub.local").Return(nil, nil)
	employees.On("Insert", ctx, mock.AnythingOfType("*model.Employee")).Return(int64(5), nil)

	id, err := newAuthService(employees, customers).RegisterEmployee(ctx, "Tran Thi B", "staff@soundhub.local", "hunter2")

	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	inserted := employees.Calls[1].Arguments.Get(1).(*model.Employee)
	assert.Equal(t, model.RoleStaff, inserted.Role)
	assert.Equal(t, model.EmployeeStatusActive, inserted.Status)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(inserted.PasswordHash), []byte("hunter2")))

	employees.AssertExpectations(t)
}

func TestAuthService_RegisterEmployee_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	employees := new(MockEmployeeRepository)
	customers := new(MockCustomerRepository)

	employees.On("GetByEmail", ctx, "staff@soundhub.local").Return(&model.Employee{ID: 1}, nil)

	_, err := newAuthService(employees, customers).RegisterEmployee(ctx, "Tran Thi B", "staff@soundhub.local", "hunter2")

	require.Error(t, err)
	assert.Equal(t, model.ErrEmailExists, err)
	employees.AssertNotCalled(t, "Insert")
}

func TestAuthService_LoginEmployee(t *testing.T) {
	ctx := context.Background()

	stored := &model.Employee{
		ID:           5,
		Email:        "staff@soundhub.local",
		PasswordHash: "", // filled per case
		Role:         model.RoleAdmin,
		Status:       model.EmployeeStatusActive,
	}

	tests := []struct {
		name        string
		employee    *model.Employee
		password    string
		expectedErr error
	}{
		{name: "Success", employee: stored, password: "hunter2"},
		{name: "Unknown email", employee: nil, password: "hunter2", expectedErr: model.ErrInvalidCredentials},
		{name: "Wrong password", employee: stored, password: "wrong", expectedErr: model.ErrInvalidCredentials},
		{
			name: "Locked account",
			employee: &model.Employee{
				ID: 6, Email: "staff@soundhub.local", Status: model.EmployeeStatusLocked,
			},
			password:    "hunter2",
			expectedErr: model.ErrAccountLocked,
		},
	}

	stored.PasswordHash = hashFor(t, "hunter2")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			employees := new(MockEmployeeRepository)
			customers := new(MockCustomerRepository)

			if tt.employee == nil {
				employees.On("GetByEmail", ctx, "staff@soundhub.local").Return(nil, nil)
			} else {
				employees.On("GetByEmail", ctx, "staff@soundhub.local").Return(tt.employee, nil)
			}

			employee, token, err := newAuthService(employees, customers).LoginEmployee(ctx, "staff@soundhub.local", tt.password)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.expectedErr, err)
				assert.Nil(t, employee)
				assert.Empty(t, token)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, employee)
			assert.NotEmpty(t, token)

			// The token must round-trip through the issuer with the admin role intact
			claims, err := auth.NewTokenIssuer("test-secret").Parse(token)
			require.NoError(t, err)
			assert.Equal(t, int64(5), claims.UserID)
			assert.True(t, claims.IsAdmin())
		})
	}
}

func TestAuthService_RegisterCustomer_Success(t *testing.T) {
	ctx := context.Background()
	employees := new(MockEmployeeRepository)
	customers := new(MockCustomerRepository)

	customers.On("GetByEmail", ctx, "a@example.com").Return(nil, nil)
	customers.On("Insert", ctx, mock.AnythingOfType("*model.Customer")).Return(int64(7), nil)

	customer, err := newAuthService(employees, customers).RegisterCustomer(ctx, "Nguyen Van A", "a@example.com", "0900000001", "hunter2")

	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.Equal(t, int64(7), customer.ID)
	assert.Equal(t, model.CustomerStatusActive, customer.Status)

	customers.AssertExpectations(t)
}

func TestAuthService_LoginCustomer_Success(t *testing.T) {
	ctx := context.Background()
	employees := new(MockEmployeeRepository)
	customers := new(MockCustomerRepository)

	stored := &model.Customer{
		ID:           7,
		Email:        "a@example.com",
		PasswordHash: hashFor(t, "hunter2"),
		Status:       model.CustomerStatusActive,
	}
	customers.On("GetByEmail", ctx, "a@example.com").Return(stored, nil)

	customer, token, err := newAuthService(employees, customers).LoginCustomer(ctx, "a@example.com", "hunter2")

	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.NotEmpty(t, token)

	claims, err := auth.NewTokenIssuer("test-secret").Parse(token)
	require.NoError(t, err)
	assert.Equal(t, auth.KindCustomer, claims.Kind)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.False(t, claims.IsAdmin())
}

func TestAuthService_LoginCustomer_WrongPassword(t *testing.T) {
	ctx := context.Background()
	employees := new(MockEmployeeRepository)
	customers := new(MockCustomerRepository)

	stored := &model.Customer{
		ID:           7,
		Email:        "a@example.com",
		PasswordHash: hashFor(t, "hunter2"),
		Status:       model.CustomerStatusActive,
	}
	customers.On("GetByEmail", ctx, "a@example.com").Return(stored, nil)

	customer, token, err := newAuthService(employees, customers).LoginCustomer(ctx, "a@example.com", "nope")

	require.Error(t, err)
	assert.Equal(t, model.ErrInvalidCredentials, err)
	assert.Nil(t, customer)
	assert.Empty(t, token)
}
