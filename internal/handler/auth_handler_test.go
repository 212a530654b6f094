package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"soundhub/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAuthService is a mock implementation of AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) RegisterEmployee(ctx context.Context, name, email, password string) (int64, error) {
	args := m.Called(ctx, name, email, password)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuthService) LoginEmployee(ctx context.Context, email, password string) (*model.Employee, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*model.Employee), args.String(1), args.Error(2)
}

func (m *MockAuthService) RegisterCustomer(ctx context.Context, name, email, phone, password string) (*model.Customer, error) {
	args := m.Called(ctx, name, email, phone, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockAuthService) LoginCustomer(ctx context.Context, email, password string) (*model.Customer, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*model.Customer), args.String(1), args.Error(2)
}

func TestAuthHandler_RegisterEmployee(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		body           string
		mockReturn     int64
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			body:           `{"full_name": "Tran Thi B", "email": "staff@soundhub.local", "password": "hunter2"}`,
			mockReturn:     5,
			expectedStatus: http.StatusCreated,
			expectService:  true,
		},
		{
			name:           "Duplicate email",
			body:           `{"full_name": "Tran Thi B", "email": "staff@soundhub.local", "password": "hunter2"}`,
			mockError:      model.ErrEmailExists,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Missing fields",
			body:           `{"email": "staff@soundhub.local"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Invalid JSON",
			body:           `{nope`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockAuthService)
			handler := NewAuthHandler(mockService, logger)

			if tt.expectService {
				mockService.On("RegisterEmployee", mock.Anything, "Tran Thi B", "staff@soundhub.local", "hunter2").
					Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler.RegisterEmployee(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus == http.StatusCreated {
				var resp registerResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, int64(5), resp.ID)
			}
		})
	}
}

func TestAuthHandler_LoginEmployee(t *testing.T) {
	logger := zerolog.Nop()

	employee := &model.Employee{
		ID: 5, FullName: "Tran Thi B", Email: "staff@soundhub.local",
		Role: model.RoleAdmin, Status: model.EmployeeStatusActive,
	}

	tests := []struct {
		name           string
		mockEmployee   *model.Employee
		mockError      error
		expectedStatus int
	}{
		{name: "Success", mockEmployee: employee, expectedStatus: http.StatusOK},
		{name: "Bad credentials", mockError: model.ErrInvalidCredentials, expectedStatus: http.StatusUnauthorized},
		{name: "Locked account", mockError: model.ErrAccountLocked, expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockAuthService)
			handler := NewAuthHandler(mockService, logger)

			if tt.mockEmployee != nil {
				mockService.On("LoginEmployee", mock.Anything, "staff@soundhub.local", "hunter2").
					Return(tt.mockEmployee, "signed.jwt.token", nil)
			} else {
				mockService.On("LoginEmployee", mock.Anything, "staff@soundhub.local", "hunter2").
					Return(nil, "", tt.mockError)
			}

			body := `{"email": "staff@soundhub.local", "password": "hunter2"}`
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(body))
			rec := httptest.NewRecorder()

			handler.LoginEmployee(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus == http.StatusOK {
				var resp struct {
					Token string         `json:"token"`
					User  model.Employee `json:"user"`
				}
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, "signed.jwt.token", resp.Token)
				assert.Equal(t, int64(5), resp.User.ID)

				// Password hash never leaves the server
				assert.NotContains(t, rec.Body.String(), "password_hash")
			}
		})
	}
}

func TestAuthHandler_RegisterCustomer(t *testing.T) {
	logger := zerolog.Nop()
	mockService := new(MockAuthService)
	handler := NewAuthHandler(mockService, logger)

	customer := &model.Customer{ID: 7, FullName: "Nguyen Van A", Email: "a@example.com"}
	mockService.On("RegisterCustomer", mock.Anything, "Nguyen Van A", "a@example.com", "0900000001", "hunter2").
		Return(customer, nil)

	body := `{"full_name": "Nguyen Van A", "email": "a@example.com", "phone": "0900000001", "password": "hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/api/customers/register", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	handler.RegisterCustomer(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp registerResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(7), resp.ID)
}

func TestAuthHandler_LoginCustomer(t *testing.T) {
	logger := zerolog.Nop()
	mockService := new(MockAuthService)
	handler := NewAuthHandler(mockService, logger)

	customer := &model.Customer{ID: 7, Email: "a@example.com", Status: model.CustomerStatusActive}
	mockService.On("LoginCustomer", mock.Anything, "a@example.com", "hunter2").
		Return(customer, "signed.jwt.token", nil)

	body := `{"email": "a@example.com", "password": "hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/api/customers/login", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	handler.LoginCustomer(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "signed.jwt.token", resp.Token)
}
