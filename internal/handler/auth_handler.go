package handler

import (
	"encoding/json"
	"net/http"

	"soundhub/internal/model"
	"soundhub/internal/service"

	"github.com/rs/zerolog"
)

// AuthHandler handles registration and login for employees and customers.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("handler", "auth").Logger(),
	}
}

type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type loginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    interface{} `json:"user"`
}

// RegisterEmployee handles POST /api/auth/register requests.
func (h *AuthHandler) RegisterEmployee(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed", h.logger)
		return
	}

	req, ok := h.decodeRegister(w, r)
	if !ok {
		return
	}

	id, err := h.service.RegisterEmployee(r.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		if status, message, ok := domainStatus(err); ok {
			writeError(w, r, status, message, h.logger)
			return
		}
		writeError(w, r, http.StatusInternalServerError, "Failed to register account", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{Message: "Account created successfully", ID: id})
}

// LoginEmployee handles POST /api/auth/login requests.
func (h *AuthHandler) LoginEmployee(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed", h.logger)
		return
	}

	req, ok := h.decodeLogin(w, r)
	if !ok {
		return
	}

	employee, token, err := h.service.LoginEmployee(r.Context(), req.Email, req.Password)
	if err != nil {
		if status, message, ok := domainStatus(err); ok {
			writeError(w, r, status, message, h.logger)
			return
		}
		writeError(w, r, http.StatusInternalServerError, "Failed to log in", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Message: "Logged in successfully",
		Token:   token,
		User: model.Employee{
			ID:       employee.ID,
			FullName: employee.FullName,
			Email:    employee.Email,
			Role:     employee.Role,
			Status:   employee.Status,
		},
	})
}

// RegisterCustomer handles POST /api/customers/register requests.
func (h *AuthHandler) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed", h.logger)
		return
	}

	req, ok := h.decodeRegister(w, r)
	if !ok {
		return
	}

	customer, err := h.service.RegisterCustomer(r.Context(), req.FullName, req.Email, req.Phone, req.Password)
	if err != nil {
		if status, message, ok := domainStatus(err); ok {
			writeError(w, r, status, message, h.logger)
			return
		}
		writeError(w, r, http.StatusInternalServerError, "Failed to register account", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{Message: "Account created successfully", ID: customer.ID})
}

// LoginCustomer handles POST /api/customers/login requests.
func (h *AuthHandler) LoginCustomer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed", h.logger)
		return
	}

	req, ok := h.decodeLogin(w, r)
	if !ok {
		return
	}

	customer, token, err := h.service.LoginCustomer(r.Context(), req.Email, req.Password)
	if err != nil {
		if status, message, ok := domainStatus(err); ok {
			writeError(w, r, status, message, h.logger)
			return
		}
		writeError(w, r, http.StatusInternalServerError, "Failed to log in", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Message: "Logged in successfully",
		Token:   token,
		User: model.Customer{
			ID:       customer.ID,
			FullName: customer.FullName,
			Email:    customer.Email,
			Phone:    customer.Phone,
			Status:   customer.Status,
		},
	})
}

func (h *AuthHandler) decodeRegister(w http.ResponseWriter, r *http.Request) (registerRequest, bool) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid request body", h.logger)
		return req, false
	}
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		writeError(w, r, http.StatusBadRequest, "Name, email and password are required", h.logger)
		return req, false
	}
	return req, true
}

func (h *AuthHandler) decodeLogin(w http.ResponseWriter, r *http.Request) (loginRequest, bool) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid request body", h.logger)
		return req, false
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, r, http.StatusBadRequest, "Email and password are required", h.logger)
		return req, false
	}
	return req, true
}
