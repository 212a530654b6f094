package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"soundhub/internal/middleware"
	"soundhub/internal/model"
	"soundhub/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

type createOrderResponse struct {
	Message string `json:"message"`
	OrderID int64  `json:"order_id"`
}

type updateStatusRequest struct {
	OrderStatus string `json:"order_status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Create handles POST /api/orders/add requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed", h.logger)
		return
	}

	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	orderID, err := h.service.CreateOrder(r.Context(), &req)
	if err != nil {
		middleware.RecordOrderOperation("create", false)
		if status, message, ok := domainStatus(err); ok {
			writeError(w, r, status, message, h.logger)
			return
		}
		writeError(w, r, http.StatusInternalServerError, "Failed to create order", h.logger)
		return
	}

	middleware.RecordOrderOperation("create", true)
	writeJSON(w, http.StatusCreated, createOrderResponse{
		Message: "Order created successfully",
		OrderID: orderID,
	})
}

// List handles GET /api/orders requests.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed", h.logger)
		return
	}

	filter := model.OrderListFilter{
		Search: r.URL.Query().Get("search"),
		Status: r.URL.Query().Get("status"),
		Page:   queryInt(r, "page", 1),
		Limit:  queryInt(r, "limit", 10),
	}

	page, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "Failed to retrieve orders", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed", h.logger)
		return
	}

	orderID, ok := h.orderIDFromPath(w, r, strings.TrimPrefix(r.URL.Path, "/api/orders/"))
	if !ok {
		return
	}

	detail, err := h.service.GetByID(r.Context(), orderID)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "Failed to retrieve order", h.logger)
		return
	}

	if detail == nil {
		writeError(w, r, http.StatusNotFound, "Order not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// UpdateStatus handles PUT /api/orders/{id}/status requests.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed", h.logger)
		return
	}

	idStr := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/orders/"), "/status")
	orderID, ok := h.orderIDFromPath(w, r, idStr)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}
	if req.OrderStatus == "" {
		writeError(w, r, http.StatusBadRequest, "Order status is required", h.logger)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), orderID, req.OrderStatus); err != nil {
		middleware.RecordOrderOperation("update_status", false)
		if status, message, ok := domainStatus(err); ok {
			writeError(w, r, status, message, h.logger)
			return
		}
		writeError(w, r, http.StatusInternalServerError, "Failed to update order status", h.logger)
		return
	}

	middleware.RecordOrderOperation("update_status", true)
	writeJSON(w, http.StatusOK, messageResponse{Message: "Order status updated successfully"})
}

// Delete handles DELETE /api/orders/{id} requests.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed", h.logger)
		return
	}

	orderID, ok := h.orderIDFromPath(w, r, strings.TrimPrefix(r.URL.Path, "/api/orders/"))
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), orderID); err != nil {
		writeError(w, r, http.StatusInternalServerError, "Failed to delete order", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Order deleted successfully"})
}

// orderIDFromPath parses the numeric order ID segment, writing a 400 on
// failure.
func (h *OrderHandler) orderIDFromPath(w http.ResponseWriter, r *http.Request, idStr string) (int64, bool) {
	if idStr == "" {
		writeError(w, r, http.StatusBadRequest, "Order ID is required", h.logger)
		return 0, false
	}

	orderID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid order ID format", h.logger)
		return 0, false
	}

	return orderID, true
}

// queryInt parses a positive integer query parameter with a fallback.
func queryInt(r *http.Request, key string, fallback int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
