package service

import (
	"context"

	"soundhub/internal/model"
)

// OrderService defines operations for order management.
type OrderService interface {
	// CreateOrder runs the checkout workflow and returns the new order ID.
	CreateOrder(ctx context.Context, req *model.OrderRequest) (int64, error)

	// GetByID retrieves an order with its line items. Returns nil when absent.
	GetByID(ctx context.Context, id int64) (*model.OrderDetail, error)

	// List retrieves a filtered page of order summaries.
	List(ctx context.Context, filter model.OrderListFilter) (*model.OrderPage, error)

	// UpdateStatus sets an order's status and notifies the customer.
	UpdateStatus(ctx context.Context, id int64, status string) error

	// Delete removes an order.
	Delete(ctx context.Context, id int64) error
}

// OrderNotifier is the slice of the realtime layer the order workflow needs.
// Calls are fire-and-forget; the order stands regardless of push outcome.
type OrderNotifier interface {
	NotifyNewOrder(ctx context.Context, orderID, customerID int64)
	NotifyOrderStatusChanged(ctx context.Context, orderID, customerID int64, status string)
}

// AuthService defines login and registration for both user classes.
type AuthService interface {
	// RegisterEmployee creates a back-office account.
	RegisterEmployee(ctx context.Context, name, email, password string) (int64, error)

	// LoginEmployee verifies credentials and returns the employee plus a
	// signed token.
	LoginEmployee(ctx context.Context, email, password string) (*model.Employee, string, error)

	// RegisterCustomer creates a shopper account.
	RegisterCustomer(ctx context.Context, name, email, phone, password string) (*model.Customer, error)

	// LoginCustomer verifies credentials and returns the customer plus a
	// signed token.
	LoginCustomer(ctx context.Context, email, password string) (*model.Customer, string, error)
}

// CouponService defines coupon listing with lazy expiry.
type CouponService interface {
	// List retires exhausted/expired coupons, then returns a page.
	List(ctx context.Context, page, limit int) (*model.CouponPage, error)
}
