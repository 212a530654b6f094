package repository

import (
	"context"

	"soundhub/internal/model"

	"github.com/jackc/pgx/v5"
)

// CustomerRepository defines the interface for customer data access operations.
type CustomerRepository interface {
	// GetByEmail retrieves a customer by email. Returns nil when absent.
	GetByEmail(ctx context.Context, email string) (*model.Customer, error)

	// GetByID retrieves a customer by ID. Returns nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Customer, error)

	// ListByIDs retrieves multiple customers by their IDs.
	ListByIDs(ctx context.Context, ids []int64) ([]model.Customer, error)

	// Insert creates a customer outside any transaction (registration path).
	Insert(ctx context.Context, c *model.Customer) (int64, error)

	// Create inserts a customer within the provided transaction (checkout
	// auto-provisioning path).
	Create(ctx context.Context, tx pgx.Tx, c *model.Customer) (int64, error)

	// UpdateContact overwrites the stored name/phone/address within the
	// provided transaction.
	UpdateContact(ctx context.Context, tx pgx.Tx, id int64, name, phone, address string) error
}

// EmployeeRepository defines the interface for employee data access operations.
type EmployeeRepository interface {
	// GetByEmail retrieves an employee by email. Returns nil when absent.
	GetByEmail(ctx context.Context, email string) (*model.Employee, error)

	// Insert creates an employee.
	Insert(ctx context.Context, e *model.Employee) (int64, error)

	// FindAdminID returns the ID of any employee with the admin role, or 0
	// when none exists. Customer-sent chat messages resolve their receiver
	// through this (single shared admin-inbox model).
	FindAdminID(ctx context.Context) (int64, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a new order within the provided transaction and returns
	// its generated ID.
	Create(ctx context.Context, tx pgx.Tx, order *model.Order) (int64, error)

	// CreateItems inserts the order line snapshots within the provided
	// transaction.
	CreateItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items. The order
	// is nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Order, []model.OrderItem, error)

	// List retrieves a page of order summaries matching the filter, plus the
	// total match count.
	List(ctx context.Context, filter model.OrderListFilter) ([]model.OrderSummary, int, error)

	// UpdateStatus sets the order status. Returns false when no row matched.
	UpdateStatus(ctx context.Context, id int64, status string) (bool, error)

	// Delete removes an order.
	Delete(ctx context.Context, id int64) error
}

// VariantRepository defines the interface for variant data access operations.
type VariantRepository interface {
	// GetByID retrieves a variant within the provided transaction. Returns
	// nil when absent.
	GetByID(ctx context.Context, tx pgx.Tx, id int64) (*model.Variant, error)

	// DecrementStock conditionally subtracts quantity from a variant's stock
	// within the provided transaction. Returns false when the variant had
	// less stock than requested (no row updated).
	DecrementStock(ctx context.Context, tx pgx.Tx, id int64, quantity int) (bool, error)
}

// CouponRepository defines the interface for coupon data access operations.
type CouponRepository interface {
	// GetActiveByCode retrieves an active coupon with remaining uses within
	// the provided transaction. Returns nil when no such coupon exists.
	GetActiveByCode(ctx context.Context, tx pgx.Tx, code string) (*model.Coupon, error)

	// Redeem conditionally decrements the coupon's remaining-use counter
	// within the provided transaction. Returns false when the counter was
	// already exhausted.
	Redeem(ctx context.Context, tx pgx.Tx, id int64) (bool, error)

	// List retrieves a page of coupons plus the total count.
	List(ctx context.Context, page, limit int) ([]model.Coupon, int, error)

	// DeactivateExpired flips coupons with no remaining uses or a past end
	// date to inactive. Returns the number of rows updated.
	DeactivateExpired(ctx context.Context) (int64, error)
}

// NotificationRepository defines the interface for notification data access operations.
type NotificationRepository interface {
	// Insert persists a notification and returns its generated ID.
	Insert(ctx context.Context, n *model.Notification) (int64, error)

	// ListUnread retrieves unread notifications addressed to the receiver,
	// newest first.
	ListUnread(ctx context.Context, receiverID int64) ([]model.Notification, error)

	// MarkRead flags a notification as read.
	MarkRead(ctx context.Context, id int64) error
}

// MessageRepository defines the interface for chat message data access operations.
type MessageRepository interface {
	// Insert appends a chat message and returns its generated ID.
	Insert(ctx context.Context, m *model.Message) (int64, error)
}
