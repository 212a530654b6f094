package service

import (
	"context"
	"errors"
	"testing"

	"soundhub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, tx pgx.Tx, order *model.Order) (int64, error) {
	args := m.Called(ctx, tx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CreateItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	args := m.Called(ctx, tx, items)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*model.Order, []model.OrderItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.Order), args.Get(1).([]model.OrderItem), args.Error(2)
}

func (m *MockOrderRepository) List(ctx context.Context, filter model.OrderListFilter) ([]model.OrderSummary, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.OrderSummary), args.Int(1), args.Error(2)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id int64, status string) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCustomerRepository is a mock implementation of CustomerRepository.
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListByIDs(ctx context.Context, ids []int64) ([]model.Customer, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Insert(ctx context.Context, c *model.Customer) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Create(ctx context.Context, tx pgx.Tx, c *model.Customer) (int64, error) {
	args := m.Called(ctx, tx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) UpdateContact(ctx context.Context, tx pgx.Tx, id int64, name, phone, address string) error {
	args := m.Called(ctx, tx, id, name, phone, address)
	return args.Error(0)
}

// MockVariantRepository is a mock implementation of VariantRepository.
type MockVariantRepository struct {
	mock.Mock
}

func (m *MockVariantRepository) GetByID(ctx context.Context, tx pgx.Tx, id int64) (*model.Variant, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Variant), args.Error(1)
}

func (m *MockVariantRepository) DecrementStock(ctx context.Context, tx pgx.Tx, id int64, quantity int) (bool, error) {
	args := m.Called(ctx, tx, id, quantity)
	return args.Bool(0), args.Error(1)
}

// MockCouponRepository is a mock implementation of CouponRepository.
type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) GetActiveByCode(ctx context.Context, tx pgx.Tx, code string) (*model.Coupon, error) {
	args := m.Called(ctx, tx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockCouponRepository) Redeem(ctx context.Context, tx pgx.Tx, id int64) (bool, error) {
	args := m.Called(ctx, tx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCouponRepository) List(ctx context.Context, page, limit int) ([]model.Coupon, int, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Coupon), args.Int(1), args.Error(2)
}

func (m *MockCouponRepository) DeactivateExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockOrderNotifier is a mock implementation of OrderNotifier.
type MockOrderNotifier struct {
	mock.Mock
}

func (m *MockOrderNotifier) NotifyNewOrder(ctx context.Context, orderID, customerID int64) {
	m.Called(ctx, orderID, customerID)
}

func (m *MockOrderNotifier) NotifyOrderStatusChanged(ctx context.Context, orderID, customerID int64, status string) {
	m.Called(ctx, orderID, customerID, status)
}

// MockMailer is a mock implementation of mail.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(to, subject, htmlBody string) error {
	args := m.Called(to, subject, htmlBody)
	return args.Error(0)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
	committed  bool
	rolledBack bool
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	m.committed = true
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	m.rolledBack = true
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }

type orderServiceMocks struct {
	orderRepo    *MockOrderRepository
	customerRepo *MockCustomerRepository
	variantRepo  *MockVariantRepository
	couponRepo   *MockCouponRepository
	notifier     *MockOrderNotifier
	mailer       *MockMailer
	tx           *MockTx
}

func newOrderServiceMocks() *orderServiceMocks {
	return &orderServiceMocks{
		orderRepo:    new(MockOrderRepository),
		customerRepo: new(MockCustomerRepository),
		variantRepo:  new(MockVariantRepository),
		couponRepo:   new(MockCouponRepository),
		notifier:     new(MockOrderNotifier),
		mailer:       new(MockMailer),
		tx:           new(MockTx),
	}
}

func (m *orderServiceMocks) service() OrderService {
	return NewOrderService(m.orderRepo, m.customerRepo, m.variantRepo, m.couponRepo, m.notifier, m.mailer, zerolog.Nop())
}

func variantID(id int64) *int64 { return &id }

func baseOrderRequest() *model.OrderRequest {
	return &model.OrderRequest{
		Customer: model.CustomerContact{
			Name:    "Nguyen Van A",
			Email:   "a@example.com",
			Phone:   "0900000001",
			Address: "1 Le Loi, HCMC",
		},
		Items: []model.OrderItemRequest{
			{ProductID: 10, VariantID: variantID(100), ProductName: "Speaker X", Price: 500000, Quantity: 2},
		},
		SubTotal:      1000000,
		ShippingFee:   30000,
		Total:         1030000,
		PaymentMethod: "cod",
	}
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	ctx := context.Background()
	m := newOrderServiceMocks()
	req := baseOrderRequest()

	existing := &model.Customer{ID: 7, Email: "a@example.com"}
	variant := &model.Variant{
		ID: 100, ProductID: 10, NameVariant: "Speaker X Black",
		Color: "black", Power: "60W", ConnectionType: "bluetooth", HasMicrophone: true,
		Price: 500000, Stock: 5,
	}

	m.orderRepo.On("BeginTx", ctx).Return(m.tx, nil)
	m.customerRepo.On("GetByEmail", ctx, "a@example.com").Return(existing, nil)
	m.customerRepo.On("UpdateContact", ctx, m.tx, int64(7), "Nguyen Van A", "0900000001", "1 Le Loi, HCMC").Return(nil)
	m.orderRepo.On("Create", ctx, m.tx, mock.AnythingOfType("*model.Order")).Return(int64(42), nil)
	m.variantRepo.On("GetByID", ctx, m.tx, int64(100)).Return(variant, nil)
	m.variantRepo.On("DecrementStock", ctx, m.tx, int64(100), 2).Return(true, nil)
	m.orderRepo.On("CreateItems", ctx, m.tx, mock.AnythingOfType("[]model.OrderItem")).Return(nil)
	m.tx.On("Commit", ctx).Return(nil)
	m.mailer.On("Send", "a@example.com", mock.Anything, mock.Anything).Return(nil)
	m.notifier.On("NotifyNewOrder", ctx, int64(42), int64(7)).Return()

	orderID, err := m.service().CreateOrder(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, int64(42), orderID)
	assert.True(t, m.tx.committed)
	assert.False(t, m.tx.rolledBack)

	// Snapshot fields come from the variant, not the cart line
	createdItems := m.orderRepo.Calls[2].Arguments.Get(2).([]model.OrderItem)
	require.Len(t, createdItems, 1)
	assert.Equal(t, "Speaker X Black", createdItems[0].ProductName)
	assert.Equal(t, "black", createdItems[0].Color)
	assert.Equal(t, float64(1000000), createdItems[0].Total)

	m.orderRepo.AssertExpectations(t)
	m.customerRepo.AssertExpectations(t)
	m.variantRepo.AssertExpectations(t)
	m.notifier.AssertExpectations(t)
	m.tx.AssertExpectations(t)
}

func TestOrderService_CreateOrder_EmptyCart(t *testing.T) {
	ctx := context.Background()
	m := newOrderServiceMocks()

	tests := []struct {
		name string
		req  *model.OrderRequest
	}{
		{name: "Nil request", req: nil},
		{name: "No items", req: &model.OrderRequest{Items: []model.OrderItemRequest{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderID, err := m.service().CreateOrder(ctx, tt.req)
			require.Error(t, err)
			assert.Equal(t, model.ErrEmptyCart, err)
			assert.Zero(t, orderID)
		})
	}

	m.orderRepo.AssertNotCalled(t, "BeginTx")
}

func TestOrderService_CreateOrder_InvalidQuantity(t *testing.T) {
	ctx := context.Background()
	m := newOrderServiceMocks()

	req := baseOrderRequest()
	req.Items[0].Quantity = 0

	orderID, err := m.service().CreateOrder(ctx, req)

	require.Error(t, err)
	assert.Equal(t, model.ErrInvalidQuantity, err)
	assert.Zero(t, orderID)
	m.orderRepo.AssertNotCalled(t, "BeginTx")
}

func TestOrderService_CreateOrder_NewCustomerProvisioned(t *testing.T) {
	ctx := context.Background()
	m := newOrderServiceMocks()
	req := baseOrderRequest()

	variant := &model.Variant{ID: 100, ProductID: 10, NameVariant: "Speaker X Black", Stock: 5}

	m.orderRepo.On("BeginTx", ctx).Return(m.tx, nil)
	m.customerRepo.On("GetByEmail", ctx, "a@example.com").Return(nil, nil)
	m.customerRepo.On("Create", ctx, m.tx, mock.AnythingOfType("*model.Customer")).Return(int64(13), nil)
	m.orderRepo.On("Create", ctx, m.tx, mock.AnythingOfType("*model.Order")).Return(int64(42), nil)
	m.variantRepo.On("GetByID", ctx, m.tx, int64(100)).Return(variant, nil)
	m.variantRepo.On("DecrementStock", ctx, m.tx, int64(100), 2).Return(true, nil)
	m.orderRepo.On("CreateItems", ctx, m.tx, mock.AnythingOfType("[]model.OrderItem")).Return(nil)
	m.tx.On("Commit", ctx).Return(nil)
	m.mailer.On("Send", "a@example.com", mock.Anything, mock.Anything).Return(nil)
	m.notifier.On("NotifyNewOrder", ctx, int64(42), int64(13)).Return()

	orderID, err := m.service().CreateOrder(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, int64(42), orderID)

	created := m.customerRepo.Calls[1].Arguments.Get(2).(*model.Customer)
	assert.Equal(t, "a@example.com", created.Email)
	assert.NotEmpty(t, created.PasswordHash)
	assert.NotEqual(t, "a@example.com", created.PasswordHash)

	m.customerRepo.AssertNotCalled(t, "UpdateContact")
	m.customerRepo.AssertExpectations(t)
	m.mailer.AssertExpectations(t)
}

func TestOrderService_CreateOrder_CouponRecomputesDiscount(t *testing.T) {
	ctx := context.Background()
	m := newOrderServiceMocks()

	code := "SUMMER10"
	req := baseOrderRequest()
	req.CouponCode = &code
	// The client claims a wildly wrong discount; the stored coupon wins.
	req.Discount = 999999

	existing := &model.Customer{ID: 7, Email: "a@example.com"}
	coupon := &model.Coupon{ID: 3, Code: code, Type: model.CouponTypePercent, Value: 10, Quantity: 4}
	variant := &model.Variant{ID: 100, ProductID: 10, NameVariant: "Speaker X Black", Stock: 5}

	m.orderRepo.On("BeginTx", ctx).Return(m.tx, nil)
	m.customerRepo.On("GetByEmail", ctx, "a@example.com").Return(existing, nil)
	m.customerRepo.On("UpdateContact", ctx, m.tx, int64(7), mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.couponRepo.On("GetActiveByCode", ctx, m.tx, code).Return(coupon, nil)
	m.couponRepo.On("Redeem", ctx, m.tx, int64(3)).Return(true, nil)
	m.orderRepo.On("Create", ctx, m.tx, mock.AnythingOfType("*model.Order")).Return(int64(42), nil)
	m.variantRepo.On("GetByID", ctx, m.tx, int64(100)).Return(variant, nil)
	m.variantRepo.On("DecrementStock", ctx, m.tx, int64(100), 2).Return(true, nil)
	m.orderRepo.On("CreateItems", ctx, m.tx, mock.AnythingOfType("[]model.OrderItem")).Return(nil)
	m.tx.On("Commit", ctx).Return(nil)
	m.mailer.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.notifier.On("NotifyNewOrder", ctx, int64(42), int64(7)).Return()

	_, err := m.service().CreateOrder(ctx, req)
	require.NoError(t, err)

	created := m.orderRepo.Calls[1].Arguments.Get(2).(*model.Order)
	assert.Equal(t, float64(100000), created.DiscountAmount) // 10% of 1000000
	assert.Equal(t, req.Total, created.FinalAmount)

	m.couponRepo.AssertExpectations(t)
}

func TestOrderService_CreateOrder_UnknownCouponForcesZeroDiscount(t *testing.T) {
	ctx := context.Background()
	m := newOrderServiceMocks()

	code := "NOPE"
	req := baseOrderRequest()
	req.CouponCode = &code
	req.Discount = 50000

	existing := &model.Customer{ID: 7, Email: "a@example.com"}
	variant := &model.Variant{ID: 100, ProductID: 10, NameVariant: "Speaker X Black", Stock: 5}

	m.orderRepo.On("BeginTx", ctx).Return(m.tx, nil)
	m.customerRepo.On("GetByEmail", ctx, "a@example.com").Return(existing, nil)
	m.customerRepo.On("UpdateContact", ctx, m.tx, int64(7), mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.couponRepo.On("GetActiveByCode", ctx, m.tx, code).Return(nil, nil)
	m.orderRepo.On("Create", ctx, m.tx, mock.AnythingOfType("*model.Order")).Return(int64(42), nil)
	m.variantRepo.On("GetByID", ctx, m.tx, int64(100)).Return(variant, nil)
	m.variantRepo.On("DecrementStock", ctx, m.tx, int64(100), 2).Return(true, nil)
	m.orderRepo.On("CreateItems", ctx, m.tx, mock.AnythingOfType("[]model.OrderItem")).Return(nil)
	m.tx.On("Commit", ctx).Return(nil)
	m.mailer.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.notifier.On("NotifyNewOrder", ctx, int64(42), int64(7)).Return()

	_, err := m.service().CreateOrder(ctx, req)
	require.NoError(t, err)

	created := m.orderRepo.Calls[1].Arguments.Get(2).(*model.Order)
	assert.Zero(t, created.DiscountAmount)

	m.couponRepo.AssertNotCalled(t, "Redeem")
}

func TestOrderService_CreateOrder_CouponExhaustedRollsBack(t *testing.T) {
	ctx := context.Background()
	m := newOrderServiceMocks()

	code := "LAST1"
	req := baseOrderRequest()
	req.CouponCode = &code

	existing := &model.Customer{ID: 7, Email: "a@example.com"}
	coupon := &model.Coupon{ID: 3, Code: code, Type: model.CouponTypeFixed, Value: 20000, Quantity: 1}

	m.orderRepo.On("BeginTx", ctx).Return(m.tx, nil)
	m.customerRepo.On("GetByEmail", ctx, "a@example.com").Return(existing, nil)
	m.customerRepo.On("UpdateContact", ctx, m.tx, int64(7), mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.couponRepo.On("GetActiveByCode", ctx, m.tx, code).Return(coupon, nil)
	m.couponRepo.On("Redeem", ctx, m.tx, int64(3)).Return(false, nil)
	m.tx.On("Rollback", ctx).Return(nil)

	orderID, err := m.service().CreateOrder(ctx, req)

	require.Error(t, err)
	assert.Equal(t, model.ErrCouponExhausted, err)
	assert.Zero(t, orderID)
	assert.True(t, m.tx.rolledBack)
	assert.False(t, m.tx.committed)

	m.orderRepo.AssertNotCalled(t, "Create")
	m.notifier.AssertNotCalled(t, "NotifyNewOrder")
}

func TestOrderService_CreateOrder_InsufficientStockRollsBack(t *testing.T) {
	ctx := context.Background()
	m := newOrderServiceMocks()
	req := baseOrderRequest()

	existing := &model.Customer{ID: 7, Email: "a@example.com"}
	variant := &model.Variant{ID: 100, ProductID: 10, NameVariant: "Speaker X Black", Stock: 1}

	m.orderRepo.On("BeginTx", ctx).Return(m.tx, nil)
	m.customerRepo.On("GetByEmail", ctx, "a@example.com").Return(existing, nil)
	m.customerRepo.On("UpdateContact", ctx, m.tx, int64(7), mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.orderRepo.On("Create", ctx, m.tx, mock.AnythingOfType("*model.Order")).Return(int64(42), nil)
	m.variantRepo.On("GetByID", ctx, m.tx, int64(100)).Return(variant, nil)
	m.variantRepo.On("DecrementStock", ctx, m.tx, int64(100), 2).Return(false, nil)
	m.tx.On("Rollback", ctx).Return(nil)

	orderID, err := m.service().CreateOrder(ctx, req)

	require.Error(t, err)
	assert.Zero(t, orderID)
	assert.True(t, m.tx.rolledBack)

	var domainErr *model.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, model.ErrCodeInsufficientStock, domainErr.Code)
	assert.Contains(t, domainErr.Message, "Speaker X Black")

	m.orderRepo.AssertNotCalled(t, "CreateItems")
	m.notifier.AssertNotCalled(t, "NotifyNewOrder")
}

func TestOrderService_CreateOrder_PseudoVariantSkipsStock(t *testing.T) {
	ctx := context.Background()
	m := newOrderServiceMocks()

	req := baseOrderRequest()
	req.Items = []model.OrderItemRequest{
		{ProductID: 10, VariantID: nil, ProductName: "Legacy Speaker", Price: 100, Quantity: 2},
	}
	req.SubTotal = 200
	req.Total = 200

	existing := &model.Customer{ID: 7, Email: "a@example.com"}

	m.orderRepo.On("BeginTx", ctx).Return(m.tx, nil)
	m.customerRepo.On("GetByEmail", ctx, "a@example.com").Return(existing, nil)
	m.customerRepo.On("UpdateContact", ctx, m.tx, int64(7), mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.orderRepo.On("Create", ctx, m.tx, mock.AnythingOfType("*model.Order")).Return(int64(42), nil)
	m.orderRepo.On("CreateItems", ctx, m.tx, mock.AnythingOfType("[]model.OrderItem")).Return(nil)
	m.tx.On("Commit", ctx).Return(nil)
	m.mailer.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.notifier.On("NotifyNewOrder", ctx, int64(42), int64(7)).Return()

	orderID, err := m.service().CreateOrder(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, int64(42), orderID)

	items := m.orderRepo.Calls[2].Arguments.Get(2).([]model.OrderItem)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].VariantID)
	assert.Equal(t, "Legacy Speaker", items[0].ProductName)
	assert.Equal(t, "-", items[0].Color)

	m.variantRepo.AssertNotCalled(t, "GetByID")
	m.variantRepo.AssertNotCalled(t, "DecrementStock")
}

func TestOrderService_CreateOrder_EmailFailureDoesNotFailOrder(t *testing.T) {
	ctx := context.Background()
	m := newOrderServiceMocks()
	req := baseOrderRequest()

	existing := &model.Customer{ID: 7, Email: "a@example.com"}
	variant := &model.Variant{ID: 100, ProductID: 10, NameVariant: "Speaker X Black", Stock: 5}

	m.orderRepo.On("BeginTx", ctx).Return(m.tx, nil)
	m.customerRepo.On("GetByEmail", ctx, "a@example.com").Return(existing, nil)
	m.customerRepo.On("UpdateContact", ctx, m.tx, int64(7), mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.orderRepo.On("Create", ctx, m.tx, mock.AnythingOfType("*model.Order")).Return(int64(42), nil)
	m.variantRepo.On("GetByID", ctx, m.tx, int64(100)).Return(variant, nil)
	m.variantRepo.On("DecrementStock", ctx, m.tx, int64(100), 2).Return(true, nil)
	m.orderRepo.On("CreateItems", ctx, m.tx, mock.AnythingOfType("[]model.OrderItem")).Return(nil)
	m.tx.On("Commit", ctx).Return(nil)
	m.mailer.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	m.notifier.On("NotifyNewOrder", ctx, int64(42), int64(7)).Return()

	orderID, err := m.service().CreateOrder(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, int64(42), orderID)
	m.notifier.AssertExpectations(t)
}

func TestOrderService_GetByID(t *testing.T) {
	ctx := context.Background()
	m := newOrderServiceMocks()

	order := &model.Order{ID: 42, CustomerID: 7, OrderStatus: model.OrderStatusPending}
	items := []model.OrderItem{{ID: 1, OrderID: 42}}

	m.orderRepo.On("GetByID", ctx, int64(42)).Return(order, items, nil)

	detail, err := m.service().GetByID(ctx, 42)

	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, int64(42), detail.Order.ID)
	assert.Len(t, detail.Items, 1)
}

func TestOrderService_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	m := newOrderServiceMocks()

	m.orderRepo.On("GetByID", ctx, int64(99)).Return(nil, nil, nil)

	detail, err := m.service().GetByID(ctx, 99)

	require.NoError(t, err)
	assert.Nil(t, detail)
}

func TestOrderService_List(t *testing.T) {
	ctx := context.Background()
	m := newOrderServiceMocks()

	filter := model.OrderListFilter{Page: 2, Limit: 10, Status: model.OrderStatusPending}
	summaries := []model.OrderSummary{{ID: 11}, {ID: 12}}

	m.orderRepo.On("List", ctx, filter).Return(summaries, 25, nil)

	page, err := m.service().List(ctx, filter)

	require.NoError(t, err)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 25, page.TotalOrders)
	assert.Len(t, page.Data, 2)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	m := newOrderServiceMocks()

	order := &model.Order{ID: 42, CustomerID: 7}

	m.orderRepo.On("UpdateStatus", ctx, int64(42), model.OrderStatusShipped).Return(true, nil)
	m.orderRepo.On("GetByID", ctx, int64(42)).Return(order, []model.OrderItem{}, nil)
	m.notifier.On("NotifyOrderStatusChanged", ctx, int64(42), int64(7), model.OrderStatusShipped).Return()

	err := m.service().UpdateStatus(ctx, 42, model.OrderStatusShipped)

	require.NoError(t, err)
	m.notifier.AssertExpectations(t)
}

func TestOrderService_UpdateStatus_NotFound(t *testing.T) {
	ctx := context.Background()
	m := newOrderServiceMocks()

	m.orderRepo.On("UpdateStatus", ctx, int64(99), model.OrderStatusShipped).Return(false, nil)

	err := m.service().UpdateStatus(ctx, 99, model.OrderStatusShipped)

	require.Error(t, err)
	assert.Equal(t, model.ErrOrderNotFound, err)
	m.notifier.AssertNotCalled(t, "NotifyOrderStatusChanged")
}

func TestOrderService_UpdateStatus_PushLossTolerated(t *testing.T) {
	ctx := context.Background()
	m := newOrderServiceMocks()

	m.orderRepo.On("UpdateStatus", ctx, int64(42), model.OrderStatusShipped).Return(true, nil)
	m.orderRepo.On("GetByID", ctx, int64(42)).Return(nil, nil, errors.New("connection reset"))

	err := m.service().UpdateStatus(ctx, 42, model.OrderStatusShipped)

	require.NoError(t, err)
	m.notifier.AssertNotCalled(t, "NotifyOrderStatusChanged")
}

func TestOrderService_Delete(t *testing.T) {
	ctx := context.Background()
	m := newOrderServiceMocks()

	m.orderRepo.On("Delete", ctx, int64(42)).Return(nil)

	err := m.service().Delete(ctx, 42)
	require.NoError(t, err)
	m.orderRepo.AssertExpectations(t)
}
