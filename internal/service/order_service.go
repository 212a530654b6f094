package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"soundhub/internal/mail"
	"soundhub/internal/model"
	"soundhub/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	variantRepo  repository.VariantRepository
	couponRepo   repository.CouponRepository
	notifier     OrderNotifier
	mailer       mail.Mailer
	logger       zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	variantRepo repository.VariantRepository,
	couponRepo repository.CouponRepository,
	notifier OrderNotifier,
	mailer mail.Mailer,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		variantRepo:  variantRepo,
		couponRepo:   couponRepo,
		notifier:     notifier,
		mailer:       mailer,
		logger:       logger.With().Str("service", "order").Logger(),
	}
}

// CreateOrder runs the checkout workflow: resolve or provision the customer,
// redeem the coupon, persist the order with its line snapshots, and reserve
// stock per line. Everything up to the commit runs in one transaction; a
// failed stock or coupon decrement rolls the whole order back. The receipt
// email and the admin notification happen after the commit and never fail
// the request.
func (s *orderService) CreateOrder(ctx context.Context, req *model.OrderRequest) (int64, error) {
	if err := s.validateOrderRequest(req); err != nil {
		return 0, err
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return 0, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	// Resolve the customer by email. A repeat guest checkout overwrites the
	// stored profile with whatever the cart carried; a first-time email gets
	// an account with a generated password, emailed below.
	var customerID int64
	var plainPassword string

	existing, err := s.customerRepo.GetByEmail(ctx, req.Customer.Email)
	if err != nil {
		return 0, fmt.Errorf("failed to create order: %w", err)
	}

	if existing != nil {
		customerID = existing.ID
		if err = s.customerRepo.UpdateContact(ctx, tx, customerID,
			req.Customer.Name, req.Customer.Phone, req.Customer.Address); err != nil {
			return 0, fmt.Errorf("failed to create order: %w", err)
		}
	} else {
		plainPassword, err = generatePassword()
		if err != nil {
			return 0, fmt.Errorf("failed to create order: %w", err)
		}

		var hash []byte
		hash, err = bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
		if err != nil {
			return 0, fmt.Errorf("failed to create order: %w", err)
		}

		customerID, err = s.customerRepo.Create(ctx, tx, &model.Customer{
			FullName:     req.Customer.Name,
			Email:        req.Customer.Email,
			Phone:        req.Customer.Phone,
			Address:      req.Customer.Address,
			PasswordHash: string(hash),
			Status:       model.CustomerStatusActive,
		})
		if err != nil {
			return 0, fmt.Errorf("failed to create order: %w", err)
		}

		s.logger.Info().
			Int64("customer_id", customerID).
			Msg("provisioned customer during checkout")
	}

	// Recompute the discount server-side. An invalid or exhausted code forces
	// the discount to zero no matter what the client claimed.
	var discount float64
	if req.CouponCode != nil && *req.CouponCode != "" {
		var coupon *model.Coupon
		coupon, err = s.couponRepo.GetActiveByCode(ctx, tx, *req.CouponCode)
		if err != nil {
			return 0, fmt.Errorf("failed to create order: %w", err)
		}

		if coupon != nil {
			discount = coupon.DiscountFor(req.SubTotal)

			var redeemed bool
			redeemed, err = s.couponRepo.Redeem(ctx, tx, coupon.ID)
			if err != nil {
				return 0, fmt.Errorf("failed to create order: %w", err)
			}
			if !redeemed {
				err = model.ErrCouponExhausted
				return 0, err
			}

			s.logger.Debug().
				Str("coupon_code", *req.CouponCode).
				Float64("discount", discount).
				Msg("coupon applied")
		} else {
			s.logger.Warn().
				Str("coupon_code", *req.CouponCode).
				Msg("invalid coupon code, forcing discount to zero")
		}
	}

	order := &model.Order{
		CustomerID:     customerID,
		FullName:       req.Customer.Name,
		Email:          req.Customer.Email,
		Phone:          req.Customer.Phone,
		Address:        req.Customer.Address,
		TotalAmount:    req.SubTotal,
		DiscountAmount: discount,
		FinalAmount:    req.Total,
		PaymentMethod:  req.PaymentMethod,
		OrderStatus:    model.OrderStatusPending,
		CouponCode:     req.CouponCode,
		Note:           req.Note,
	}

	var orderID int64
	orderID, err = s.orderRepo.Create(ctx, tx, order)
	if err != nil {
		return 0, fmt.Errorf("failed to create order: %w", err)
	}

	var items []model.OrderItem
	items, err = s.buildItems(ctx, tx, orderID, req.Items)
	if err != nil {
		return 0, err
	}

	if err = s.orderRepo.CreateItems(ctx, tx, items); err != nil {
		return 0, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to commit transaction")
		return 0, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Int64("order_id", orderID).
		Int64("customer_id", customerID).
		Int("item_count", len(items)).
		Msg("order created successfully")

	s.sendReceipt(req, discount, plainPassword)
	s.notifier.NotifyNewOrder(ctx, orderID, customerID)

	return orderID, nil
}

// buildItems reserves stock and builds the line snapshots. A line whose
// variant exists snapshots the variant's fields and decrements its stock
// conditionally; a line with no matching variant is snapshotted from its own
// fields and skips the stock check entirely.
func (s *orderService) buildItems(ctx context.Context, tx pgx.Tx, orderID int64, lines []model.OrderItemRequest) ([]model.OrderItem, error) {
	items := make([]model.OrderItem, 0, len(lines))

	for _, line := range lines {
		var variant *model.Variant
		if line.VariantID != nil {
			v, err := s.variantRepo.GetByID(ctx, tx, *line.VariantID)
			if err != nil {
				return nil, fmt.Errorf("failed to create order items: %w", err)
			}
			variant = v
		}

		item := model.OrderItem{
			OrderID:  orderID,
			Price:    line.Price,
			Quantity: line.Quantity,
			Total:    line.Price * float64(line.Quantity),
		}

		if variant != nil {
			reserved, err := s.variantRepo.DecrementStock(ctx, tx, variant.ID, line.Quantity)
			if err != nil {
				return nil, fmt.Errorf("failed to create order items: %w", err)
			}
			if !reserved {
				s.logger.Warn().
					Int64("variant_id", variant.ID).
					Int("requested", line.Quantity).
					Msg("insufficient stock")
				return nil, model.NewDomainError(
					model.ErrCodeInsufficientStock,
					fmt.Sprintf("Not enough stock for %s", variant.NameVariant),
				)
			}

			item.ProductID = variant.ProductID
			item.VariantID = &variant.ID
			item.ProductName = variant.NameVariant
			item.Color = variant.Color
			item.Power = variant.Power
			item.ConnectionType = variant.ConnectionType
			item.HasMicrophone = variant.HasMicrophone
		} else {
			item.ProductID = line.ProductID
			item.ProductName = line.ProductName
			item.Color = orDash(line.Color)
			item.Power = orDash(line.Power)
			item.ConnectionType = orDash(line.ConnectionType)
			item.HasMicrophone = line.HasMicrophone
		}

		items = append(items, item)
	}

	return items, nil
}

// sendReceipt emails the order receipt, embedding the generated password for
// newly provisioned customers. Failures are logged, never surfaced.
func (s *orderService) sendReceipt(req *model.OrderRequest, discount float64, plainPassword string) {
	body, err := mail.RenderReceipt(mail.ReceiptData{
		CustomerName: req.Customer.Name,
		Email:        req.Customer.Email,
		Password:     plainPassword,
		Items:        req.Items,
		SubTotal:     req.SubTotal,
		Discount:     discount,
		ShippingFee:  req.ShippingFee,
		Total:        req.Total,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to render receipt email")
		return
	}

	if err := s.mailer.Send(req.Customer.Email, mail.ReceiptSubject, body); err != nil {
		s.logger.Error().Err(err).Str("to", req.Customer.Email).Msg("failed to send receipt email")
	}
}

// GetByID retrieves an order with its line items.
func (s *orderService) GetByID(ctx context.Context, id int64) (*model.OrderDetail, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", id).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		return nil, nil
	}

	return &model.OrderDetail{Order: *order, Items: items}, nil
}

// List retrieves a filtered page of order summaries.
func (s *orderService) List(ctx context.Context, filter model.OrderListFilter) (*model.OrderPage, error) {
	orders, total, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	totalPages := (total + filter.Limit - 1) / filter.Limit

	return &model.OrderPage{
		Data:        orders,
		CurrentPage: filter.Page,
		TotalPages:  totalPages,
		TotalOrders: total,
		Limit:       filter.Limit,
	}, nil
}

// UpdateStatus sets an order's status and pushes the change to the customer.
func (s *orderService) UpdateStatus(ctx context.Context, id int64, status string) error {
	updated, err := s.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", id).Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if !updated {
		return model.ErrOrderNotFound
	}

	order, _, err := s.orderRepo.GetByID(ctx, id)
	if err != nil || order == nil {
		// Status is already updated; losing the push is acceptable.
		s.logger.Warn().Err(err).Int64("order_id", id).Msg("could not resolve customer for status push")
		return nil
	}

	s.notifier.NotifyOrderStatusChanged(ctx, id, order.CustomerID, status)

	return nil
}

// Delete removes an order.
func (s *orderService) Delete(ctx context.Context, id int64) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

// validateOrderRequest validates the cart payload.
func (s *orderService) validateOrderRequest(req *model.OrderRequest) error {
	if req == nil || len(req.Items) == 0 {
		return model.ErrEmptyCart
	}

	for i, item := range req.Items {
		if item.Quantity <= 0 {
			s.logger.Warn().
				Int("item_index", i).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
	}

	return nil
}

// generatePassword returns an 8-hex-character random password for
// auto-provisioned customers.
func generatePassword() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
