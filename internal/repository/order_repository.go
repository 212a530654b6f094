package repository

import (
	"context"
	"fmt"

	"soundhub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Create inserts a new order within the provided transaction and returns its
// generated ID.
func (r *orderRepository) Create(ctx context.Context, tx pgx.Tx, order *model.Order) (int64, error) {
	query := `
		INSERT INTO orders
			(customer_id, full_name, email, phone, address,
			 total_amount, discount_amount, final_amount,
			 payment_method, order_status, coupon_code, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	var id int64
	err := tx.QueryRow(ctx, query,
		order.CustomerID,
		order.FullName,
		order.Email,
		order.Phone,
		order.Address,
		order.TotalAmount,
		order.DiscountAmount,
		order.FinalAmount,
		order.PaymentMethod,
		order.OrderStatus,
		order.CouponCode,
		order.Note,
	).Scan(&id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("customer_id", order.CustomerID).
			Msg("failed to create order")
		return 0, fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Int64("order_id", id).
		Msg("order created successfully")

	return id, nil
}

// CreateItems inserts the order line snapshots within the provided transaction.
func (r *orderRepository) CreateItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items
			(order_id, product_id, variant_id, product_name, color, power,
			 connection_type, has_microphone, price, quantity, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query,
			item.OrderID,
			item.ProductID,
			item.VariantID,
			item.ProductName,
			item.Color,
			item.Power,
			item.ConnectionType,
			item.HasMicrophone,
			item.Price,
			item.Quantity,
			item.Total,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Int64("order_id", items[i].OrderID).
				Str("product_name", items[i].ProductName).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created successfully")

	return nil
}

// GetByID retrieves an order by its ID along with its items.
func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, []model.OrderItem, error) {
	orderQuery := `
		SELECT id, customer_id, full_name, email, phone, address,
		       total_amount, discount_amount, final_amount,
		       payment_method, order_status, coupon_code, note, created_at
		FROM orders
		WHERE id = $1
	`

	var order model.Order
	err := r.pool.QueryRow(ctx, orderQuery, id).Scan(
		&order.ID,
		&order.CustomerID,
		&order.FullName,
		&order.Email,
		&order.Phone,
		&order.Address,
		&order.TotalAmount,
		&order.DiscountAmount,
		&order.FinalAmount,
		&order.PaymentMethod,
		&order.OrderStatus,
		&order.CouponCode,
		&order.Note,
		&order.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("order_id", id).Msg("order not found")
			return nil, nil, nil
		}
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to query order")
		return nil, nil, fmt.Errorf("failed to query order: %w", err)
	}

	itemsQuery := `
		SELECT id, order_id, product_id, variant_id, product_name, color, power,
		       connection_type, has_microphone, price, quantity, total
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, itemsQuery, id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("order_id", id).
			Msg("failed to query order items")
		return nil, nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.VariantID,
			&item.ProductName,
			&item.Color,
			&item.Power,
			&item.ConnectionType,
			&item.HasMicrophone,
			&item.Price,
			&item.Quantity,
			&item.Total,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return &order, items, nil
}

// List retrieves a page of order summaries matching the filter, plus the
// total match count.
func (r *orderRepository) List(ctx context.Context, filter model.OrderListFilter) ([]model.OrderSummary, int, error) {
	search := "%" + filter.Search + "%"

	countQuery := `
		SELECT COUNT(*)
		FROM orders
		WHERE (full_name ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1)
		  AND ($2 = '' OR order_status = $2)
	`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, search, filter.Status).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count orders")
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := `
		SELECT id, full_name, email, phone, total_amount, final_amount, order_status, created_at
		FROM orders
		WHERE (full_name ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1)
		  AND ($2 = '' OR order_status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	offset := (filter.Page - 1) * filter.Limit
	rows, err := r.pool.Query(ctx, query, search, filter.Status, filter.Limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.OrderSummary
	for rows.Next() {
		var o model.OrderSummary
		err := rows.Scan(
			&o.ID,
			&o.FullName,
			&o.Email,
			&o.Phone,
			&o.TotalAmount,
			&o.FinalAmount,
			&o.OrderStatus,
			&o.CreatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order summary row")
			return nil, 0, fmt.Errorf("failed to scan order summary: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, 0, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, total, nil
}

// UpdateStatus sets the order status. Returns false when no row matched.
func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status string) (bool, error) {
	query := `
		UPDATE orders
		SET order_status = $1
		WHERE id = $2
	`

	tag, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to update order status")
		return false, fmt.Errorf("failed to update order status: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete removes an order.
func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to delete order")
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}
