package repository

import (
	"context"
	"fmt"

	"soundhub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// couponRepository implements the CouponRepository interface using PostgreSQL.
type couponRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCouponRepository creates a new PostgreSQL-backed coupon repository.
func NewCouponRepository(pool *pgxpool.Pool, logger zerolog.Logger) CouponRepository {
	return &couponRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "coupon").Logger(),
	}
}

const couponColumns = `id, code, type, value, min_order_value, start_date, end_date, quantity, status`

func scanCoupon(row pgx.Row, c *model.Coupon) error {
	return row.Scan(
		&c.ID,
		&c.Code,
		&c.Type,
		&c.Value,
		&c.MinOrderValue,
		&c.StartDate,
		&c.EndDate,
		&c.Quantity,
		&c.Status,
	)
}

// GetActiveByCode retrieves an active coupon with remaining uses within the
// provided transaction. Returns nil when no such coupon exists.
func (r *couponRepository) GetActiveByCode(ctx context.Context, tx pgx.Tx, code string) (*model.Coupon, error) {
	query := `
		SELECT ` + couponColumns + `
		FROM coupons
		WHERE code = $1 AND status = $2 AND quantity > 0
	`

	var c model.Coupon
	err := scanCoupon(tx.QueryRow(ctx, query, code, model.CouponStatusActive), &c)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("code", code).Msg("no active coupon for code")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query coupon")
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}

	return &c, nil
}

// Redeem conditionally decrements the coupon's remaining-use counter within
// the provided transaction. The quantity floor lives in the WHERE clause so
// concurrent redemptions cannot push the counter below zero.
func (r *couponRepository) Redeem(ctx context.Context, tx pgx.Tx, id int64) (bool, error) {
	query := `
		UPDATE coupons
		SET quantity = quantity - 1
		WHERE id = $1 AND quantity > 0
	`

	tag, err := tx.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("coupon_id", id).Msg("failed to redeem coupon")
		return false, fmt.Errorf("failed to redeem coupon: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// List retrieves a page of coupons plus the total count.
func (r *couponRepository) List(ctx context.Context, page, limit int) ([]model.Coupon, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM coupons`).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count coupons")
		return nil, 0, fmt.Errorf("failed to count coupons: %w", err)
	}

	query := `
		SELECT ` + couponColumns + `
		FROM coupons
		ORDER BY end_date DESC, id
		LIMIT $1 OFFSET $2
	`

	offset := (page - 1) * limit
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query coupons")
		return nil, 0, fmt.Errorf("failed to query coupons: %w", err)
	}
	defer rows.Close()

	var coupons []model.Coupon
	for rows.Next() {
		var c model.Coupon
		if err := scanCoupon(rows, &c); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan coupon row")
			return nil, 0, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating coupon rows")
		return nil, 0, fmt.Errorf("error iterating coupons: %w", err)
	}

	return coupons, total, nil
}

// DeactivateExpired flips coupons with no remaining uses or a past end date
// to inactive. Evaluated lazily before each listing rather than by a
// background sweep.
func (r *couponRepository) DeactivateExpired(ctx context.Context) (int64, error) {
	query := `
		UPDATE coupons
		SET status = $1
		WHERE status = $2 AND (quantity <= 0 OR end_date < NOW())
	`

	tag, err := r.pool.Exec(ctx, query, model.CouponStatusInactive, model.CouponStatusActive)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to deactivate expired coupons")
		return 0, fmt.Errorf("failed to deactivate expired coupons: %w", err)
	}

	if n := tag.RowsAffected(); n > 0 {
		r.logger.Info().Int64("count", n).Msg("deactivated expired coupons")
		return n, nil
	}

	return 0, nil
}
