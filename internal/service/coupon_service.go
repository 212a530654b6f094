package service

import (
	"context"
	"fmt"

	"soundhub/internal/model"
	"soundhub/internal/repository"

	"github.com/rs/zerolog"
)

// couponService implements CouponService.
type couponService struct {
	couponRepo repository.CouponRepository
	logger     zerolog.Logger
}

// NewCouponService creates a new coupon service.
func NewCouponService(couponRepo repository.CouponRepository, logger zerolog.Logger) CouponService {
	return &couponService{
		couponRepo: couponRepo,
		logger:     logger.With().Str("service", "coupon").Logger(),
	}
}

// List retires exhausted/expired coupons, then returns a page. Expiry is
// evaluated here, at read time, rather than by a background sweep.
func (s *couponService) List(ctx context.Context, page, limit int) (*model.CouponPage, error) {
	if _, err := s.couponRepo.DeactivateExpired(ctx); err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}

	coupons, total, err := s.couponRepo.List(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}

	totalPages := (total + limit - 1) / limit

	return &model.CouponPage{
		Data:         coupons,
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalCoupons: total,
		Limit:        limit,
	}, nil
}
