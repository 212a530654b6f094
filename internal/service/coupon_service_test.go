package service

import (
	"context"
	"errors"
	"testing"

	"soundhub/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCouponService_List(t *testing.T) {
	ctx := context.Background()
	couponRepo := new(MockCouponRepository)

	coupons := []model.Coupon{
		{ID: 1, Code: "SUMMER10", Status: model.CouponStatusActive},
		{ID: 2, Code: "FLAT20K", Status: model.CouponStatusActive},
	}

	couponRepo.On("DeactivateExpired", ctx).Return(int64(3), nil)
	couponRepo.On("List", ctx, 1, 10).Return(coupons, 12, nil)

	page, err := NewCouponService(couponRepo, zerolog.Nop()).List(ctx, 1, 10)

	require.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 12, page.TotalCoupons)
	assert.Len(t, page.Data, 2)

	couponRepo.AssertExpectations(t)
}

func TestCouponService_List_ExpirySweepRunsFirst(t *testing.T) {
	ctx := context.Background()
	couponRepo := new(MockCouponRepository)

	couponRepo.On("DeactivateExpired", ctx).Return(int64(0), nil)
	couponRepo.On("List", ctx, 2, 5).Return([]model.Coupon{}, 0, nil)

	page, err := NewCouponService(couponRepo, zerolog.Nop()).List(ctx, 2, 5)

	require.NoError(t, err)
	assert.Zero(t, page.TotalCoupons)
	require.Len(t, couponRepo.Calls, 2)
	assert.Equal(t, "DeactivateExpired", couponRepo.Calls[0].Method)
	assert.Equal(t, "List", couponRepo.Calls[1].Method)
}

func TestCouponService_List_SweepFailure(t *testing.T) {
	ctx := context.Background()
	couponRepo := new(MockCouponRepository)

	couponRepo.On("DeactivateExpired", ctx).Return(int64(0), errors.New("connection reset"))

	page, err := NewCouponService(couponRepo, zerolog.Nop()).List(ctx, 1, 10)

	require.Error(t, err)
	assert.Nil(t, page)
	couponRepo.AssertNotCalled(t, "List")
}
