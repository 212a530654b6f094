package model

import "time"

// Coupon discount types.
const (
	CouponTypePercent = "percent"
	CouponTypeFixed   = "fixed"
)

// Coupon statuses.
const (
	CouponStatusActive   = "active"
	CouponStatusInactive = "inactive"
)

// Coupon is a discount code with a remaining-use counter. Quantity decrements
// by one on each successful redemption; the status flips to inactive lazily,
// at read time, once the quantity hits zero or the end date passes.
type Coupon struct {
	ID            int64     `json:"id" db:"id"`
	Code          string    `json:"code" db:"code"`
	Type          string    `json:"type" db:"type"`
	Value         float64   `json:"value" db:"value"`
	MinOrderValue float64   `json:"minOrderValue" db:"min_order_value"`
	StartDate     time.Time `json:"startDate" db:"start_date"`
	EndDate       time.Time `json:"endDate" db:"end_date"`
	Quantity      int       `json:"quantity" db:"quantity"`
	Status        string    `json:"status" db:"status"`
}

// DiscountFor returns the discount this coupon grants on the given subtotal.
func (c *Coupon) DiscountFor(subTotal float64) float64 {
	if c.Type == CouponTypePercent {
		return subTotal * c.Value / 100
	}
	return c.Value
}

// CouponPage is the paginated envelope for the coupon listing.
type CouponPage struct {
	Data         []Coupon `json:"data"`
	CurrentPage  int      `json:"currentPage"`
	TotalPages   int      `json:"totalPages"`
	TotalCoupons int      `json:"totalCoupons"`
	Limit        int      `json:"limit"`
}
