package model

import "time"

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order is a placed order. The contact fields are a snapshot taken at
// placement time and are not updated when the customer record changes.
type Order struct {
	ID             int64     `json:"id" db:"id"`
	CustomerID     int64     `json:"customerId" db:"customer_id"`
	FullName       string    `json:"fullName" db:"full_name"`
	Email          string    `json:"email" db:"email"`
	Phone          string    `json:"phone" db:"phone"`
	Address        string    `json:"address" db:"address"`
	TotalAmount    float64   `json:"totalAmount" db:"total_amount"`
	DiscountAmount float64   `json:"discountAmount" db:"discount_amount"`
	FinalAmount    float64   `json:"finalAmount" db:"final_amount"`
	PaymentMethod  string    `json:"paymentMethod" db:"payment_method"`
	OrderStatus    string    `json:"orderStatus" db:"order_status"`
	CouponCode     *string   `json:"couponCode,omitempty" db:"coupon_code"`
	Note           *string   `json:"note,omitempty" db:"note"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// OrderItem is a denormalised snapshot of the purchased variant at time of
// sale, so later catalog edits never alter historical orders.
type OrderItem struct {
	ID             int64   `json:"id" db:"id"`
	OrderID        int64   `json:"-" db:"order_id"`
	ProductID      int64   `json:"productId" db:"product_id"`
	VariantID      *int64  `json:"variantId,omitempty" db:"variant_id"`
	ProductName    string  `json:"productName" db:"product_name"`
	Color          string  `json:"color" db:"color"`
	Power          string  `json:"power" db:"power"`
	ConnectionType string  `json:"connectionType" db:"connection_type"`
	HasMicrophone  bool    `json:"hasMicrophone" db:"has_microphone"`
	Price          float64 `json:"price" db:"price"`
	Quantity       int     `json:"quantity" db:"quantity"`
	Total          float64 `json:"total" db:"total"`
}

// OrderRequest is the cart payload for creating an order.
type OrderRequest struct {
	Customer      CustomerContact    `json:"customer"`
	Items         []OrderItemRequest `json:"items"`
	SubTotal      float64            `json:"subTotal"`
	ShippingFee   float64            `json:"shippingFee"`
	Discount      float64            `json:"discount"`
	Total         float64            `json:"total"`
	CouponCode    *string            `json:"coupon_code,omitempty"`
	PaymentMethod string             `json:"payment_method"`
	Note          *string            `json:"note,omitempty"`
}

// OrderItemRequest is a single cart line. Variant fields are carried so a
// line with no matching variant can still be snapshotted.
type OrderItemRequest struct {
	ProductID      int64   `json:"product_id"`
	VariantID      *int64  `json:"variant_id,omitempty"`
	ProductName    string  `json:"product_name"`
	Color          string  `json:"color,omitempty"`
	Power          string  `json:"power,omitempty"`
	ConnectionType string  `json:"connection_type,omitempty"`
	HasMicrophone  bool    `json:"has_microphone,omitempty"`
	Price          float64 `json:"price"`
	Quantity       int     `json:"quantity"`
}

// OrderSummary is the list-view projection of an order.
type OrderSummary struct {
	ID          int64     `json:"id" db:"id"`
	FullName    string    `json:"fullName" db:"full_name"`
	Email       string    `json:"email" db:"email"`
	Phone       string    `json:"phone" db:"phone"`
	TotalAmount float64   `json:"totalAmount" db:"total_amount"`
	FinalAmount float64   `json:"finalAmount" db:"final_amount"`
	OrderStatus string    `json:"orderStatus" db:"order_status"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// OrderListFilter narrows the admin order listing.
type OrderListFilter struct {
	Search string
	Status string
	Page   int
	Limit  int
}

// OrderPage is the paginated envelope for the admin order listing.
type OrderPage struct {
	Data        []OrderSummary `json:"data"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
	TotalOrders int            `json:"totalOrders"`
	Limit       int            `json:"limit"`
}

// OrderDetail is an order together with its line items.
type OrderDetail struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}
