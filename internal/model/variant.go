package model

// Variant is a purchasable SKU-level configuration of a product with its own
// stock and price.
type Variant struct {
	ID             int64   `json:"id" db:"id"`
	ProductID      int64   `json:"productId" db:"product_id"`
	NameVariant    string  `json:"nameVariant" db:"name_variant"`
	Color          string  `json:"color" db:"color"`
	Power          string  `json:"power" db:"power"`
	ConnectionType string  `json:"connectionType" db:"connection_type"`
	HasMicrophone  bool    `json:"hasMicrophone" db:"has_microphone"`
	Price          float64 `json:"price" db:"price"`
	Stock          int     `json:"stock" db:"stock"`
	Image          string  `json:"image" db:"image"`
}
