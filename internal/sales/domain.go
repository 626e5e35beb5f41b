package sales

import "time"

// Sale is one point-of-sale transaction. A negative QuantitySold marks a
// return reversal row; totals and profit carry the matching sign.
type Sale struct {
	ID            int64     `json:"id" db:"id"`
	ProductID     int64     `json:"product_id" db:"product_id"`
	Title         string    `json:"title" db:"title"`
	QuantitySold  int       `json:"quantity_sold" db:"quantity_sold"`
	TotalSale     float64   `json:"total_sale" db:"total_sale"`
	Profit        float64   `json:"profit" db:"profit"`
	PaymentMethod string    `json:"payment_method" db:"payment_method"`
	SoldBy        string    `json:"sold_by" db:"sold_by"`
	SoldAt        time.Time `json:"sold_at" db:"sold_at"`
	Receipt       string    `json:"receipt" db:"receipt"`
}

// CyberService is income from the cyber-café side of the shop: printing,
// browsing, lamination and the like. The full amount counts as profit.
type CyberService struct {
	ID          int64     `json:"id" db:"id"`
	Description string    `json:"description" db:"description"`
	Amount      float64   `json:"amount" db:"amount"`
	ServicedAt  time.Time `json:"serviced_at" db:"serviced_at"`
}

// CreateSaleRequest carries the fields accepted when recording a sale.
// TotalSale and Profit are computed at write time by the till, not derived
// again here.
type CreateSaleRequest struct {
	ProductID     int64   `json:"product_id" validate:"required,gt=0"`
	Title         string  `json:"title" validate:"required,max=300"`
	QuantitySold  int     `json:"quantity_sold" validate:"required,gt=0"`
	TotalSale     float64 `json:"total_sale" validate:"gte=0"`
	Profit        float64 `json:"profit"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=cash mpesa card credit"`
	SoldBy        string  `json:"sold_by" validate:"required,max=100"`
}

// CreateServiceRequest records ancillary cyber income.
type CreateServiceRequest struct {
	Description string  `json:"description" validate:"required,max=300"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
}

// DateRange bounds a listing. Zero values mean unbounded.
type DateRange struct {
	From time.Time
	To   time.Time
}
