package domain

import "github.com/shopspring/decimal"

type Category struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	Parent      *int64 `db:"parent_id" json:"parent,omitempty"`
}

type ProductImage struct {
	ID        int64  `db:"id" json:"id"`
	Product   int64  `db:"product_id" json:"product"`
	Image     string `db:"image" json:"image"`
	AltText   string `db:"alt_text" json:"alt_text"`
	IsPrimary bool   `db:"is_primary" json:"is_primary"`
}

type Product struct {
	ID            int64           `db:"id" json:"id"`
	Name          string          `db:"name" json:"name"`
	Description   string          `db:"description" json:"description"`
	Price         decimal.Decimal `db:"price" json:"price"` // marshals as a JSON string
	Category      Category        `db:"category" json:"category"`
	StockQuantity int             `db:"stock_quantity" json:"stock_quantity"`
	SKU           string          `db:"sku" json:"sku"`
	IsActive      bool            `db:"is_active" json:"is_active"`
	CreatedAt     string          `db:"created_at" json:"created_at"`
	UpdatedAt     string          `db:"updated_at" json:"updated_at"`
	Images        []ProductImage  `db:"-" json:"images,omitempty"`
}

type ProductReview struct {
	ID        int64  `db:"id" json:"id"`
	Product   int64  `db:"product_id" json:"product"`
	User      int64  `db:"user_id" json:"user"`
	Rating    int    `db:"rating" json:"rating"`
	Comment   string `db:"comment" json:"comment"`
	CreatedAt string `db:"created_at" json:"created_at"`
	UserName  string `db:"user_name" json:"user_name,omitempty"`
}

// Page is the paginated envelope returned by list endpoints.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// StockAck acknowledges a stock update.
type StockAck struct {
	Status        string `json:"status"`
	ID            int64  `json:"id"`
	StockQuantity int    `json:"stock_quantity"`
	// Previous is the quantity before the update; kept off the wire.
	Previous int `json:"-"`
}
