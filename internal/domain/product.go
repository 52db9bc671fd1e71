package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a single purchasable variant: one concrete
// (category, type, size, color) combination within a product group.
type Product struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Stock       int             `json:"stock" db:"stock"`
	ImageURL    string          `json:"image_url" db:"image_url"`
	CategoryID  uuid.UUID       `json:"category_id" db:"category_id"`
	TypeID      uuid.UUID       `json:"type_id" db:"type_id"`
	SizeID      uuid.UUID       `json:"size_id" db:"size_id"`
	ColorID     uuid.UUID       `json:"color_id" db:"color_id"`
	GroupID     uuid.UUID       `json:"group_id" db:"group_id"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// ProductDetail is a product with all foreign references resolved
type ProductDetail struct {
	Product
	Category *Category     `json:"category"`
	Type     *ProductType  `json:"type"`
	Size     *Size         `json:"size"`
	Color    *Color        `json:"color"`
	Group    *ProductGroup `json:"product_group"`
}

// ColorOption is one selectable color variant of a grouped product.
// The id is the variant product's id, which is what a client needs to
// link to the concrete variant.
type ColorOption struct {
	ProductID uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	HexCode   string    `json:"hex_code"`
}

// GroupedProduct is the read-only listing projection: one
// representative variant per group plus every member's color.
// It is derived on each read and never persisted.
type GroupedProduct struct {
	*ProductDetail
	AvailableColors []ColorOption `json:"available_colors"`
}
