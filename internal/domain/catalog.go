package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is a top-level product grouping such as "Male" or "Kid"
type Category struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ProductType is a kind of product such as "Shirt" or "Shoes".
// Each type owns the set of sizes that are valid for it.
type ProductType struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Size is a size value scoped to exactly one product type. The same
// size name may exist under several types; (type, name) is the
// validation key.
type Size struct {
	ID            uuid.UUID `json:"id" db:"id"`
	ProductTypeID uuid.UUID `json:"product_type_id" db:"product_type_id"`
	Name          string    `json:"name" db:"name"`
}

// ProductTypeWithSizes is a type with its valid sizes attached, as
// returned by the dependencies catalog.
type ProductTypeWithSizes struct {
	ProductType
	Sizes []*Size `json:"sizes"`
}

// Color is a named color with a display hex code
type Color struct {
	ID      uuid.UUID `json:"id" db:"id"`
	Name    string    `json:"name" db:"name"`
	HexCode string    `json:"hex_code" db:"hex_code"`
}

// ProductGroup ties the color variants of one logical item together.
// The slug is unique; groups are created lazily on product creation
// and persist even when their last member is deleted.
type ProductGroup struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CatalogDependencies bundles the reference catalogs used to populate
// client-side selection forms.
type CatalogDependencies struct {
	Categories []*Category             `json:"categories"`
	Types      []*ProductTypeWithSizes `json:"types"`
	Colors     []*Color                `json:"colors"`
	Groups     []*ProductGroup         `json:"groups"`
}
