package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wardrobe/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrProductTypeNotFound = errors.New("product type not found")
	ErrSizeNotFound        = errors.New("size not found for product type")
)

// ProductTypeRepository defines the interface for product type and
// size data access. Sizes only exist scoped to a type, so they are
// managed here rather than in a repository of their own.
type ProductTypeRepository interface {
	Create(ctx context.Context, productType *domain.ProductType) error
	CreateSize(ctx context.Context, size *domain.Size) error
	FindByName(ctx context.Context, name string) (*domain.ProductType, error)
	FindSize(ctx context.Context, typeID uuid.UUID, sizeName string) (*domain.Size, error)
	ListWithSizes(ctx context.Context) ([]*domain.ProductTypeWithSizes, error)
}

type productTypeRepository struct {
	db *sql.DB
}

// NewProductTypeRepository creates a new instance of ProductTypeRepository
func NewProductTypeRepository(db *sql.DB) ProductTypeRepository {
	return &productTypeRepository{db: db}
}

// Create inserts a new product type into the database using parameterized queries
func (r *productTypeRepository) Create(ctx context.Context, productType *domain.ProductType) error {
	query := `
		INSERT INTO product_types (id, name, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.ExecContext(ctx, query, productType.ID, productType.Name, productType.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product type: %w", err)
	}

	return nil
}

// CreateSize inserts a new size scoped to a product type
func (r *productTypeRepository) CreateSize(ctx context.Context, size *domain.Size) error {
	query := `
		INSERT INTO sizes (id, product_type_id, name)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.ExecContext(ctx, query, size.ID, size.ProductTypeID, size.Name)
	if err != nil {
		return fmt.Errorf("failed to create size: %w", err)
	}

	return nil
}

// FindByName retrieves a product type by its unique name
func (r *productTypeRepository) FindByName(ctx context.Context, name string) (*domain.ProductType, error) {
	query := `
		SELECT id, name, created_at
		FROM product_types
		WHERE name = $1
	`

	productType := &domain.ProductType{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&productType.ID,
		&productType.Name,
		&productType.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductTypeNotFound
		}
		return nil, fmt.Errorf("failed to find product type by name: %w", err)
	}

	return productType, nil
}

// FindSize retrieves a size by name within one product type. This is
// the lookup behind the size-belongs-to-type invariant: a size name
// that exists under a different type still misses here.
func (r *productTypeRepository) FindSize(ctx context.Context, typeID uuid.UUID, sizeName string) (*domain.Size, error) {
	query := `
		SELECT id, product_type_id, name
		FROM sizes
		WHERE product_type_id = $1 AND name = $2
	`

	size := &domain.Size{}
	err := r.db.QueryRowContext(ctx, query, typeID, sizeName).Scan(
		&size.ID,
		&size.ProductTypeID,
		&size.Name,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSizeNotFound
		}
		return nil, fmt.Errorf("failed to find size: %w", err)
	}

	return size, nil
}

// ListWithSizes retrieves all product types with their sizes attached
func (r *productTypeRepository) ListWithSizes(ctx context.Context) ([]*domain.ProductTypeWithSizes, error) {
	query := `
		SELECT t.id, t.name, t.created_at, s.id, s.product_type_id, s.name
		FROM product_types t
		LEFT JOIN sizes s ON s.product_type_id = t.id
		ORDER BY t.name ASC, s.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list product types: %w", err)
	}
	defer rows.Close()

	types := []*domain.ProductTypeWithSizes{}
	byID := map[uuid.UUID]*domain.ProductTypeWithSizes{}

	for rows.Next() {
		productType := &domain.ProductType{}
		var sizeID, sizeTypeID uuid.NullUUID
		var sizeName sql.NullString

		err := rows.Scan(
			&productType.ID,
			&productType.Name,
			&productType.CreatedAt,
			&sizeID,
			&sizeTypeID,
			&sizeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product type: %w", err)
		}

		entry, ok := byID[productType.ID]
		if !ok {
			entry = &domain.ProductTypeWithSizes{ProductType: *productType, Sizes: []*domain.Size{}}
			byID[productType.ID] = entry
			types = append(types, entry)
		}

		if sizeID.Valid {
			entry.Sizes = append(entry.Sizes, &domain.Size{
				ID:            sizeID.UUID,
				ProductTypeID: sizeTypeID.UUID,
				Name:          sizeName.String,
			})
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product types: %w", err)
	}

	return types, nil
}
