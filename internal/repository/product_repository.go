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
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	FindDetail(ctx context.Context, id uuid.UUID) (*domain.ProductDetail, error)
	FindByGroupAndColor(ctx context.Context, groupID, colorID uuid.UUID) (*domain.ProductDetail, error)
	ListDetails(ctx context.Context) ([]*domain.ProductDetail, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product into the database using parameterized queries
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, name, description, price, stock, image_url,
			category_id, type_id, size_id, color_id, group_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.ImageURL,
		product.CategoryID,
		product.TypeID,
		product.SizeID,
		product.ColorID,
		product.GroupID,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update rewrites all mutable columns of an existing product,
// including its four attribute references
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, stock = $5, image_url = $6,
		    category_id = $7, type_id = $8, size_id = $9, color_id = $10, updated_at = $11
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.ImageURL,
		product.CategoryID,
		product.TypeID,
		product.SizeID,
		product.ColorID,
		product.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product row. The group it belonged to is left in
// place even when this was its last member.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindByID retrieves a bare product row by ID
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT id, name, description, price, stock, image_url,
		       category_id, type_id, size_id, color_id, group_id, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	product := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Stock,
		&product.ImageURL,
		&product.CategoryID,
		&product.TypeID,
		&product.SizeID,
		&product.ColorID,
		&product.GroupID,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

const detailColumns = `
	p.id, p.name, p.description, p.price, p.stock, p.image_url,
	p.category_id, p.type_id, p.size_id, p.color_id, p.group_id, p.created_at, p.updated_at,
	c.id, c.name, c.created_at,
	t.id, t.name, t.created_at,
	s.id, s.product_type_id, s.name,
	col.id, col.name, col.hex_code,
	g.id, g.slug, g.created_at
`

const detailJoins = `
	FROM products p
	JOIN categories c ON c.id = p.category_id
	JOIN product_types t ON t.id = p.type_id
	JOIN sizes s ON s.id = p.size_id
	JOIN colors col ON col.id = p.color_id
	JOIN product_groups g ON g.id = p.group_id
`

// FindDetail retrieves a product with all attribute records resolved
func (r *productRepository) FindDetail(ctx context.Context, id uuid.UUID) (*domain.ProductDetail, error) {
	query := `SELECT ` + detailColumns + detailJoins + ` WHERE p.id = $1`

	detail, err := scanDetail(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product detail: %w", err)
	}

	return detail, nil
}

// FindByGroupAndColor retrieves the member of a group with the given color
func (r *productRepository) FindByGroupAndColor(ctx context.Context, groupID, colorID uuid.UUID) (*domain.ProductDetail, error) {
	query := `SELECT ` + detailColumns + detailJoins + ` WHERE p.group_id = $1 AND p.color_id = $2`

	detail, err := scanDetail(r.db.QueryRowContext(ctx, query, groupID, colorID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by group and color: %w", err)
	}

	return detail, nil
}

// ListDetails retrieves every product with attributes resolved,
// ordered by group slug then color name. The grouped listing relies
// on this order: the first member of each group is its representative.
func (r *productRepository) ListDetails(ctx context.Context) ([]*domain.ProductDetail, error) {
	query := `SELECT ` + detailColumns + detailJoins + ` ORDER BY g.slug ASC, col.name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	details := []*domain.ProductDetail{}
	for rows.Next() {
		detail, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		details = append(details, detail)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return details, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDetail(row rowScanner) (*domain.ProductDetail, error) {
	detail := &domain.ProductDetail{
		Category: &domain.Category{},
		Type:     &domain.ProductType{},
		Size:     &domain.Size{},
		Color:    &domain.Color{},
		Group:    &domain.ProductGroup{},
	}

	err := row.Scan(
		&detail.ID,
		&detail.Name,
		&detail.Description,
		&detail.Price,
		&detail.Stock,
		&detail.ImageURL,
		&detail.CategoryID,
		&detail.TypeID,
		&detail.SizeID,
		&detail.ColorID,
		&detail.GroupID,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.Category.ID,
		&detail.Category.Name,
		&detail.Category.CreatedAt,
		&detail.Type.ID,
		&detail.Type.Name,
		&detail.Type.CreatedAt,
		&detail.Size.ID,
		&detail.Size.ProductTypeID,
		&detail.Size.Name,
		&detail.Color.ID,
		&detail.Color.Name,
		&detail.Color.HexCode,
		&detail.Group.ID,
		&detail.Group.Slug,
		&detail.Group.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return detail, nil
}
