package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wardrobe/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrGroupNotFound = errors.New("product group not found")
)

// ProductGroupRepository defines the interface for product group data access
type ProductGroupRepository interface {
	FindOrCreate(ctx context.Context, slug string) (*domain.ProductGroup, error)
	FindBySlug(ctx context.Context, slug string) (*domain.ProductGroup, error)
	List(ctx context.Context) ([]*domain.ProductGroup, error)
}

type productGroupRepository struct {
	db *sql.DB
}

// NewProductGroupRepository creates a new instance of ProductGroupRepository
func NewProductGroupRepository(db *sql.DB) ProductGroupRepository {
	return &productGroupRepository{db: db}
}

// FindOrCreate inserts a group for the slug unless one already
// exists, then returns the surviving row. The insert rides on the
// unique index on slug, so two concurrent calls for the same slug
// converge on one group instead of racing a check-then-create.
func (r *productGroupRepository) FindOrCreate(ctx context.Context, slug string) (*domain.ProductGroup, error) {
	insert := `
		INSERT INTO product_groups (id, slug, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (slug) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, insert, uuid.New(), slug, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to upsert product group: %w", err)
	}

	group, err := r.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to read back product group: %w", err)
	}

	return group, nil
}

// FindBySlug retrieves a product group by its unique slug
func (r *productGroupRepository) FindBySlug(ctx context.Context, slug string) (*domain.ProductGroup, error) {
	query := `
		SELECT id, slug, created_at
		FROM product_groups
		WHERE slug = $1
	`

	group := &domain.ProductGroup{}
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&group.ID, &group.Slug, &group.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to find product group by slug: %w", err)
	}

	return group, nil
}

// List retrieves all product groups ordered by slug
func (r *productGroupRepository) List(ctx context.Context) ([]*domain.ProductGroup, error) {
	query := `
		SELECT id, slug, created_at
		FROM product_groups
		ORDER BY slug ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list product groups: %w", err)
	}
	defer rows.Close()

	groups := []*domain.ProductGroup{}
	for rows.Next() {
		group := &domain.ProductGroup{}
		if err := rows.Scan(&group.ID, &group.Slug, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product group: %w", err)
		}
		groups = append(groups, group)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product groups: %w", err)
	}

	return groups, nil
}
