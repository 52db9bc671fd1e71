package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wardrobe/internal/domain"
)

var (
	ErrColorNotFound = errors.New("color not found")
)

// ColorRepository defines the interface for color data access
type ColorRepository interface {
	Create(ctx context.Context, color *domain.Color) error
	List(ctx context.Context) ([]*domain.Color, error)
	FindByName(ctx context.Context, name string) (*domain.Color, error)
}

type colorRepository struct {
	db *sql.DB
}

// NewColorRepository creates a new instance of ColorRepository
func NewColorRepository(db *sql.DB) ColorRepository {
	return &colorRepository{db: db}
}

// Create inserts a new color into the database using parameterized queries
func (r *colorRepository) Create(ctx context.Context, color *domain.Color) error {
	query := `
		INSERT INTO colors (id, name, hex_code)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.ExecContext(ctx, query, color.ID, color.Name, color.HexCode)
	if err != nil {
		return fmt.Errorf("failed to create color: %w", err)
	}

	return nil
}

// List retrieves all colors ordered by name
func (r *colorRepository) List(ctx context.Context) ([]*domain.Color, error) {
	query := `
		SELECT id, name, hex_code
		FROM colors
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list colors: %w", err)
	}
	defer rows.Close()

	colors := []*domain.Color{}
	for rows.Next() {
		color := &domain.Color{}
		if err := rows.Scan(&color.ID, &color.Name, &color.HexCode); err != nil {
			return nil, fmt.Errorf("failed to scan color: %w", err)
		}
		colors = append(colors, color)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating colors: %w", err)
	}

	return colors, nil
}

// FindByName retrieves a color by its unique name. The match is
// case-insensitive: detail URLs carry the color lowercased while the
// catalog stores it capitalized.
func (r *colorRepository) FindByName(ctx context.Context, name string) (*domain.Color, error) {
	query := `
		SELECT id, name, hex_code
		FROM colors
		WHERE LOWER(name) = LOWER($1)
	`

	color := &domain.Color{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&color.ID, &color.Name, &color.HexCode)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrColorNotFound
		}
		return nil, fmt.Errorf("failed to find color by name: %w", err)
	}

	return color, nil
}
