package service

import (
	"context"
	"errors"
	"fmt"

	"wardrobe/internal/domain"
	"wardrobe/internal/repository"
)

var (
	// ErrInvalidSize means the size name exists nowhere under the
	// resolved product type. A size repeated across types only counts
	// when scoped to the requested type.
	ErrInvalidSize = errors.New("size is not valid for this product type")
)

// ResolvedAttributes holds the persisted records behind the four
// human-entered attribute names of a product.
type ResolvedAttributes struct {
	Category *domain.Category
	Type     *domain.ProductType
	Size     *domain.Size
	Color    *domain.Color
}

// CatalogValidator resolves attribute names to persisted records,
// verifying referential validity. Lookups are read-only.
type CatalogValidator interface {
	Resolve(ctx context.Context, category, typeName, size, color string) (*ResolvedAttributes, error)
}

type catalogValidator struct {
	categoryRepo repository.CategoryRepository
	typeRepo     repository.ProductTypeRepository
	colorRepo    repository.ColorRepository
}

// NewCatalogValidator creates a new instance of CatalogValidator
func NewCatalogValidator(
	categoryRepo repository.CategoryRepository,
	typeRepo repository.ProductTypeRepository,
	colorRepo repository.ColorRepository,
) CatalogValidator {
	return &catalogValidator{
		categoryRepo: categoryRepo,
		typeRepo:     typeRepo,
		colorRepo:    colorRepo,
	}
}

// Resolve looks up each attribute name in turn. The size lookup is
// scoped to the resolved type, which is what enforces the
// size-belongs-to-type invariant before anything is persisted.
func (v *catalogValidator) Resolve(ctx context.Context, category, typeName, size, color string) (*ResolvedAttributes, error) {
	resolvedCategory, err := v.categoryRepo.FindByName(ctx, category)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}

	resolvedType, err := v.typeRepo.FindByName(ctx, typeName)
	if err != nil {
		if errors.Is(err, repository.ErrProductTypeNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to resolve product type: %w", err)
	}

	resolvedSize, err := v.typeRepo.FindSize(ctx, resolvedType.ID, size)
	if err != nil {
		if errors.Is(err, repository.ErrSizeNotFound) {
			return nil, ErrInvalidSize
		}
		return nil, fmt.Errorf("failed to resolve size: %w", err)
	}

	resolvedColor, err := v.colorRepo.FindByName(ctx, color)
	if err != nil {
		if errors.Is(err, repository.ErrColorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to resolve color: %w", err)
	}

	return &ResolvedAttributes{
		Category: resolvedCategory,
		Type:     resolvedType,
		Size:     resolvedSize,
		Color:    resolvedColor,
	}, nil
}
