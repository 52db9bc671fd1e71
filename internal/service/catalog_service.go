package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wardrobe/internal/domain"
	"wardrobe/internal/repository"
	"wardrobe/internal/slugify"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptySlug     = errors.New("product group label produces an empty slug")
	ErrNegativePrice = errors.New("price must not be negative")
	ErrNegativeStock = errors.New("stock must not be negative")
)

// ProductInput carries the human-entered fields for creating or
// updating a product. Category, Type, Size and Color are names, not
// IDs; Group is an optional group label and falls back to the product
// name when empty.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	ImageURL    string
	Category    string
	Type        string
	Size        string
	Color       string
	Group       string
}

// CatalogService defines the product CRUD orchestration: attribute
// validation, variant group resolution and the grouped read view.
type CatalogService interface {
	List(ctx context.Context) ([]*domain.GroupedProduct, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ProductDetail, error)
	GetBySlugAndColor(ctx context.Context, slug, colorName string) (*domain.ProductDetail, error)
	Create(ctx context.Context, input ProductInput) (*domain.ProductDetail, error)
	Update(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.ProductDetail, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Dependencies(ctx context.Context) (*domain.CatalogDependencies, error)
}

type catalogService struct {
	validator    CatalogValidator
	productRepo  repository.ProductRepository
	groupRepo    repository.ProductGroupRepository
	categoryRepo repository.CategoryRepository
	typeRepo     repository.ProductTypeRepository
	colorRepo    repository.ColorRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(
	validator CatalogValidator,
	productRepo repository.ProductRepository,
	groupRepo repository.ProductGroupRepository,
	categoryRepo repository.CategoryRepository,
	typeRepo repository.ProductTypeRepository,
	colorRepo repository.ColorRepository,
) CatalogService {
	return &catalogService{
		validator:    validator,
		productRepo:  productRepo,
		groupRepo:    groupRepo,
		categoryRepo: categoryRepo,
		typeRepo:     typeRepo,
		colorRepo:    colorRepo,
	}
}

// List returns the grouped read view: one entry per group with at
// least one member, carrying a representative variant and the colors
// of every member. Members arrive ordered by color name, so the
// representative is the variant with the lexicographically first
// color, independent of insertion order.
func (s *catalogService) List(ctx context.Context) ([]*domain.GroupedProduct, error) {
	details, err := s.productRepo.ListDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	grouped := []*domain.GroupedProduct{}
	byGroup := map[uuid.UUID]*domain.GroupedProduct{}

	for _, detail := range details {
		entry, ok := byGroup[detail.GroupID]
		if !ok {
			entry = &domain.GroupedProduct{
				ProductDetail:   detail,
				AvailableColors: []domain.ColorOption{},
			}
			byGroup[detail.GroupID] = entry
			grouped = append(grouped, entry)
		}

		entry.AvailableColors = append(entry.AvailableColors, domain.ColorOption{
			ProductID: detail.ID,
			Name:      detail.Color.Name,
			HexCode:   detail.Color.HexCode,
		})
	}

	return grouped, nil
}

// GetByID returns a single product with attributes resolved
func (s *catalogService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProductDetail, error) {
	detail, err := s.productRepo.FindDetail(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return detail, nil
}

// GetBySlugAndColor resolves the color by name, the group by slug,
// and then the member variant carrying that color
func (s *catalogService) GetBySlugAndColor(ctx context.Context, slug, colorName string) (*domain.ProductDetail, error) {
	color, err := s.colorRepo.FindByName(ctx, colorName)
	if err != nil {
		if errors.Is(err, repository.ErrColorNotFound) {
			return nil, repository.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to resolve color: %w", err)
	}

	group, err := s.groupRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, repository.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to resolve group: %w", err)
	}

	detail, err := s.productRepo.FindByGroupAndColor(ctx, group.ID, color.ID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find variant: %w", err)
	}

	return detail, nil
}

// Create validates the attribute names, resolves or lazily creates
// the product group, then persists the variant. Group creation
// happens before product creation; a group left behind by a later
// failure is accepted and will be reused or remain empty.
func (s *catalogService) Create(ctx context.Context, input ProductInput) (*domain.ProductDetail, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	attrs, err := s.validator.Resolve(ctx, input.Category, input.Type, input.Size, input.Color)
	if err != nil {
		return nil, err
	}

	group, err := s.resolveGroup(ctx, input)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	product := &domain.Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		ImageURL:    input.ImageURL,
		CategoryID:  attrs.Category.ID,
		TypeID:      attrs.Type.ID,
		SizeID:      attrs.Size.ID,
		ColorID:     attrs.Color.ID,
		GroupID:     group.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	detail, err := s.productRepo.FindDetail(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created product: %w", err)
	}

	return detail, nil
}

// Update re-validates the attribute names and reassigns all four
// attribute references on the existing product. The group is not
// reassigned; a variant stays with its logical item.
func (s *catalogService) Update(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.ProductDetail, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	attrs, err := s.validator.Resolve(ctx, input.Category, input.Type, input.Size, input.Color)
	if err != nil {
		return nil, err
	}

	existing.Name = input.Name
	existing.Description = input.Description
	existing.Price = input.Price
	existing.Stock = input.Stock
	existing.ImageURL = input.ImageURL
	existing.CategoryID = attrs.Category.ID
	existing.TypeID = attrs.Type.ID
	existing.SizeID = attrs.Size.ID
	existing.ColorID = attrs.Color.ID
	existing.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	detail, err := s.productRepo.FindDetail(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load updated product: %w", err)
	}

	return detail, nil
}

// Delete removes the product row. The group persists even when this
// was its last member; the listing filters empty groups out.
func (s *catalogService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// Dependencies returns the full reference catalogs for populating
// client-side selection forms
func (s *catalogService) Dependencies(ctx context.Context) (*domain.CatalogDependencies, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	types, err := s.typeRepo.ListWithSizes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list product types: %w", err)
	}

	colors, err := s.colorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list colors: %w", err)
	}

	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list product groups: %w", err)
	}

	return &domain.CatalogDependencies{
		Categories: categories,
		Types:      types,
		Colors:     colors,
		Groups:     groups,
	}, nil
}

// resolveGroup derives the group slug from the explicit label, or
// from the product name when no label was given, and adopts an
// existing group with that slug before creating a new one. Two
// unrelated names that derive the same slug share a group; the caller
// sees which group was used in the returned product.
func (s *catalogService) resolveGroup(ctx context.Context, input ProductInput) (*domain.ProductGroup, error) {
	label := input.Group
	if label == "" {
		label = input.Name
	}

	groupSlug := slugify.Make(label)
	if groupSlug == "" {
		return nil, ErrEmptySlug
	}

	group, err := s.groupRepo.FindOrCreate(ctx, groupSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve product group: %w", err)
	}

	return group, nil
}

func validateInput(input ProductInput) error {
	if input.Price.IsNegative() {
		return ErrNegativePrice
	}
	if input.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}
