package service

import (
	"context"
	"errors"
	"testing"

	"wardrobe/internal/repository"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

func validInput(name, color string) ProductInput {
	return ProductInput{
		Name:     name,
		Price:    decimal.NewFromFloat(24.50),
		Stock:    10,
		Category: "Male",
		Type:     "Shirt",
		Size:     "M",
		Color:    color,
	}
}

func TestCatalogService_CreateResolvesAttributes(t *testing.T) {
	h := newCatalogHarness()
	ctx := context.Background()

	detail, err := h.service.Create(ctx, validInput("Classic Tee", "Red"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if detail.Category.Name != "Male" || detail.Type.Name != "Shirt" ||
		detail.Size.Name != "M" || detail.Color.Name != "Red" {
		t.Errorf("Attributes resolved incorrectly: %+v", detail)
	}
	if detail.Group.Slug != "classic-tee" {
		t.Errorf("Expected group slug classic-tee, got %q", detail.Group.Slug)
	}
}

func TestCatalogService_CreateRejectsUnknownAttributes(t *testing.T) {
	h := newCatalogHarness()
	ctx := context.Background()

	cases := []struct {
		name    string
		mutate  func(*ProductInput)
		wantErr error
	}{
		{"unknown category", func(in *ProductInput) { in.Category = "Alien" }, repository.ErrCategoryNotFound},
		{"unknown type", func(in *ProductInput) { in.Type = "Hat" }, repository.ErrProductTypeNotFound},
		{"unknown color", func(in *ProductInput) { in.Color = "Chartreuse" }, repository.ErrColorNotFound},
		{"size not under type", func(in *ProductInput) { in.Size = "XXL" }, ErrInvalidSize},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput("Classic Tee", "Red")
			tc.mutate(&input)
			if _, err := h.service.Create(ctx, input); !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected %v, got: %v", tc.wantErr, err)
			}
		})
	}
}

func TestCatalogService_SizeScopedToType(t *testing.T) {
	h := newCatalogHarness()
	ctx := context.Background()

	// "S" is a shirt size but not a pants size
	input := validInput("Slim Pants", "Red")
	input.Type = "Pants"
	input.Size = "S"
	if _, err := h.service.Create(ctx, input); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Expected ErrInvalidSize for size from another type, got: %v", err)
	}

	input.Size = "M"
	if _, err := h.service.Create(ctx, input); err != nil {
		t.Errorf("Size valid under its own type should pass: %v", err)
	}
}

func TestCatalogService_CreateRejectsInvalidInput(t *testing.T) {
	h := newCatalogHarness()
	ctx := context.Background()

	negativePrice := validInput("Classic Tee", "Red")
	negativePrice.Price = decimal.NewFromFloat(-1)
	if _, err := h.service.Create(ctx, negativePrice); !errors.Is(err, ErrNegativePrice) {
		t.Errorf("Expected ErrNegativePrice, got: %v", err)
	}

	negativeStock := validInput("Classic Tee", "Red")
	negativeStock.Stock = -3
	if _, err := h.service.Create(ctx, negativeStock); !errors.Is(err, ErrNegativeStock) {
		t.Errorf("Expected ErrNegativeStock, got: %v", err)
	}

	emptySlug := validInput("!!!", "Red")
	if _, err := h.service.Create(ctx, emptySlug); !errors.Is(err, ErrEmptySlug) {
		t.Errorf("Expected ErrEmptySlug for symbol-only name, got: %v", err)
	}
}

func TestCatalogService_SharedGroupLabelJoinsVariants(t *testing.T) {
	h := newCatalogHarness()
	ctx := context.Background()

	red := validInput("Classic Tee Red Edition", "Red")
	red.Group = "Classic Tee"
	blue := validInput("Classic Tee Blue Edition", "Blue")
	blue.Group = "Classic Tee"

	first, err := h.service.Create(ctx, red)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := h.service.Create(ctx, blue)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if first.GroupID != second.GroupID {
		t.Errorf("Same label should share a group, got %s and %s", first.GroupID, second.GroupID)
	}

	listing, err := h.service.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(listing) != 1 {
		t.Fatalf("Expected one grouped entry, got %d", len(listing))
	}
	if len(listing[0].AvailableColors) != 2 {
		t.Errorf("Expected two available colors, got %+v", listing[0].AvailableColors)
	}
}

func TestCatalogService_ImplicitGroupFromName(t *testing.T) {
	h := newCatalogHarness()
	ctx := context.Background()

	// No explicit label: two products with the same name join implicitly
	first, err := h.service.Create(ctx, validInput("Classic Tee", "Red"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := h.service.Create(ctx, validInput("Classic Tee", "Blue"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if first.GroupID != second.GroupID {
		t.Errorf("Identical names should share a group, got %s and %s", first.GroupID, second.GroupID)
	}
}

func TestCatalogService_RepresentativeIsFirstColor(t *testing.T) {
	h := newCatalogHarness()
	ctx := context.Background()

	// Insert Red before Black; Black sorts first and must be the
	// representative regardless of insertion order
	if _, err := h.service.Create(ctx, validInput("Classic Tee", "Red")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	black, err := h.service.Create(ctx, validInput("Classic Tee", "Black"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	listing, err := h.service.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(listing) != 1 {
		t.Fatalf("Expected one grouped entry, got %d", len(listing))
	}
	if listing[0].ID != black.ID {
		t.Errorf("Expected representative %s (Black), got %s", black.ID, listing[0].ID)
	}
	if listing[0].AvailableColors[0].Name != "Black" {
		t.Errorf("Colors not ordered: %+v", listing[0].AvailableColors)
	}
}

func TestCatalogService_GetBySlugAndColor(t *testing.T) {
	h := newCatalogHarness()
	ctx := context.Background()

	created, err := h.service.Create(ctx, validInput("Classic Tee", "Blue"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	detail, err := h.service.GetBySlugAndColor(ctx, "classic-tee", "Blue")
	if err != nil {
		t.Fatalf("GetBySlugAndColor failed: %v", err)
	}
	if detail.ID != created.ID {
		t.Errorf("Expected product %s, got %s", created.ID, detail.ID)
	}

	// Detail URLs built from the listing carry the color lowercased;
	// the lookup must still resolve it
	detail, err = h.service.GetBySlugAndColor(ctx, "classic-tee", "blue")
	if err != nil {
		t.Fatalf("GetBySlugAndColor with lowercased color failed: %v", err)
	}
	if detail.ID != created.ID {
		t.Errorf("Expected product %s for lowercased color, got %s", created.ID, detail.ID)
	}

	// Missing color, missing slug and missing member all collapse to
	// a plain not-found
	for _, tc := range []struct{ slug, color string }{
		{"classic-tee", "Chartreuse"},
		{"no-such-slug", "Blue"},
		{"classic-tee", "Red"},
	} {
		if _, err := h.service.GetBySlugAndColor(ctx, tc.slug, tc.color); !errors.Is(err, repository.ErrProductNotFound) {
			t.Errorf("GetBySlugAndColor(%q, %q): expected ErrProductNotFound, got %v", tc.slug, tc.color, err)
		}
	}
}

func TestCatalogService_UpdateReassignsAttributesKeepsGroup(t *testing.T) {
	h := newCatalogHarness()
	ctx := context.Background()

	created, err := h.service.Create(ctx, validInput("Classic Tee", "Red"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	update := validInput("Renamed Tee", "Blue")
	update.Category = "Female"
	updated, err := h.service.Update(ctx, created.ID, update)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Category.Name != "Female" || updated.Color.Name != "Blue" {
		t.Errorf("Attributes not reassigned: %+v", updated)
	}
	if updated.GroupID != created.GroupID {
		t.Errorf("Group must not change on update: %s became %s", created.GroupID, updated.GroupID)
	}

	if _, err := h.service.Update(ctx, uuid.New(), update); !errors.Is(err, repository.ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound for unknown id, got: %v", err)
	}
}

func TestCatalogService_DeleteHidesEmptyGroup(t *testing.T) {
	h := newCatalogHarness()
	ctx := context.Background()

	created, err := h.service.Create(ctx, validInput("Classic Tee", "Red"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := h.service.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	listing, err := h.service.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(listing) != 0 {
		t.Errorf("Empty group must not appear in listing: %+v", listing)
	}

	// The group row itself survives for reuse
	deps, err := h.service.Dependencies(ctx)
	if err != nil {
		t.Fatalf("Dependencies failed: %v", err)
	}
	if len(deps.Groups) != 1 {
		t.Errorf("Expected group to persist after delete, got %d groups", len(deps.Groups))
	}

	if err := h.service.Delete(ctx, created.ID); !errors.Is(err, repository.ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound on repeat delete, got: %v", err)
	}
}

func TestCatalogService_Dependencies(t *testing.T) {
	h := newCatalogHarness()
	ctx := context.Background()

	deps, err := h.service.Dependencies(ctx)
	if err != nil {
		t.Fatalf("Dependencies failed: %v", err)
	}

	if len(deps.Categories) != 2 || len(deps.Types) != 2 || len(deps.Colors) != 3 {
		t.Errorf("Unexpected catalog sizes: %d categories, %d types, %d colors",
			len(deps.Categories), len(deps.Types), len(deps.Colors))
	}
	for _, pt := range deps.Types {
		if pt.Name == "Shirt" && len(pt.Sizes) != 3 {
			t.Errorf("Expected 3 shirt sizes, got %d", len(pt.Sizes))
		}
	}
}

// Property: group labels that differ only in case, underscores or
// surrounding spaces land in the same group
func TestProperty_EquivalentLabelsShareGroup(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("label variants converge on one group", prop.ForAll(
		func(word string) bool {
			h := newCatalogHarness()
			ctx := context.Background()

			plain := validInput("Base Product", "Red")
			plain.Group = word + " tee"

			variant := validInput("Other Product", "Blue")
			variant.Group = "  " + word + "_TEE "

			first, err := h.service.Create(ctx, plain)
			if err != nil {
				t.Logf("FAIL: create: %v", err)
				return false
			}
			second, err := h.service.Create(ctx, variant)
			if err != nil {
				t.Logf("FAIL: create variant: %v", err)
				return false
			}

			return first.GroupID == second.GroupID
		},
		gen.RegexMatch(`[a-z]{3,10}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
