package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"wardrobe/internal/domain"
	"wardrobe/internal/repository"

	"github.com/google/uuid"
)

// memStore is a shared in-memory backing store for the mock
// repositories. Catalog tests wire every repository to one store so
// cross-repository lookups resolve consistently.
type memStore struct {
	mu         sync.Mutex
	users      map[uuid.UUID]*domain.User
	categories map[uuid.UUID]*domain.Category
	types      map[uuid.UUID]*domain.ProductType
	sizes      map[uuid.UUID]*domain.Size
	colors     map[uuid.UUID]*domain.Color
	groups     map[uuid.UUID]*domain.ProductGroup
	products   map[uuid.UUID]*domain.Product
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[uuid.UUID]*domain.User{},
		categories: map[uuid.UUID]*domain.Category{},
		types:      map[uuid.UUID]*domain.ProductType{},
		sizes:      map[uuid.UUID]*domain.Size{},
		colors:     map[uuid.UUID]*domain.Color{},
		groups:     map[uuid.UUID]*domain.ProductGroup{},
		products:   map[uuid.UUID]*domain.Product{},
	}
}

func (s *memStore) addCategory(name string) *domain.Category {
	c := &domain.Category{ID: uuid.New(), Name: name, CreatedAt: time.Now()}
	s.categories[c.ID] = c
	return c
}

func (s *memStore) addType(name string, sizes ...string) *domain.ProductType {
	t := &domain.ProductType{ID: uuid.New(), Name: name, CreatedAt: time.Now()}
	s.types[t.ID] = t
	for _, name := range sizes {
		sz := &domain.Size{ID: uuid.New(), ProductTypeID: t.ID, Name: name}
		s.sizes[sz.ID] = sz
	}
	return t
}

func (s *memStore) addColor(name, hex string) *domain.Color {
	c := &domain.Color{ID: uuid.New(), Name: name, HexCode: hex}
	s.colors[c.ID] = c
	return c
}

func (s *memStore) detail(p *domain.Product) *domain.ProductDetail {
	return &domain.ProductDetail{
		Product:  *p,
		Category: s.categories[p.CategoryID],
		Type:     s.types[p.TypeID],
		Size:     s.sizes[p.SizeID],
		Color:    s.colors[p.ColorID],
		Group:    s.groups[p.GroupID],
	}
}

type mockCategoryRepo struct{ store *memStore }

func (r *mockCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.categories[category.ID] = category
	return nil
}

func (r *mockCategoryRepo) List(_ context.Context) ([]*domain.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := []*domain.Category{}
	for _, c := range r.store.categories {
		out = append(out, c)
	}
	return out, nil
}

func (r *mockCategoryRepo) FindByName(_ context.Context, name string) (*domain.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, c := range r.store.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, repository.ErrCategoryNotFound
}

type mockProductTypeRepo struct{ store *memStore }

func (r *mockProductTypeRepo) Create(_ context.Context, productType *domain.ProductType) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.types[productType.ID] = productType
	return nil
}

func (r *mockProductTypeRepo) CreateSize(_ context.Context, size *domain.Size) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.sizes[size.ID] = size
	return nil
}

func (r *mockProductTypeRepo) FindByName(_ context.Context, name string) (*domain.ProductType, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, t := range r.store.types {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, repository.ErrProductTypeNotFound
}

func (r *mockProductTypeRepo) FindSize(_ context.Context, typeID uuid.UUID, sizeName string) (*domain.Size, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range r.store.sizes {
		if s.ProductTypeID == typeID && s.Name == sizeName {
			return s, nil
		}
	}
	return nil, repository.ErrSizeNotFound
}

func (r *mockProductTypeRepo) ListWithSizes(_ context.Context) ([]*domain.ProductTypeWithSizes, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := []*domain.ProductTypeWithSizes{}
	for _, t := range r.store.types {
		entry := &domain.ProductTypeWithSizes{ProductType: *t, Sizes: []*domain.Size{}}
		for _, s := range r.store.sizes {
			if s.ProductTypeID == t.ID {
				entry.Sizes = append(entry.Sizes, s)
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

type mockColorRepo struct{ store *memStore }

func (r *mockColorRepo) Create(_ context.Context, color *domain.Color) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.colors[color.ID] = color
	return nil
}

func (r *mockColorRepo) List(_ context.Context) ([]*domain.Color, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := []*domain.Color{}
	for _, c := range r.store.colors {
		out = append(out, c)
	}
	return out, nil
}

// FindByName matches case-insensitively like the real repository
func (r *mockColorRepo) FindByName(_ context.Context, name string) (*domain.Color, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, c := range r.store.colors {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, repository.ErrColorNotFound
}

type mockProductGroupRepo struct{ store *memStore }

func (r *mockProductGroupRepo) FindOrCreate(_ context.Context, slug string) (*domain.ProductGroup, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, g := range r.store.groups {
		if g.Slug == slug {
			return g, nil
		}
	}
	g := &domain.ProductGroup{ID: uuid.New(), Slug: slug, CreatedAt: time.Now()}
	r.store.groups[g.ID] = g
	return g, nil
}

func (r *mockProductGroupRepo) FindBySlug(_ context.Context, slug string) (*domain.ProductGroup, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, g := range r.store.groups {
		if g.Slug == slug {
			return g, nil
		}
	}
	return nil, repository.ErrGroupNotFound
}

func (r *mockProductGroupRepo) List(_ context.Context) ([]*domain.ProductGroup, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := []*domain.ProductGroup{}
	for _, g := range r.store.groups {
		out = append(out, g)
	}
	return out, nil
}

type mockProductRepo struct{ store *memStore }

func (r *mockProductRepo) Create(_ context.Context, product *domain.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *product
	r.store.products[product.ID] = &clone
	return nil
}

func (r *mockProductRepo) Update(_ context.Context, product *domain.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	clone := *product
	r.store.products[product.ID] = &clone
	return nil
}

func (r *mockProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(r.store.products, id)
	return nil
}

func (r *mockProductRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *mockProductRepo) FindDetail(_ context.Context, id uuid.UUID) (*domain.ProductDetail, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return r.store.detail(p), nil
}

func (r *mockProductRepo) FindByGroupAndColor(_ context.Context, groupID, colorID uuid.UUID) (*domain.ProductDetail, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.products {
		if p.GroupID == groupID && p.ColorID == colorID {
			return r.store.detail(p), nil
		}
	}
	return nil, repository.ErrProductNotFound
}

// ListDetails mirrors the persistence ordering: group slug first,
// then color name within the group.
func (r *mockProductRepo) ListDetails(_ context.Context) ([]*domain.ProductDetail, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := []*domain.ProductDetail{}
	for _, p := range r.store.products {
		out = append(out, r.store.detail(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Group.Slug != out[j].Group.Slug {
			return out[i].Group.Slug < out[j].Group.Slug
		}
		return out[i].Color.Name < out[j].Color.Name
	})
	return out, nil
}

type mockUserRepo struct{ store *memStore }

func (r *mockUserRepo) Create(_ context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
		if u.Username == user.Username {
			return repository.ErrUsernameTaken
		}
	}
	clone := *user
	r.store.users[user.ID] = &clone
	return nil
}

func (r *mockUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *mockUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *mockUserRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

// catalogHarness bundles a populated store with a wired service
type catalogHarness struct {
	store   *memStore
	service CatalogService
}

func newCatalogHarness() *catalogHarness {
	store := newMemStore()
	store.addCategory("Male")
	store.addCategory("Female")
	store.addType("Shirt", "S", "M", "L")
	store.addType("Pants", "M", "L")
	store.addColor("Red", "FF0000")
	store.addColor("Blue", "0000FF")
	store.addColor("Black", "000000")

	categoryRepo := &mockCategoryRepo{store: store}
	typeRepo := &mockProductTypeRepo{store: store}
	colorRepo := &mockColorRepo{store: store}
	validator := NewCatalogValidator(categoryRepo, typeRepo, colorRepo)

	svc := NewCatalogService(
		validator,
		&mockProductRepo{store: store},
		&mockProductGroupRepo{store: store},
		categoryRepo,
		typeRepo,
		colorRepo,
	)

	return &catalogHarness{store: store, service: svc}
}
