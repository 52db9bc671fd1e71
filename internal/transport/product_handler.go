package transport

import (
	"errors"
	"net/http"
	"strings"

	"wardrobe/internal/middleware"
	"wardrobe/internal/repository"
	"wardrobe/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductRequest represents the create/update product payload.
// Category, type, size, color and group are human-entered names; the
// service resolves them to persisted records.
type ProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"gte=0"`
	ImageURL    string          `json:"image_url"`
	Category    string          `json:"category" validate:"required"`
	Type        string          `json:"type" validate:"required"`
	Size        string          `json:"size" validate:"required"`
	Color       string          `json:"color" validate:"required"`
	Group       string          `json:"group"`
}

// ProductHandler handles HTTP requests for catalog operations
type ProductHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalogService service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes. Reads are public;
// mutations require an authenticated admin.
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/dependencies", h.Dependencies)
		r.Get("/{key}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(adminMiddleware)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// List returns the grouped product listing
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	grouped, err := h.catalogService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, grouped)
}

// Dependencies returns the reference catalogs for selection forms
func (h *ProductHandler) Dependencies(w http.ResponseWriter, r *http.Request) {
	deps, err := h.catalogService.Dependencies(r.Context())
	if err != nil {
		h.logger.Error("Failed to load catalog dependencies", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load dependencies")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, deps)
}

// Get returns a single product. The key is either a product ID or a
// slug-color pair; slugs may contain hyphens, so the color is
// whatever follows the last one.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	if id, err := uuid.Parse(key); err == nil {
		detail, err := h.catalogService.GetByID(r.Context(), id)
		if err != nil {
			h.respondCatalogError(w, err)
			return
		}
		middleware.RespondWithJSON(w, http.StatusOK, detail)
		return
	}

	idx := strings.LastIndex(key, "-")
	if idx <= 0 || idx == len(key)-1 {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	slug, colorName := key[:idx], key[idx+1:]
	detail, err := h.catalogService.GetBySlugAndColor(r.Context(), slug, colorName)
	if err != nil {
		h.respondCatalogError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, detail)
}

// Create handles product creation
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeProductRequest(w, r)
	if !ok {
		return
	}

	detail, err := h.catalogService.Create(r.Context(), toProductInput(req))
	if err != nil {
		h.respondCatalogError(w, err)
		return
	}

	h.logger.Info("Product created",
		zap.String("product_id", detail.ID.String()),
		zap.String("group_slug", detail.Group.Slug),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, detail)
}

// Update handles product updates
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	req, ok := h.decodeProductRequest(w, r)
	if !ok {
		return
	}

	detail, err := h.catalogService.Update(r.Context(), id, toProductInput(req))
	if err != nil {
		h.respondCatalogError(w, err)
		return
	}

	h.logger.Info("Product updated", zap.String("product_id", detail.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, detail)
}

// Delete handles product deletion
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	if err := h.catalogService.Delete(r.Context(), id); err != nil {
		h.respondCatalogError(w, err)
		return
	}

	h.logger.Info("Product deleted", zap.String("product_id", id.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func (h *ProductHandler) decodeProductRequest(w http.ResponseWriter, r *http.Request) (ProductRequest, bool) {
	var req ProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return req, false
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}

	return req, true
}

func (h *ProductHandler) respondCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, repository.ErrCategoryNotFound):
		middleware.RespondWithError(w, http.StatusBadRequest, "category not found")
	case errors.Is(err, repository.ErrProductTypeNotFound):
		middleware.RespondWithError(w, http.StatusBadRequest, "product type not found")
	case errors.Is(err, repository.ErrColorNotFound):
		middleware.RespondWithError(w, http.StatusBadRequest, "color not found")
	case errors.Is(err, service.ErrInvalidSize):
		middleware.RespondWithError(w, http.StatusBadRequest, "size is not valid for this product type")
	case errors.Is(err, service.ErrEmptySlug):
		middleware.RespondWithError(w, http.StatusBadRequest, "group label produces an empty slug")
	case errors.Is(err, service.ErrNegativePrice):
		middleware.RespondWithError(w, http.StatusBadRequest, "price must not be negative")
	case errors.Is(err, service.ErrNegativeStock):
		middleware.RespondWithError(w, http.StatusBadRequest, "stock must not be negative")
	default:
		h.logger.Error("Catalog operation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal error")
	}
}

func toProductInput(req ProductRequest) service.ProductInput {
	return service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Type:        req.Type,
		Size:        req.Size,
		Color:       req.Color,
		Group:       req.Group,
	}
}
