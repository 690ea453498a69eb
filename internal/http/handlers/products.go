package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stackmart/shophub/internal/cache"
	"github.com/stackmart/shophub/internal/domain/product"
)

const productsCacheNS = "products"

type ProductsRepository interface {
	List(ctx context.Context, query string) ([]product.Product, error)
	GetByID(ctx context.Context, id string) (product.Product, error)
	Create(ctx context.Context, p product.Product) (product.Product, error)
	Update(ctx context.Context, id string, req product.UpdateProductRequest) (product.Product, error)
	Delete(ctx context.Context, id string) error
}

type ProductsHandler struct {
	repo  ProductsRepository
	cache cache.Store
}

func NewProductsHandler(repo ProductsRepository) *ProductsHandler {
	return &ProductsHandler{repo: repo}
}

func NewProductsHandlerWithCache(repo ProductsRepository, store cache.Store) *ProductsHandler {
	return &ProductsHandler{repo: repo, cache: store}
}

// ListProducts serves from the read-through cache when possible. Cache keys
// are versioned per namespace, so writes invalidate every filtered variant
// at once.
func (h *ProductsHandler) ListProducts(ctx *gin.Context) {
	rc := ctx.Request.Context()
	query := ctx.Query("q")

	var key string

	if h.cache != nil {
		key = cache.ListKey(productsCacheNS, h.cache.Version(rc, productsCacheNS), query)

		if body, ok := h.cache.Get(rc, key); ok {
			RespondRawJSONWithETag(ctx, http.StatusOK, body)
			return
		}
	}

	products, err := h.repo.List(rc, query)

	if err != nil {
		RespondInternal(ctx, "Could not list products", err)
		return
	}

	body, err := json.Marshal(products)

	if err != nil {
		RespondInternal(ctx, "Could not list products", err)
		return
	}

	if h.cache != nil {
		h.cache.Set(rc, key, body)
	}

	RespondRawJSONWithETag(ctx, http.StatusOK, body)
}

func (h *ProductsHandler) GetProductById(ctx *gin.Context) {
	p, err := h.repo.GetByID(ctx.Request.Context(), ctx.Param("id"))

	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			RespondNotFound(ctx, "No valid entry found for provided ID")
			return
		}

		RespondInternal(ctx, "Could not fetch product", err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, p)
}

func (h *ProductsHandler) CreateProduct(ctx *gin.Context) {
	var req product.CreateProductRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.Name == "" {
		RespondBadRequest(ctx, "Name is required")
		return
	}

	if req.Price == nil {
		RespondBadRequest(ctx, "Price is required")
		return
	}

	if req.ImageURL == "" {
		RespondBadRequest(ctx, "ImageUrl is required")
		return
	}

	created, err := h.repo.Create(ctx.Request.Context(), product.NewFromCreateRequest(req))

	if err != nil {
		RespondInternal(ctx, "Could not create product", err)
		return
	}

	h.invalidate(ctx)

	ctx.JSON(http.StatusCreated, gin.H{
		"message":        "Created product successfully",
		"createdProduct": created,
	})
}

func (h *ProductsHandler) UpdateProduct(ctx *gin.Context) {
	var req product.UpdateProductRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.Empty() {
		RespondBadRequest(ctx, "You must provide at least one param to update (name, price, imageUrl)")
		return
	}

	updated, err := h.repo.Update(ctx.Request.Context(), ctx.Param("id"), req)

	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			RespondNotFound(ctx, "No valid entry found for provided ID")
			return
		}

		RespondInternal(ctx, "Could not update product", err)
		return
	}

	h.invalidate(ctx)

	ctx.JSON(http.StatusOK, updated)
}

func (h *ProductsHandler) DeleteProduct(ctx *gin.Context) {
	err := h.repo.Delete(ctx.Request.Context(), ctx.Param("id"))

	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			RespondNotFound(ctx, "Product not found")
			return
		}

		RespondInternal(ctx, "Could not delete product", err)
		return
	}

	h.invalidate(ctx)

	ctx.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

func (h *ProductsHandler) invalidate(ctx *gin.Context) {
	if h.cache != nil {
		h.cache.Bump(ctx.Request.Context(), productsCacheNS)
	}
}
