package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mercatodev/storefront/internal/apperr"
	"github.com/mercatodev/storefront/internal/config"
	"github.com/mercatodev/storefront/internal/domain/product"
	mongorepo "github.com/mercatodev/storefront/internal/repo/mongo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductStore interface {
	List(ctx context.Context) ([]product.Product, error)
	GetByID(ctx context.Context, id string) (product.Product, error)
	Create(ctx context.Context, p product.Product) (product.Product, error)
	Update(ctx context.Context, id string, req product.UpdateRequest) (product.Product, error)
	Delete(ctx context.Context, id string) error
}

type ProductsHandler struct {
	repo ProductStore
}

func NewProductsHandler(repo ProductStore) *ProductsHandler {
	return &ProductsHandler{repo: repo}
}

func (h *ProductsHandler) ListProducts(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	products, err := h.repo.List(cctx)

	if err != nil {
		Fail(ctx, err)
		return
	}

	views := make([]product.View, 0, len(products))

	for _, p := range products {
		views = append(views, p.View())
	}

	OK(ctx, http.StatusOK, gin.H{
		"count": len(views),
		"data":  views,
	})
}

func (h *ProductsHandler) GetProductByID(ctx *gin.Context) {
	id := ctx.Param("id")

	if !validObjectID(ctx, id) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	p, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, mongorepo.ErrProductNotFound) {
			Fail(ctx, apperr.NotFound("Product not found"))
			return
		}

		Fail(ctx, err)
		return
	}

	OK(ctx, http.StatusOK, gin.H{"data": p.View()})
}

func (h *ProductsHandler) CreateProduct(ctx *gin.Context) {
	var req product.CreateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	created, err := h.repo.Create(cctx, product.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Discount:    req.Discount,
		Stock:       req.Stock,
		Category:    req.Category,
	})

	if err != nil {
		Fail(ctx, err)
		return
	}

	OK(ctx, http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"data":    created.View(),
	})
}

func (h *ProductsHandler) UpdateProduct(ctx *gin.Context) {
	id := ctx.Param("id")

	if !validObjectID(ctx, id) {
		return
	}

	var req product.UpdateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	updated, err := h.repo.Update(cctx, id, req)

	if err != nil {
		if errors.Is(err, mongorepo.ErrProductNotFound) {
			Fail(ctx, apperr.NotFound("Product not found"))
			return
		}

		Fail(ctx, err)
		return
	}

	OK(ctx, http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"data":    updated.View(),
	})
}

func (h *ProductsHandler) DeleteProduct(ctx *gin.Context) {
	id := ctx.Param("id")

	if !validObjectID(ctx, id) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, mongorepo.ErrProductNotFound) {
			Fail(ctx, apperr.NotFound("Product not found"))
			return
		}

		Fail(ctx, err)
		return
	}

	OK(ctx, http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// validObjectID rejects unparsable ids before any repo work, mirroring
// the legacy API's per-route "Invalid product ID" response.
func validObjectID(ctx *gin.Context, id string) bool {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		Fail(ctx, apperr.BadRequest("Invalid product ID"))
		return false
	}

	return true
}
