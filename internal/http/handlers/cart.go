package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mercatodev/storefront/internal/apperr"
	"github.com/mercatodev/storefront/internal/config"
	"github.com/mercatodev/storefront/internal/domain/cart"
	"github.com/mercatodev/storefront/internal/domain/product"
	"github.com/mercatodev/storefront/internal/http/middlewares"
	mongorepo "github.com/mercatodev/storefront/internal/repo/mongo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartStore interface {
	GetOrCreate(ctx context.Context, userID primitive.ObjectID) (cart.Cart, error)
	AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) error
	RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) error
}

type ProductReader interface {
	GetByID(ctx context.Context, id string) (product.Product, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]product.Product, error)
}

type CartHandler struct {
	carts    CartStore
	products ProductReader
}

func NewCartHandler(carts CartStore, products ProductReader) *CartHandler {
	return &CartHandler{carts: carts, products: products}
}

type addToCartRequest struct {
	Quantity int `json:"quantity" binding:"omitempty,gte=1"`
}

func (h *CartHandler) GetCart(ctx *gin.Context) {
	u, ok := middlewares.CurrentUser(ctx)

	if !ok {
		Fail(ctx, apperr.Unauthorized("Missing identity"))
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	view, err := h.cartView(cctx, u.ID)

	if err != nil {
		Fail(ctx, err)
		return
	}

	OK(ctx, http.StatusOK, gin.H{"data": view})
}

func (h *CartHandler) AddToCart(ctx *gin.Context) {
	u, ok := middlewares.CurrentUser(ctx)

	if !ok {
		Fail(ctx, apperr.Unauthorized("Missing identity"))
		return
	}

	productID := ctx.Param("productId")

	if !validObjectID(ctx, productID) {
		return
	}

	quantity := 1

	// ContentLength is -1 for chunked bodies, so only a known-empty body
	// skips the bind; EOF on a chunked request means no body either.
	if ctx.Request.ContentLength != 0 {
		var req addToCartRequest

		if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			Fail(ctx, &apperr.ValidationError{Messages: bindMessages(err)})
			return
		}

		if req.Quantity > 0 {
			quantity = req.Quantity
		}
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	p, err := h.products.GetByID(cctx, productID)

	if err != nil {
		if errors.Is(err, mongorepo.ErrProductNotFound) {
			Fail(ctx, apperr.NotFound("Product not found"))
			return
		}

		Fail(ctx, err)
		return
	}

	if err := h.carts.AddItem(cctx, u.ID, p.ID, quantity); err != nil {
		Fail(ctx, err)
		return
	}

	view, err := h.cartView(cctx, u.ID)

	if err != nil {
		Fail(ctx, err)
		return
	}

	OK(ctx, http.StatusOK, gin.H{
		"message": "Product added to cart successfully",
		"data":    view,
	})
}

func (h *CartHandler) RemoveFromCart(ctx *gin.Context) {
	u, ok := middlewares.CurrentUser(ctx)

	if !ok {
		Fail(ctx, apperr.Unauthorized("Missing identity"))
		return
	}

	productID := ctx.Param("productId")

	if !validObjectID(ctx, productID) {
		return
	}

	oid, _ := primitive.ObjectIDFromHex(productID)

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.carts.RemoveItem(cctx, u.ID, oid)

	if err != nil {
		switch {
		case errors.Is(err, mongorepo.ErrCartNotFound):
			Fail(ctx, apperr.NotFound("Cart not found"))
		case errors.Is(err, mongorepo.ErrItemNotFound):
			Fail(ctx, apperr.NotFound("Product not found in cart"))
		default:
			Fail(ctx, err)
		}
		return
	}

	view, err := h.cartView(cctx, u.ID)

	if err != nil {
		Fail(ctx, err)
		return
	}

	OK(ctx, http.StatusOK, gin.H{
		"message": "Product removed from cart successfully",
		"data":    view,
	})
}

// cartView does the find-or-create plus the product join: every response
// reflects the freshly persisted cart, shaped identically across get,
// add and remove.
func (h *CartHandler) cartView(ctx context.Context, userID primitive.ObjectID) (cart.View, error) {
	c, err := h.carts.GetOrCreate(ctx, userID)

	if err != nil {
		return cart.View{}, err
	}

	ids := make([]primitive.ObjectID, 0, len(c.Items))

	for _, it := range c.Items {
		ids = append(ids, it.Product)
	}

	products, err := h.products.GetByIDs(ctx, ids)

	if err != nil {
		return cart.View{}, err
	}

	return c.Resolve(products), nil
}
