package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/mercatodev/storefront/internal/domain/product"
	"github.com/mercatodev/storefront/internal/http/handlers"
	mongorepo "github.com/mercatodev/storefront/internal/repo/mongo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fake implementation of the handlers.ProductStore interface

type fakeProductStore struct {
	listFn   func(ctx context.Context) ([]product.Product, error)
	getFn    func(ctx context.Context, id string) (product.Product, error)
	createFn func(ctx context.Context, p product.Product) (product.Product, error)
	updateFn func(ctx context.Context, id string, req product.UpdateRequest) (product.Product, error)
	deleteFn func(ctx context.Context, id string) error
}

func (f *fakeProductStore) List(ctx context.Context) ([]product.Product, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return []product.Product{}, nil
}

func (f *fakeProductStore) GetByID(ctx context.Context, id string) (product.Product, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return product.Product{}, mongorepo.ErrProductNotFound
}

func (f *fakeProductStore) Create(ctx context.Context, p product.Product) (product.Product, error) {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}

	p.ID = primitive.NewObjectID()
	return p, nil
}

func (f *fakeProductStore) Update(ctx context.Context, id string, req product.UpdateRequest) (product.Product, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, req)
	}
	return product.Product{}, mongorepo.ErrProductNotFound
}

func (f *fakeProductStore) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func TestListProducts(t *testing.T) {
	store := &fakeProductStore{
		listFn: func(ctx context.Context) ([]product.Product, error) {
			return []product.Product{
				{ID: primitive.NewObjectID(), Name: "Keyboard", Price: 100, Discount: 25},
				{ID: primitive.NewObjectID(), Name: "Mouse", Price: 50},
			}, nil
		},
	}

	h := handlers.NewProductsHandler(store)
	r := setupRouter(http.MethodGet, "/api/products", h.ListProducts)

	w := doJSON(t, r, http.MethodGet, "/api/products", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)

	if body["count"] != float64(2) {
		t.Errorf("count = %v, want 2", body["count"])
	}

	data := body["data"].([]any)
	first := data[0].(map[string]any)

	if first["discountedPrice"] != float64(75) {
		t.Errorf("discountedPrice = %v, want 75", first["discountedPrice"])
	}

	second := data[1].(map[string]any)

	if second["discountedPrice"] != float64(50) {
		t.Errorf("discountedPrice = %v, want 50 when discount is 0", second["discountedPrice"])
	}
}

func TestGetProductByID(t *testing.T) {
	pid := primitive.NewObjectID()

	store := &fakeProductStore{
		getFn: func(ctx context.Context, id string) (product.Product, error) {
			if id == pid.Hex() {
				return product.Product{ID: pid, Name: "Keyboard", Price: 100}, nil
			}
			return product.Product{}, mongorepo.ErrProductNotFound
		},
	}

	h := handlers.NewProductsHandler(store)
	r := setupRouter(http.MethodGet, "/api/products/:id", h.GetProductByID)

	tests := []struct {
		name       string
		id         string
		wantStatus int
	}{
		{name: "found", id: pid.Hex(), wantStatus: http.StatusOK},
		{name: "missing", id: primitive.NewObjectID().Hex(), wantStatus: http.StatusNotFound},
		{name: "malformed id", id: "nope", wantStatus: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodGet, "/api/products/"+tc.id, "")

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tc.wantStatus, w.Body.String())
			}
		})
	}
}

func TestCreateProduct(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "success",
			body:       `{"name":"Keyboard","price":100,"discount":25,"stock":10,"category":"accessories"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "zero price is valid",
			body:       `{"name":"Sticker","price":0}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing price",
			body:       `{"name":"Keyboard"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing name",
			body:       `{"price":10}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "discount above 100",
			body:       `{"name":"Keyboard","price":100,"discount":120}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := handlers.NewProductsHandler(&fakeProductStore{})
			r := setupRouter(http.MethodPost, "/api/products", h.CreateProduct)

			w := doJSON(t, r, http.MethodPost, "/api/products", tc.body)

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tc.wantStatus, w.Body.String())
			}
		})
	}
}

func TestUpdateProductOnlyTouchesProvidedFields(t *testing.T) {
	pid := primitive.NewObjectID()

	var gotReq product.UpdateRequest

	store := &fakeProductStore{
		updateFn: func(ctx context.Context, id string, req product.UpdateRequest) (product.Product, error) {
			gotReq = req
			return product.Product{ID: pid, Name: "Keyboard", Price: 80}, nil
		},
	}

	h := handlers.NewProductsHandler(store)
	r := setupRouter(http.MethodPut, "/api/products/:id", h.UpdateProduct)

	w := doJSON(t, r, http.MethodPut, "/api/products/"+pid.Hex(), `{"price":80}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
	}

	if gotReq.Price == nil || *gotReq.Price != 80 {
		t.Errorf("price not forwarded: %+v", gotReq)
	}

	if gotReq.Name != nil || gotReq.Discount != nil || gotReq.Stock != nil {
		t.Errorf("unprovided fields should stay nil: %+v", gotReq)
	}
}

func TestDeleteProduct(t *testing.T) {
	pid := primitive.NewObjectID()

	store := &fakeProductStore{
		deleteFn: func(ctx context.Context, id string) error {
			if id == pid.Hex() {
				return nil
			}
			return mongorepo.ErrProductNotFound
		},
	}

	h := handlers.NewProductsHandler(store)
	r := setupRouter(http.MethodDelete, "/api/products/:id", h.DeleteProduct)

	w := doJSON(t, r, http.MethodDelete, "/api/products/"+pid.Hex(), "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, "/api/products/"+primitive.NewObjectID().Hex(), "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 (body %s)", w.Code, w.Body.String())
	}
}
