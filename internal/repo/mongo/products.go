package mongorepo

import (
	"context"
	"errors"
	"time"

	"github.com/mercatodev/storefront/internal/apperr"
	"github.com/mercatodev/storefront/internal/domain/product"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProductsRepo struct {
	collection *mongo.Collection
}

func NewProductsRepo(database *mongo.Database) *ProductsRepo {
	return &ProductsRepo{collection: database.Collection("products")}
}

func (r *ProductsRepo) List(ctx context.Context) ([]product.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})

	if err != nil {
		return nil, err
	}

	defer cursor.Close(ctx)

	products := []product.Product{}

	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *ProductsRepo) GetByID(ctx context.Context, id string) (product.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		return product.Product{}, apperr.ErrMalformedID
	}

	var p product.Product

	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return product.Product{}, ErrProductNotFound
		}

		return product.Product{}, err
	}
	return p, nil
}

// GetByIDs loads several products at once, keyed by id, for the cart join.
func (r *ProductsRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]product.Product, error) {
	out := make(map[primitive.ObjectID]product.Product, len(ids))

	if len(ids) == 0 {
		return out, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})

	if err != nil {
		return nil, err
	}

	defer cursor.Close(ctx)

	var products []product.Product

	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	for _, p := range products {
		out[p.ID] = p
	}

	return out, nil
}

func (r *ProductsRepo) Create(ctx context.Context, p product.Product) (product.Product, error) {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	res, err := r.collection.InsertOne(ctx, p)

	if err != nil {
		return product.Product{}, err
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = id
	}

	return p, nil
}

// Update applies only the fields the request provided and returns the
// refreshed product.
func (r *ProductsRepo) Update(ctx context.Context, id string, req product.UpdateRequest) (product.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		return product.Product{}, apperr.ErrMalformedID
	}

	set := bson.M{}

	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Price != nil {
		set["price"] = *req.Price
	}
	if req.Discount != nil {
		set["discount"] = *req.Discount
	}
	if req.Stock != nil {
		set["stock"] = *req.Stock
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}

	set["updated_at"] = time.Now().UTC()

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})

	if err != nil {
		return product.Product{}, err
	}

	if res.MatchedCount == 0 {
		return product.Product{}, ErrProductNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *ProductsRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		return apperr.ErrMalformedID
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})

	if err != nil {
		return err
	}

	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}

	return nil
}
