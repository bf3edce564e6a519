package mongorepo

import (
	"context"
	"time"

	"github.com/mercatodev/storefront/internal/domain/cart"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CartsRepo struct {
	collection *mongo.Collection
}

func NewCartsRepo(database *mongo.Database) *CartsRepo {
	return &CartsRepo{collection: database.Collection("carts")}
}

// GetOrCreate returns the user's cart, lazily creating an empty one on
// first access. A single upsert keeps the get-or-create idempotent; the
// unique index on user guarantees at most one cart per user.
func (r *CartsRepo) GetOrCreate(ctx context.Context, userID primitive.ObjectID) (cart.Cart, error) {
	now := time.Now().UTC()

	filter := bson.M{"user": userID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"items":      []cart.Item{},
			"created_at": now,
			"updated_at": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var c cart.Cart

	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&c)

	if err != nil {
		return cart.Cart{}, err
	}

	return c, nil
}

// Get returns the user's cart without creating one.
func (r *CartsRepo) Get(ctx context.Context, userID primitive.ObjectID) (cart.Cart, error) {
	var c cart.Cart

	err := r.collection.FindOne(ctx, bson.M{"user": userID}).Decode(&c)

	if err != nil {
		if err == mongo.ErrNoDocuments {
			return cart.Cart{}, ErrCartNotFound
		}

		return cart.Cart{}, err
	}

	return c, nil
}

// AddItem accumulates quantity on an existing line item, or appends a new
// one (creating the cart when needed). Each step is a single atomic
// update, so concurrent adds for the same product both land. The push
// filter excludes carts that already hold the product, so a pair of
// racing first-adds can never append the same item twice: the loser
// falls through and retries the accumulate step.
func (r *CartsRepo) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) error {
	now := time.Now().UTC()

	for {
		// Existing line item: accumulate.
		res, err := r.collection.UpdateOne(ctx,
			bson.M{"user": userID, "items.product": productID},
			bson.M{
				"$inc": bson.M{"items.$.quantity": quantity},
				"$set": bson.M{"updated_at": now},
			},
		)

		if err != nil {
			return err
		}

		if res.MatchedCount > 0 {
			return nil
		}

		// No such line item yet: append, creating the cart on first use.
		// The $ne guard keeps the item unique per cart.
		opts := options.Update().SetUpsert(true)

		pushRes, err := r.collection.UpdateOne(ctx,
			bson.M{"user": userID, "items.product": bson.M{"$ne": productID}},
			bson.M{
				"$push":        bson.M{"items": cart.Item{Product: productID, Quantity: quantity}},
				"$set":         bson.M{"updated_at": now},
				"$setOnInsert": bson.M{"created_at": now},
			},
			opts,
		)

		if err != nil {
			// The cart exists and already holds the item (a concurrent add
			// won the push; the upsert then trips the unique user index).
			// Go around and accumulate onto it.
			if mongo.IsDuplicateKeyError(err) {
				continue
			}

			return err
		}

		if pushRes.MatchedCount > 0 || pushRes.UpsertedCount > 0 {
			return nil
		}
	}
}

// RemoveItem deletes the line item wholesale. The two not-found cases are
// reported separately: no cart at all, or no such item in it.
func (r *CartsRepo) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"user": userID, "items.product": productID},
		bson.M{
			"$pull": bson.M{"items": bson.M{"product": productID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)

	if err != nil {
		return err
	}

	if res.MatchedCount > 0 {
		return nil
	}

	err = r.collection.FindOne(ctx, bson.M{"user": userID}).Err()

	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrCartNotFound
		}

		return err
	}

	return ErrItemNotFound
}
