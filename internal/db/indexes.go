package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique indexes backing the data invariants:
// one account per email, one per phone, one cart per user. Duplicate-key
// errors from these indexes are the uniqueness signal the error
// translator maps to "<Field> already exists".
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	users := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_1"),
		},
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("phone_1"),
		},
	}

	if _, err := database.Collection("users").Indexes().CreateMany(ctx, users); err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}

	carts := mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("user_1"),
	}

	if _, err := database.Collection("carts").Indexes().CreateOne(ctx, carts); err != nil {
		return fmt.Errorf("create cart index: %w", err)
	}

	return nil
}
