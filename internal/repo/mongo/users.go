package mongorepo

import (
	"context"
	"errors"
	"time"

	"github.com/mercatodev/storefront/internal/apperr"
	"github.com/mercatodev/storefront/internal/domain/user"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UsersRepo struct {
	collection *mongo.Collection
}

func NewUsersRepo(database *mongo.Database) *UsersRepo {
	return &UsersRepo{collection: database.Collection("users")}
}

func (r *UsersRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	res, err := r.collection.InsertOne(ctx, u)

	if err != nil {
		return user.User{}, asDuplicate(err)
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = id
	}

	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		return user.User{}, apperr.ErrMalformedID
	}

	var u user.User

	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&u)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, ErrUserNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) GetByPhone(ctx context.Context, phone string) (user.User, error) {
	var u user.User

	err := r.collection.FindOne(ctx, bson.M{"phone": phone}).Decode(&u)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, ErrUserNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

// ExistsByEmailOrPhone covers both uniqueness checks with a single $or
// query, so signup reports Conflict no matter which field collided.
func (r *UsersRepo) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"phone": phone},
	}}

	err := r.collection.FindOne(ctx, filter).Err()

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}
