package mongorepo

import (
	"errors"
	"strings"

	"github.com/mercatodev/storefront/internal/apperr"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrCartNotFound    = errors.New("cart not found")
	ErrItemNotFound    = errors.New("item not found in cart")
)

// asDuplicate converts a Mongo duplicate-key error into a DuplicateError
// naming the offending field, extracted from the index name embedded in
// the server message ("index: email_1 dup key: ...").
func asDuplicate(err error) error {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return err
	}

	return &apperr.DuplicateError{Field: duplicateField(err)}
}

func duplicateField(err error) string {
	var we mongo.WriteException

	if !errors.As(err, &we) {
		return ""
	}

	for _, e := range we.WriteErrors {
		if e.Code != 11000 {
			continue
		}

		_, after, found := strings.Cut(e.Message, "index: ")
		if !found {
			continue
		}

		name, _, _ := strings.Cut(after, " ")
		field, _, _ := strings.Cut(name, "_")

		return field
	}

	return ""
}
