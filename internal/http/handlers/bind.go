package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/mercatodev/storefront/internal/apperr"
)

// BindJSON binds the request body and, on failure, routes a
// ValidationError through the translator so the client sees one 400 with
// all field messages joined.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	err := ctx.ShouldBindJSON(out)

	if err != nil {
		Fail(ctx, &apperr.ValidationError{Messages: bindMessages(err)})

		return false
	}

	return true
}

func bindMessages(err error) []string {
	var validatorErrors validator.ValidationErrors

	if !errors.As(err, &validatorErrors) {
		return []string{"Invalid request body"}
	}

	msgs := make([]string, 0, len(validatorErrors))

	for _, fe := range validatorErrors {
		msgs = append(msgs, strings.ToLower(fe.Field())+" "+validationMessage(fe.Tag(), fe.Param()))
	}

	return msgs
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	case "gte":
		return "must be at least " + param
	case "lte":
		return "must be at most " + param
	case "oneof":
		return "must be one of " + strings.ReplaceAll(param, " ", ", ")
	default:
		if param != "" {
			return "failed " + rule + " validation (" + param + ")"
		}
		return "failed " + rule + " validation"
	}
}
