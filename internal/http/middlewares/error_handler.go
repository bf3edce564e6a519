package middlewares

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/mercatodev/storefront/internal/apperr"
)

// ErrorHandler is the terminal error translator. Handlers attach typed
// failures with ctx.Error and return; after the chain runs, the last
// error is mapped to a status and a uniform {success, message} envelope.
// If a response has already been written, nothing more is sent.
//
// Mapping priority:
//  1. explicit status (*apperr.Error)
//  2. malformed identifier -> 400 "Resource not found"
//  3. uniqueness violation -> 400 "<Field> already exists"
//  4. field validation     -> 400, messages joined with ", "
//  5. anything else        -> 500 "Server Error"
func ErrorHandler(env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		if c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, message := translate(err)

		body := gin.H{
			"success": false,
			"message": message,
		}

		if env == "dev" {
			body["detail"] = err.Error()
		}

		c.JSON(status, body)
	}
}

func translate(err error) (int, string) {
	var ae *apperr.Error

	if errors.As(err, &ae) {
		return ae.Status, ae.Message
	}

	if errors.Is(err, apperr.ErrMalformedID) {
		// wording kept from the legacy API
		return http.StatusBadRequest, "Resource not found"
	}

	var de *apperr.DuplicateError

	if errors.As(err, &de) {
		if de.Field == "" {
			return http.StatusBadRequest, "Duplicate entry"
		}

		return http.StatusBadRequest, capitalize(de.Field) + " already exists"
	}

	var ve *apperr.ValidationError

	if errors.As(err, &ve) {
		return http.StatusBadRequest, strings.Join(ve.Messages, ", ")
	}

	return http.StatusInternalServerError, "Server Error"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])

	return string(runes)
}
