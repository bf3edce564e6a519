package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DefaultBodyLimit caps JSON payloads well above anything the API's
// endpoints legitimately receive.
const DefaultBodyLimit int64 = 1 << 20

// BodyLimit bounds request body reads at limit bytes. An oversized
// payload makes the wrapped reader fail mid-bind, so it surfaces as a
// bind error instead of an unbounded read.
func BodyLimit(limit int64) gin.HandlerFunc {
	if limit <= 0 {
		limit = DefaultBodyLimit
	}

	return func(ctx *gin.Context) {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, limit)

		ctx.Next()
	}
}
