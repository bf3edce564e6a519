package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsHeaders = "Authorization, Content-Type"
	corsMaxAge  = "600"
)

// CORS allows browser clients from the configured origins. A "*" entry
// opens the API to any origin, without credentials.
func CORS(origins []string) gin.HandlerFunc {
	allowAny := false
	allowed := make(map[string]struct{}, len(origins))

	for _, o := range origins {
		if o == "*" {
			allowAny = true
			continue
		}

		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}

	return func(ctx *gin.Context) {
		ctx.Header("Vary", "Origin")

		if origin := ctx.GetHeader("Origin"); origin != "" {
			switch {
			case allowAny:
				ctx.Header("Access-Control-Allow-Origin", "*")
			default:
				if _, ok := allowed[origin]; ok {
					ctx.Header("Access-Control-Allow-Origin", origin)
					ctx.Header("Access-Control-Allow-Credentials", "true")
				}
			}

			ctx.Header("Access-Control-Allow-Methods", corsMethods)
			ctx.Header("Access-Control-Allow-Headers", corsHeaders)
			ctx.Header("Access-Control-Max-Age", corsMaxAge)
		}

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}

		ctx.Next()
	}
}
