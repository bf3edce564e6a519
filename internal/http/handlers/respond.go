package handlers

import "github.com/gin-gonic/gin"

// Fail hands a typed error to the terminal translator and stops the
// handler chain. Handlers never format their own error bodies.
func Fail(ctx *gin.Context, err error) {
	_ = ctx.Error(err)
	ctx.Abort()
}

// OK wraps a payload in the standard success envelope.
func OK(ctx *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}

	for k, v := range payload {
		body[k] = v
	}

	ctx.JSON(status, body)
}
