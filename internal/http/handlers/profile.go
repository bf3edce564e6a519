package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mercatodev/storefront/internal/apperr"
	"github.com/mercatodev/storefront/internal/http/middlewares"
)

type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

// GetProfile returns the guard-resolved user. The guard already re-read
// the account, so there is nothing else to fetch.
func (h *ProfileHandler) GetProfile(ctx *gin.Context) {
	u, ok := middlewares.CurrentUser(ctx)

	if !ok {
		Fail(ctx, apperr.Unauthorized("Missing identity"))
		return
	}

	OK(ctx, http.StatusOK, gin.H{"data": u.View()})
}
