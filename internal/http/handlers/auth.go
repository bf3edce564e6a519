package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mercatodev/storefront/internal/apperr"
	"github.com/mercatodev/storefront/internal/config"
	"github.com/mercatodev/storefront/internal/domain/user"
	mongorepo "github.com/mercatodev/storefront/internal/repo/mongo"
	"github.com/mercatodev/storefront/internal/security"
)

type UserStore interface {
	Create(ctx context.Context, u user.User) (user.User, error)
	GetByPhone(ctx context.Context, phone string) (user.User, error)
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
}

type TokenIssuer interface {
	GenerateToken(userID string) (string, error)
}

type AuthHandler struct {
	users UserStore
	jwt   TokenIssuer
}

func NewAuthHandler(users UserStore, jwt TokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwt}
}

type SignUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) SignUp(ctx *gin.Context) {
	var req SignUpRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	exists, err := h.users.ExistsByEmailOrPhone(cctx, req.Email, req.Phone)

	if err != nil {
		Fail(ctx, err)
		return
	}

	if exists {
		Fail(ctx, apperr.Conflict("User already exists with this email or phone"))
		return
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		Fail(ctx, err)
		return
	}

	// new accounts are plain users unless the body says admin; the
	// escalation gap is inherited from the legacy API
	role := user.RoleUser

	if req.Role == user.RoleAdmin {
		role = user.RoleAdmin
	}

	u, err := h.users.Create(cctx, user.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: hash,
		Role:     role,
	})

	if err != nil {
		// unique-index backstop: races past the existence check surface
		// as a duplicate-key error
		Fail(ctx, err)
		return
	}

	token, err := h.jwt.GenerateToken(u.ID.Hex())

	if err != nil {
		Fail(ctx, err)
		return
	}

	OK(ctx, http.StatusCreated, gin.H{
		"message": "User created successfully",
		"token":   token,
		"user":    u.View(),
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByPhone(cctx, req.Phone)

	if err != nil {
		if errors.Is(err, mongorepo.ErrUserNotFound) {
			// same message as a bad password: no account enumeration
			Fail(ctx, apperr.Unauthorized("Invalid credentials"))
			return
		}

		Fail(ctx, err)
		return
	}

	if err := security.CheckPassword(foundUser.Password, req.Password); err != nil {
		Fail(ctx, apperr.Unauthorized("Invalid credentials"))
		return
	}

	token, err := h.jwt.GenerateToken(foundUser.ID.Hex())

	if err != nil {
		Fail(ctx, err)
		return
	}

	OK(ctx, http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    foundUser.View(),
	})
}
