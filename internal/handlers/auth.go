package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/yatube/backend/internal/auth"
	"github.com/emilythestrangee/yatube/backend/internal/models"
	"github.com/emilythestrangee/yatube/backend/internal/service"
)

type AuthHandler struct {
	base
	users  *service.UserService
	tokens *auth.Issuer
}

// Register creates an account. It does not log the user in; clients call
// the token endpoint afterwards.
func (h *AuthHandler) Register(c *gin.Context) {
	var input models.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.users.Register(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.metrics.Write("user", "create")
	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// CreateToken exchanges credentials for an access/refresh pair
func (h *AuthHandler) CreateToken(c *gin.Context) {
	var input models.TokenCreateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	principal, err := h.users.Authenticate(c.Request.Context(), input.Username, input.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No active account found with the given credentials"})
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	access, refresh, err := h.tokens.Pair(*principal)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"refresh": refresh,
		"access":  access,
	})
}

// RefreshToken issues a new access token from a refresh token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input models.TokenRefreshRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	claims, err := h.tokens.Parse(input.Refresh, auth.RefreshToken)
	if err != nil {
		invalidToken(c)
		return
	}

	// The account may have been removed since the refresh token was issued.
	principal, err := h.users.Principal(c.Request.Context(), claims.UserID)
	if errors.Is(err, service.ErrNotFound) {
		invalidToken(c)
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	access, err := h.tokens.Issue(*principal, auth.AccessToken)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access})
}

// VerifyToken reports whether a token of either type is still valid.
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	var input models.TokenVerifyRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	if _, err := h.tokens.Parse(input.Token, ""); err != nil {
		invalidToken(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func invalidToken(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error": "Token is invalid or expired",
		"code":  "token_not_valid",
	})
}
