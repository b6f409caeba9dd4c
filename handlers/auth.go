package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/invoicer/config"
	"github.com/yourusername/invoicer/middleware"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type AuthHandler struct {
	Cfg *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		Cfg: cfg,
	}
}

// TokenRequest exchanges the configured API key for tokens. Role defaults to
// admin, the owner of the key; "user" asks for a read-only token.
type TokenRequest struct {
	APIKey  string `json:"api_key" binding:"required"`
	Subject string `json:"subject"`
	Role    string `json:"role" binding:"omitempty,oneof=admin user"`
}

// RefreshToken request body
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Token issues an access and a refresh token for a valid API key
func (h *AuthHandler) Token(c *gin.Context) {
	if h.Cfg.APIKey == "" || !h.Cfg.AuthEnabled() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Token issuance is disabled"})
		return
	}

	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.APIKey), []byte(h.Cfg.APIKey)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
		return
	}

	subject := req.Subject
	if subject == "" {
		subject = "api"
	}
	role := req.Role
	if role == "" {
		role = middleware.RoleAdmin
	}
	h.issue(c, subject, role)
}

// Refresh handles token refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Validate refresh token using the refresh secret
	claims, err := middleware.ParseToken(req.RefreshToken, h.Cfg.JWTRefreshSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token", "code": "InvalidToken"})
		return
	}

	h.issue(c, claims.Subject, claims.Role)
}

func (h *AuthHandler) issue(c *gin.Context, subject, role string) {
	accessToken, err := middleware.GenerateToken(subject, role, h.Cfg.JWTSecret, accessTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}

	refreshToken, err := middleware.GenerateToken(subject, role, h.Cfg.JWTRefreshSecret, refreshTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_in":    int(accessTokenTTL.Seconds()),
	})
}
