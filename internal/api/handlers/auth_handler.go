package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mergington/school-management/internal/models"
	"github.com/mergington/school-management/internal/services"
)

const sessionCookieName = "session_id"

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login は教師の資格情報を検証し、セッションクッキーを発行します。
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	// セッションIDはHttpOnlyクッキーで返す
	c.SetCookie(sessionCookieName, session.Token, int(services.SessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, models.LoginResponse{
		Message:  "Login successful",
		Username: session.Username,
	})
}

// Logout はセッションを破棄し、クッキーを失効させます。
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookieName); err == nil && token != "" {
		// 不明なトークンでもエラーにはならない
		_ = h.authService.Logout(c.Request.Context(), token)
	}

	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// Status は現在のセッションが有効かどうかを返します。常に200を返します。
func (h *AuthHandler) Status(c *gin.Context) {
	token, err := c.Cookie(sessionCookieName)
	if err != nil || token == "" {
		c.JSON(http.StatusOK, models.AuthStatusResponse{Authenticated: false})
		return
	}

	username, err := h.authService.ValidateToken(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusOK, models.AuthStatusResponse{Authenticated: false})
		return
	}

	c.JSON(http.StatusOK, models.AuthStatusResponse{
		Authenticated: true,
		Username:      username,
	})
}
