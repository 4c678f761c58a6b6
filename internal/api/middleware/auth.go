package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mergington/school-management/internal/services"
)

const sessionCookieName = "session_id"

// RequireAuth は有効なセッションクッキーを持たないリクエストを401で弾きます。
// 検証に成功した場合はユーザー名をコンテキストに格納します。
func RequireAuth(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		username, err := authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		c.Set("username", username)
		c.Next()
	}
}
