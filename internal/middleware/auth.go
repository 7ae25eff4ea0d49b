package middleware

import (
	"net/http"
	"strings"

	"minecart-be/internal/user"
	"minecart-be/internal/utils"

	"github.com/gin-gonic/gin"
)

// ExtractAccessToken pulls the JWT from the access_token cookie or, as a
// fallback, the Authorization header.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie("access_token"); err == nil {
		if cookie.Value != "" {
			return cookie.Value
		}
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// Auth parses the token when present and loads the user into the request
// context. It never rejects: handlers decide whether they need a user.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ExtractAccessToken(c.Request)
		if tokenStr == "" {
			c.Next()
			return
		}

		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			c.Next()
			return
		}

		ctx := utils.SetUserContext(c.Request.Context(), claims.UserID, claims.Email, claims.Role)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAuth aborts with 401 unless Auth put a user in the context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := utils.GetUserIDFromContext(c.Request.Context())
		if !ok || userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			return
		}
		c.Next()
	}
}

// RequireRole aborts with 403 unless the user carries one of the roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := utils.GetUserRoleFromContext(c.Request.Context())
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
	}
}
