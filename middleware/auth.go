package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-nepal/utils"
)

const (
	ctxUserID = "userID"

	InvalidTokenMessage = "Invalid or expired token"
)

// RequireAuth accepts "Authorization: Bearer <token>". Missing, malformed,
// expired and forged tokens all get the same 401.
func RequireAuth(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			utils.AbortJSONError(c, http.StatusUnauthorized, InvalidTokenMessage)
			return
		}
		claims, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			utils.AbortJSONError(c, http.StatusUnauthorized, InvalidTokenMessage)
			return
		}
		c.Set(ctxUserID, claims.UserID)
		c.Next()
	}
}

// UserID returns the id RequireAuth stored for this request.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
