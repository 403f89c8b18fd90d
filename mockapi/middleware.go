package mockapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// authRequired rejects requests without a valid bearer token and stores
// the user id on the context.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			fail(c, http.StatusUnauthorized, "missing or invalid token")
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(h, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(s.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			fail(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			fail(c, http.StatusUnauthorized, "invalid claims")
			c.Abort()
			return
		}

		var userID uint
		if v, ok := claims["userId"].(float64); ok {
			userID = uint(v)
		}
		if userID == 0 {
			fail(c, http.StatusUnauthorized, "invalid claims")
			c.Abort()
			return
		}

		c.Set("userId", userID)
		c.Next()
	}
}

func currentUserID(c *gin.Context) uint {
	v, _ := c.Get("userId")
	id, _ := v.(uint)
	return id
}
