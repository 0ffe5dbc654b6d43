package middleware

import (
	"go-careerbridge/internal/delivery/http/response"
	"go-careerbridge/internal/domain"
	"go-careerbridge/pkg/auth"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// KeyToken is where the verified bearer token is stored for logout.
const KeyToken = "Token"

// UserLookup resolves the account behind a verified token.
type UserLookup interface {
	User(id string) (*domain.User, error)
	Revoked(token string) bool
}

func AuthMiddleware(issuer *auth.Issuer, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Not authorized, no token")
			c.Abort()
			return
		}

		claims, err := issuer.Verify(tokenString)
		if err != nil || users.Revoked(tokenString) {
			response.Error(c, http.StatusUnauthorized, "Not authorized, token failed")
			c.Abort()
			return
		}

		// The role is read from the account, not the token, so a stale
		// token cannot carry an old role.
		user, err := users.User(claims.Subject)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "User not found")
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), user.ID)
		c.Set(string(domain.KeyUserEmail), user.Email)
		c.Set(string(domain.KeyUserRole), user.Role)
		c.Set(KeyToken, tokenString)

		c.Next()
	}
}
