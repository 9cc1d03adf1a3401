package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ptsportal/api/internal/models"
)

// RequireRoles re-checks the session role on every request. Roles can change
// between token issuances, so the check is never cached beyond the token.
func RequireRoles(roles ...models.UserType) gin.HandlerFunc {
	roleSet := make(map[models.UserType]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if _, ok := roleSet[user.UserType]; !ok {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Next()
	}
}
