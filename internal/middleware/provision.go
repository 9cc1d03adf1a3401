package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"ptsportal/api/internal/config"
	"ptsportal/api/internal/security"
)

const provisionTokenHeader = "X-Provision-Token"

// AdminOrProvisionToken guards the account-provisioning route. Out-of-band
// scripts present the pre-shared token; console users fall back to the usual
// session plus admin-role check.
func AdminOrProvisionToken(cfg *config.AppConfig, denylist *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := c.GetHeader(provisionTokenHeader); token != "" {
			if cfg.Security.ProvisionTokenHash == "" {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			ok, err := security.VerifyProvisionToken(token, cfg.Security.ProvisionTokenHash)
			if err != nil || !ok {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.Next()
			return
		}

		tokenStr := extractToken(c, cfg.Security.SessionCookie)
		if tokenStr == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := security.ParseSessionToken(tokenStr, cfg.Security.SessionSecret)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if denylist != nil && claims.ID != "" {
			revoked, err := denylist.Exists(c.Request.Context(), RevokedTokenKey(claims.ID)).Result()
			if err == nil && revoked > 0 {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
		}

		user := claims.SessionUser()
		if !user.IsAdmin() {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Set(sessionClaimsKey, *claims)
		c.Set(sessionUserKey, user)

		c.Next()
	}
}
