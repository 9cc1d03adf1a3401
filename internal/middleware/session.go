package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"ptsportal/api/internal/config"
	"ptsportal/api/internal/models"
	"ptsportal/api/internal/security"
)

const (
	sessionUserKey   = "session_user"
	sessionClaimsKey = "session_claims"
)

// RevokedTokenKey is the denylist key for a signed-out token id.
func RevokedTokenKey(tokenID string) string {
	return fmt.Sprintf("session:revoked:%s", tokenID)
}

// Session materializes the per-request identity from the session token: a
// pure projection of the enriched claims, no directory access. The only
// state consulted is the sign-out denylist.
func Session(cfg *config.AppConfig, denylist *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
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

		c.Set(sessionClaimsKey, *claims)
		c.Set(sessionUserKey, claims.SessionUser())

		c.Next()
	}
}

func extractToken(c *gin.Context, cookieName string) string {
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie
	}
	return ""
}

// CurrentUser returns the materialized session identity, if any.
func CurrentUser(c *gin.Context) (models.SessionUser, bool) {
	val, exists := c.Get(sessionUserKey)
	if !exists {
		return models.SessionUser{}, false
	}
	user, ok := val.(models.SessionUser)
	return user, ok
}

// CurrentClaims returns the raw session claims, if any.
func CurrentClaims(c *gin.Context) (security.SessionClaims, bool) {
	val, exists := c.Get(sessionClaimsKey)
	if !exists {
		return security.SessionClaims{}, false
	}
	claims, ok := val.(security.SessionClaims)
	return claims, ok
}
