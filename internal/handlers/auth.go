package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ptsportal/api/internal/auth"
	"ptsportal/api/internal/middleware"
	"ptsportal/api/internal/service"
)

const stateCookie = "oauth_state"

func stateKey(state string) string {
	return "oauth:state:" + state
}

// Login starts the Google authorization-code flow. The state nonce is double
// tracked: a short-lived cookie on the browser and a SetNX key in redis that
// the callback consumes exactly once.
func (h HandlerSet) Login(c *gin.Context) {
	state := uuid.NewString()

	ttl := h.cfg.Security.StateTTL
	if h.cache != nil {
		if err := h.cache.SetNX(c.Request.Context(), stateKey(state), "1", ttl).Err(); err != nil {
			h.log.Error().Err(err).Msg("store oauth state failed")
			c.Status(http.StatusInternalServerError)
			return
		}
	}

	secure := c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, int(ttl.Seconds()), "/", "", secure, true)

	c.Redirect(http.StatusTemporaryRedirect, h.provider.AuthCodeURL(state))
}

// Callback finishes the sign-in chain: state check, code exchange, profile
// fetch, then the gate/lookup/enrichment sequence. Infrastructure failures
// surface as a bare 500; rejections carry only their user-facing message.
func (h HandlerSet) Callback(c *gin.Context) {
	ctx := c.Request.Context()

	state := c.Query("state")
	cookieState, err := c.Cookie(stateCookie)
	if err != nil || state == "" || state != cookieState {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid state"})
		return
	}

	secure := c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https"
	c.SetCookie(stateCookie, "", -1, "/", "", secure, true)

	if h.cache != nil {
		consumed, err := h.cache.GetDel(ctx, stateKey(state)).Result()
		if err != nil || consumed == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid state"})
			return
		}
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code"})
		return
	}

	token, err := h.provider.Exchange(ctx, code)
	if err != nil {
		h.log.Error().Err(err).Msg("code exchange failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	profile, err := h.provider.FetchProfile(ctx, token)
	if err != nil {
		h.log.Error().Err(err).Msg("profile fetch failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	result, err := h.authService.SignIn(ctx, profile)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrDomainNotAllowed), errors.Is(err, service.ErrNotProvisioned):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.Security.SessionCookie, result.Token, maxAge, "/", "", secure, true)

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"_id":      result.User.ID,
			"email":    result.User.Email,
			"type":     result.User.UserType,
			"schedule": result.User.ScheduleID,
		},
	})
}

// Logout denylists the token id until its natural expiry and clears the
// session cookie. The token itself stays valid cryptographically; the
// denylist is what retires it.
func (h HandlerSet) Logout(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	if h.cache != nil && claims.ID != "" && claims.ExpiresAt != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if ttl > 0 {
			if err := h.cache.Set(c.Request.Context(), middleware.RevokedTokenKey(claims.ID), "1", ttl).Err(); err != nil {
				h.log.Error().Err(err).Msg("revoke session failed")
				c.Status(http.StatusInternalServerError)
				return
			}
		}
	}

	secure := c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https"
	c.SetCookie(h.cfg.Security.SessionCookie, "", -1, "/", "", secure, true)
	c.Status(http.StatusNoContent)
}
