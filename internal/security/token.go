package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"ptsportal/api/internal/models"
)

// SessionClaims is the enriched session token. The uid, role and schedule
// fields are copied from the directory record once, at sign-in; they are not
// refreshed for the lifetime of the token.
type SessionClaims struct {
	UserID     string          `json:"uid"`
	Email      string          `json:"email"`
	UserType   models.UserType `json:"role"`
	ScheduleID *string         `json:"sched,omitempty"`
	jwt.RegisteredClaims
}

func GenerateSessionToken(secret string, user models.SessionUser, tokenID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID:     user.ID,
		Email:      user.Email,
		UserType:   user.UserType,
		ScheduleID: user.ScheduleID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   user.ID,
			ID:        tokenID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

func ParseSessionToken(tokenStr string, secret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// SessionUser projects token claims onto the per-request identity. Pure; no
// lookups happen here.
func (c *SessionClaims) SessionUser() models.SessionUser {
	return models.SessionUser{
		ID:         c.UserID,
		Email:      c.Email,
		UserType:   c.UserType,
		ScheduleID: c.ScheduleID,
	}
}
