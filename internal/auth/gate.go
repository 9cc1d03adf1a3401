package auth

import (
	"errors"
	"fmt"

	"ptsportal/api/internal/config"
)

// ErrDomainNotAllowed rejects sign-ins from outside the institutional domain.
var ErrDomainNotAllowed = errors.New("domain not allowed")

// Gate decides whether a verified profile may sign in at all. It runs before
// any directory access, so rejected domains learn nothing about provisioned
// accounts.
type Gate struct {
	allowedDomain  string
	serviceAccount string
}

func NewGate(cfg config.GoogleConfig) Gate {
	return Gate{
		allowedDomain:  cfg.AllowedDomain,
		serviceAccount: cfg.ServiceAccountEmail,
	}
}

// Allow is a pure predicate: the hosted domain must match, or the email must
// be the single allow-listed service account.
func (g Gate) Allow(profile Profile) error {
	if profile.HostedDomain == g.allowedDomain {
		return nil
	}
	if g.serviceAccount != "" && profile.Email == g.serviceAccount {
		return nil
	}
	return fmt.Errorf("%w: use your %s email", ErrDomainNotAllowed, g.allowedDomain)
}
