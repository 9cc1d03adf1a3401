package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"ptsportal/api/internal/auth"
	"ptsportal/api/internal/config"
	"ptsportal/api/internal/ids"
	"ptsportal/api/internal/models"
	"ptsportal/api/internal/repository"
	"ptsportal/api/internal/security"
)

var (
	// ErrNotProvisioned means the email cleared the domain gate but has no
	// directory record. Accounts are created out-of-band, never at sign-in.
	ErrNotProvisioned = errors.New("user unauthorized, please contact the system administrator")

	// ErrDirectory covers infrastructure failures during sign-in. The cause
	// is logged server-side and never surfaced to the client.
	ErrDirectory = errors.New("directory lookup failed")
)

// Directory resolves authenticated emails to internal identity.
type Directory interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindIdentity(ctx context.Context, email string) (models.SessionUser, error)
}

type AuthService struct {
	gate      auth.Gate
	directory Directory
	cfg       *config.AppConfig
	log       zerolog.Logger
}

func NewAuthService(gate auth.Gate, directory Directory, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		gate:      gate,
		directory: directory,
		cfg:       cfg,
		log:       log,
	}
}

type SignInResult struct {
	Token     string
	TokenID   string
	User      models.SessionUser
	ExpiresAt time.Time
}

// SignIn runs the linear sign-in chain: domain gate, directory lookup, token
// enrichment. The gate runs before any directory access. Enrichment re-reads
// the directory with a projected query and copies id, role and schedule onto
// the token; any failure aborts issuance so a token is never partially
// enriched.
func (s *AuthService) SignIn(ctx context.Context, profile auth.Profile) (SignInResult, error) {
	if err := s.gate.Allow(profile); err != nil {
		return SignInResult{}, err
	}

	if _, err := s.directory.FindByEmail(ctx, profile.Email); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return SignInResult{}, ErrNotProvisioned
		}
		s.log.Error().Err(err).Str("email", profile.Email).Msg("directory lookup failed")
		return SignInResult{}, ErrDirectory
	}

	identity, err := s.directory.FindIdentity(ctx, profile.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return SignInResult{}, ErrNotProvisioned
		}
		s.log.Error().Err(err).Str("email", profile.Email).Msg("token enrichment lookup failed")
		return SignInResult{}, ErrDirectory
	}

	tokenID := ids.New()
	expiresAt := time.Now().Add(s.cfg.Security.SessionTTL)

	token, err := security.GenerateSessionToken(s.cfg.Security.SessionSecret, identity, tokenID, s.cfg.Security.SessionTTL)
	if err != nil {
		s.log.Error().Err(err).Msg("session token signing failed")
		return SignInResult{}, fmt.Errorf("issue session token: %w", err)
	}

	return SignInResult{
		Token:     token,
		TokenID:   tokenID,
		User:      identity,
		ExpiresAt: expiresAt,
	}, nil
}
