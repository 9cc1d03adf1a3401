package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"ptsportal/api/internal/config"
)

// Profile is the verified identity handed back by Google after the code
// exchange. HostedDomain is empty for plain gmail accounts.
type Profile struct {
	Email        string
	HostedDomain string
	Name         string
	Picture      string
}

// GoogleProvider drives the authorization-code flow. Credential verification
// is fully delegated to Google; this service only ever sees the resulting
// profile.
type GoogleProvider struct {
	oauth *oauth2.Config
}

func NewGoogleProvider(cfg config.GoogleConfig) *GoogleProvider {
	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
	}
}

func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}

func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}
	return token, nil
}

func (p *GoogleProvider) FetchProfile(ctx context.Context, token *oauth2.Token) (Profile, error) {
	srv, err := oauth2api.NewService(ctx, option.WithTokenSource(p.oauth.TokenSource(ctx, token)))
	if err != nil {
		return Profile{}, fmt.Errorf("init userinfo service: %w", err)
	}

	info, err := srv.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return Profile{}, fmt.Errorf("fetch userinfo: %w", err)
	}

	return Profile{
		Email:        info.Email,
		HostedDomain: info.Hd,
		Name:         info.Name,
		Picture:      info.Picture,
	}, nil
}
