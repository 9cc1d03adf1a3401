package auth

import (
	"errors"
	"testing"

	"ptsportal/api/internal/config"
)

func TestGateAllow(t *testing.T) {
	t.Parallel()

	gate := NewGate(config.GoogleConfig{
		AllowedDomain:       "dlsu.edu.ph",
		ServiceAccountEmail: "ops@pts-portal.iam.gserviceaccount.com",
	})

	tests := []struct {
		name    string
		profile Profile
		wantErr bool
	}{
		{
			name:    "institutional domain",
			profile: Profile{Email: "juan_delacruz@dlsu.edu.ph", HostedDomain: "dlsu.edu.ph"},
		},
		{
			name:    "service account outside domain",
			profile: Profile{Email: "ops@pts-portal.iam.gserviceaccount.com", HostedDomain: ""},
		},
		{
			name:    "personal gmail",
			profile: Profile{Email: "someone@gmail.com", HostedDomain: ""},
			wantErr: true,
		},
		{
			name:    "other workspace domain",
			profile: Profile{Email: "someone@up.edu.ph", HostedDomain: "up.edu.ph"},
			wantErr: true,
		},
		{
			name:    "spoofed local part without hosted domain",
			profile: Profile{Email: "fake@dlsu.edu.ph.evil.com", HostedDomain: ""},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := gate.Allow(tt.profile)
			if tt.wantErr {
				if !errors.Is(err, ErrDomainNotAllowed) {
					t.Fatalf("expected ErrDomainNotAllowed, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected allow, got %v", err)
			}
		})
	}
}

func TestGateAllowNoServiceAccount(t *testing.T) {
	t.Parallel()

	gate := NewGate(config.GoogleConfig{AllowedDomain: "dlsu.edu.ph"})

	err := gate.Allow(Profile{Email: "ops@pts-portal.iam.gserviceaccount.com"})
	if !errors.Is(err, ErrDomainNotAllowed) {
		t.Fatalf("empty allow-list must not admit anyone, got %v", err)
	}
}
