package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, 8080, cfg.HTTP.Port)
	require.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)

	require.Equal(t, "dlsu.edu.ph", cfg.Google.AllowedDomain)
	require.Equal(t, "pts_session", cfg.Security.SessionCookie)
	require.Equal(t, 12*time.Hour, cfg.Security.SessionTTL)
	require.Equal(t, 5*time.Minute, cfg.Security.StateTTL)

	require.Equal(t, "pts-portraits", cfg.Storage.BucketPortraits)
	require.Equal(t, "0 0 0 1 1,5,9 *", cfg.Jobs.MembershipResetCron)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("PTS_ENVIRONMENT", "production")
	t.Setenv("PTS_GOOGLE_ALLOWEDDOMAIN", "example.edu")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "production", cfg.Environment)
	require.Equal(t, "example.edu", cfg.Google.AllowedDomain)
}
