package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"ptsportal/api/internal/config"
)

// MembershipStore is the slice of the directory the scheduler touches.
type MembershipStore interface {
	MarkMembershipReset(ctx context.Context) (int64, error)
}

// Scheduler runs the term-rollover job: at the start of each term every
// member with an active membership is flagged for renewal.
type Scheduler struct {
	cron  *cron.Cron
	users MembershipStore
	cfg   config.JobsConfig
	log   zerolog.Logger
}

func NewScheduler(users MembershipStore, cfg config.JobsConfig, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:  c,
		users: users,
		cfg:   cfg,
		log:   log,
	}
}

func (s *Scheduler) Start() error {
	if s.users == nil {
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.MembershipResetCron, s.resetMemberships); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for a running job to finish, up to a grace period.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) resetMemberships() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := s.users.MarkMembershipReset(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("membership reset failed")
		return
	}
	s.log.Info().Int64("flagged", count).Msg("membership renewal flagged for new term")
}
