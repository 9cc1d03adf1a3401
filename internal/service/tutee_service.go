package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"ptsportal/api/internal/ids"
	"ptsportal/api/internal/models"
)

type TuteeStore interface {
	Create(ctx context.Context, tutee models.Tutee) error
	GetByID(ctx context.Context, id string) (models.Tutee, error)
	Delete(ctx context.Context, id string) error
}

type ScheduleStore interface {
	Create(ctx context.Context, schedule models.Schedule) error
	Delete(ctx context.Context, id string) error
}

// TuteeService owns the cascading delete. The schedule is only addressable
// through the tutee's stored reference, so it must go first; removing the
// tutee first would orphan the schedule permanently.
type TuteeService struct {
	tutees    TuteeStore
	schedules ScheduleStore
	log       zerolog.Logger
}

func NewTuteeService(tutees TuteeStore, schedules ScheduleStore, log zerolog.Logger) *TuteeService {
	return &TuteeService{
		tutees:    tutees,
		schedules: schedules,
		log:       log,
	}
}

// Register creates the schedule before the tutee row, so the stored reference
// always resolves. If the tutee insert fails the fresh schedule is removed
// best-effort.
func (s *TuteeService) Register(ctx context.Context, tutee models.Tutee, slots []string) (models.Tutee, error) {
	schedule := models.Schedule{
		ID:    ids.New(),
		Slots: slots,
	}
	if schedule.Slots == nil {
		schedule.Slots = []string{}
	}

	if err := s.schedules.Create(ctx, schedule); err != nil {
		return models.Tutee{}, fmt.Errorf("create schedule: %w", err)
	}

	tutee.ID = ids.New()
	tutee.ScheduleID = schedule.ID

	if err := s.tutees.Create(ctx, tutee); err != nil {
		if cleanupErr := s.schedules.Delete(ctx, schedule.ID); cleanupErr != nil {
			s.log.Warn().Err(cleanupErr).Str("schedule_id", schedule.ID).Msg("orphaned schedule left behind")
		}
		return models.Tutee{}, err
	}

	s.log.Info().Str("tutee_id", tutee.ID).Str("schedule_id", schedule.ID).Msg("tutee registered")
	return tutee, nil
}

func (s *TuteeService) Delete(ctx context.Context, id string) error {
	tutee, err := s.tutees.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if tutee.ScheduleID != "" {
		if err := s.schedules.Delete(ctx, tutee.ScheduleID); err != nil {
			return fmt.Errorf("delete schedule %s: %w", tutee.ScheduleID, err)
		}
	}

	if err := s.tutees.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("tutee_id", id).Str("schedule_id", tutee.ScheduleID).Msg("tutee removed")
	return nil
}
