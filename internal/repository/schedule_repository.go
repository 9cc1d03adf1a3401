package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ptsportal/api/internal/models"
)

var ErrScheduleNotFound = errors.New("schedule not found")

type ScheduleRepository struct {
	pool *pgxpool.Pool
}

func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

func (r *ScheduleRepository) Create(ctx context.Context, schedule models.Schedule) error {
	const query = `INSERT INTO schedules (id, slots) VALUES ($1, $2)`
	_, err := r.pool.Exec(ctx, query, schedule.ID, schedule.Slots)
	return err
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id string) (models.Schedule, error) {
	const query = `SELECT id, slots FROM schedules WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	var schedule models.Schedule
	if err := row.Scan(&schedule.ID, &schedule.Slots); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Schedule{}, ErrScheduleNotFound
		}
		return models.Schedule{}, err
	}
	return schedule, nil
}

func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM schedules WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
