package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ptsportal/api/internal/models"
)

var ErrTuteeNotFound = errors.New("tutee not found")

type TuteeRepository struct {
	pool *pgxpool.Pool
}

func NewTuteeRepository(pool *pgxpool.Pool) *TuteeRepository {
	return &TuteeRepository{pool: pool}
}

const tuteeColumns = `
	id, first_name, last_name, id_number, email, campus, college, course,
	contact, url, friends, schedule_id
`

func scanTutee(row pgx.Row) (models.Tutee, error) {
	var tutee models.Tutee
	if err := row.Scan(
		&tutee.ID,
		&tutee.FirstName,
		&tutee.LastName,
		&tutee.IDNumber,
		&tutee.Email,
		&tutee.Campus,
		&tutee.College,
		&tutee.Course,
		&tutee.Contact,
		&tutee.URL,
		&tutee.Friends,
		&tutee.ScheduleID,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Tutee{}, ErrTuteeNotFound
		}
		return models.Tutee{}, err
	}
	return tutee, nil
}

func (r *TuteeRepository) Create(ctx context.Context, tutee models.Tutee) error {
	const query = `
		INSERT INTO tutees (
			id, first_name, last_name, id_number, email, campus, college, course,
			contact, url, friends, schedule_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
	`

	_, err := r.pool.Exec(ctx, query,
		tutee.ID,
		tutee.FirstName,
		tutee.LastName,
		tutee.IDNumber,
		tutee.Email,
		tutee.Campus,
		tutee.College,
		tutee.Course,
		tutee.Contact,
		tutee.URL,
		tutee.Friends,
		tutee.ScheduleID,
	)
	return err
}

func (r *TuteeRepository) GetByID(ctx context.Context, id string) (models.Tutee, error) {
	const query = `SELECT ` + tuteeColumns + ` FROM tutees WHERE id = $1`
	return scanTutee(r.pool.QueryRow(ctx, query, id))
}

func (r *TuteeRepository) List(ctx context.Context) ([]models.Tutee, error) {
	const query = `SELECT ` + tuteeColumns + ` FROM tutees ORDER BY last_name, first_name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tutees []models.Tutee
	for rows.Next() {
		tutee, err := scanTutee(rows)
		if err != nil {
			return nil, err
		}
		tutees = append(tutees, tutee)
	}
	return tutees, rows.Err()
}

func (r *TuteeRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tutees WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTuteeNotFound
	}
	return nil
}
