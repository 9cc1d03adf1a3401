package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ptsportal/api/internal/models"
)

var (
	ErrCommitteeNotFound = errors.New("committee not found")
	ErrOfficerNotFound   = errors.New("officer not found")
)

type CommitteeRepository struct {
	pool *pgxpool.Pool
}

func NewCommitteeRepository(pool *pgxpool.Pool) *CommitteeRepository {
	return &CommitteeRepository{pool: pool}
}

func (r *CommitteeRepository) Create(ctx context.Context, committee models.Committee) error {
	const query = `INSERT INTO committees (id, name) VALUES ($1, $2)`
	if _, err := r.pool.Exec(ctx, query, committee.ID, committee.Name); err != nil {
		return err
	}

	for i, officer := range committee.Officers {
		if err := r.insertOfficer(ctx, committee.ID, officer, i); err != nil {
			return err
		}
	}
	return nil
}

func (r *CommitteeRepository) GetByID(ctx context.Context, id string) (models.Committee, error) {
	const query = `SELECT id, name FROM committees WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	var committee models.Committee
	if err := row.Scan(&committee.ID, &committee.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Committee{}, ErrCommitteeNotFound
		}
		return models.Committee{}, err
	}

	officers, err := r.listOfficers(ctx, id)
	if err != nil {
		return models.Committee{}, err
	}
	committee.Officers = officers
	return committee, nil
}

func (r *CommitteeRepository) List(ctx context.Context) ([]models.Committee, error) {
	const query = `SELECT id, name FROM committees ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var committees []models.Committee
	for rows.Next() {
		var committee models.Committee
		if err := rows.Scan(&committee.ID, &committee.Name); err != nil {
			return nil, err
		}
		committees = append(committees, committee)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range committees {
		officers, err := r.listOfficers(ctx, committees[i].ID)
		if err != nil {
			return nil, err
		}
		committees[i].Officers = officers
	}
	return committees, nil
}

// Delete removes the committee and reports its name so the caller can clean
// up the denormalized library entry. Officer rows go with the committee.
func (r *CommitteeRepository) Delete(ctx context.Context, id string) (string, error) {
	const query = `DELETE FROM committees WHERE id = $1 RETURNING name`

	var name string
	if err := r.pool.QueryRow(ctx, query, id).Scan(&name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrCommitteeNotFound
		}
		return "", err
	}

	const officersQuery = `DELETE FROM officers WHERE committee_id = $1`
	if _, err := r.pool.Exec(ctx, officersQuery, id); err != nil {
		return "", err
	}
	return name, nil
}

func (r *CommitteeRepository) AddOfficer(ctx context.Context, committeeID string, officer models.Officer) error {
	const query = `SELECT COALESCE(MAX(ord) + 1, 0) FROM officers WHERE committee_id = $1`

	var ord int
	if err := r.pool.QueryRow(ctx, query, committeeID).Scan(&ord); err != nil {
		return err
	}
	return r.insertOfficer(ctx, committeeID, officer, ord)
}

func (r *CommitteeRepository) insertOfficer(ctx context.Context, committeeID string, officer models.Officer, ord int) error {
	const query = `
		INSERT INTO officers (committee_id, user_id, position, image, ord)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query, committeeID, officer.UserID, officer.Position, officer.Image, ord)
	return err
}

func (r *CommitteeRepository) UpdateOfficerImage(ctx context.Context, committeeID string, userID string, image string) error {
	const query = `UPDATE officers SET image = $3 WHERE committee_id = $1 AND user_id = $2`
	cmd, err := r.pool.Exec(ctx, query, committeeID, userID, image)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrOfficerNotFound
	}
	return nil
}

func (r *CommitteeRepository) RemoveOfficer(ctx context.Context, committeeID string, userID string) error {
	const query = `DELETE FROM officers WHERE committee_id = $1 AND user_id = $2`
	cmd, err := r.pool.Exec(ctx, query, committeeID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrOfficerNotFound
	}
	return nil
}

func (r *CommitteeRepository) listOfficers(ctx context.Context, committeeID string) ([]models.Officer, error) {
	const query = `
		SELECT user_id, position, image FROM officers
		WHERE committee_id = $1 ORDER BY ord
	`

	rows, err := r.pool.Query(ctx, query, committeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var officers []models.Officer
	for rows.Next() {
		var officer models.Officer
		if err := rows.Scan(&officer.UserID, &officer.Position, &officer.Image); err != nil {
			return nil, err
		}
		officers = append(officers, officer)
	}
	return officers, rows.Err()
}
