package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ptsportal/api/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `
	id, email, first_name, middle_name, last_name, id_number, course, contact,
	terms, url, user_type, membership, reset, schedule_id, created_at, updated_at
`

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.MiddleName,
		&user.LastName,
		&user.IDNumber,
		&user.Course,
		&user.Contact,
		&user.Terms,
		&user.URL,
		&user.UserType,
		&user.Membership,
		&user.Reset,
		&user.ScheduleID,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user models.User) error {
	const query = `
		INSERT INTO users (
			id, email, first_name, middle_name, last_name, id_number, course, contact,
			terms, url, user_type, membership, reset, schedule_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.FirstName,
		user.MiddleName,
		user.LastName,
		user.IDNumber,
		user.Course,
		user.Contact,
		user.Terms,
		user.URL,
		user.UserType,
		user.Membership,
		user.Reset,
		user.ScheduleID,
	)
	return err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

// FindIdentity is the projected enrichment lookup: only the fields copied
// onto the session token, not the full record.
func (r *UserRepository) FindIdentity(ctx context.Context, email string) (models.SessionUser, error) {
	const query = `SELECT id, email, user_type, schedule_id FROM users WHERE email = $1`

	row := r.pool.QueryRow(ctx, query, email)
	var identity models.SessionUser
	if err := row.Scan(&identity.ID, &identity.Email, &identity.UserType, &identity.ScheduleID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.SessionUser{}, ErrUserNotFound
		}
		return models.SessionUser{}, err
	}
	return identity, nil
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY last_name, first_name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) UpdateProfile(ctx context.Context, user models.User) error {
	const query = `
		UPDATE users SET
			first_name = $2, middle_name = $3, last_name = $4, id_number = $5,
			course = $6, contact = $7, terms = $8, url = $9,
			membership = $10, reset = $11, updated_at = NOW()
		WHERE id = $1
	`

	cmd, err := r.pool.Exec(ctx, query,
		user.ID,
		user.FirstName,
		user.MiddleName,
		user.LastName,
		user.IDNumber,
		user.Course,
		user.Contact,
		user.Terms,
		user.URL,
		user.Membership,
		user.Reset,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdateUserType(ctx context.Context, id string, userType models.UserType) error {
	const query = `UPDATE users SET user_type = $2, updated_at = NOW() WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, userType)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM users WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// MarkMembershipReset flags every active member for renewal at term start.
func (r *UserRepository) MarkMembershipReset(ctx context.Context) (int64, error) {
	const query = `
		UPDATE users SET reset = TRUE, updated_at = NOW()
		WHERE user_type = $1 AND membership
	`
	cmd, err := r.pool.Exec(ctx, query, models.UserTypeMember)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
