package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ptsportal/api/internal/models"
)

var ErrLibraryNotFound = errors.New("library entry not found")

// LibraryRepository backs the denormalized lookup lists. Content is a text
// array so add/remove stay single idempotent statements.
type LibraryRepository struct {
	pool *pgxpool.Pool
}

func NewLibraryRepository(pool *pgxpool.Pool) *LibraryRepository {
	return &LibraryRepository{pool: pool}
}

func (r *LibraryRepository) Create(ctx context.Context, entry models.LibraryEntry) error {
	const query = `INSERT INTO libraries (id, content) VALUES ($1, $2)`
	_, err := r.pool.Exec(ctx, query, entry.ID, entry.Content)
	return err
}

func (r *LibraryRepository) GetByID(ctx context.Context, id string) (models.LibraryEntry, error) {
	const query = `SELECT id, content FROM libraries WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	var entry models.LibraryEntry
	if err := row.Scan(&entry.ID, &entry.Content); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.LibraryEntry{}, ErrLibraryNotFound
		}
		return models.LibraryEntry{}, err
	}
	return entry, nil
}

func (r *LibraryRepository) List(ctx context.Context) ([]models.LibraryEntry, error) {
	const query = `SELECT id, content FROM libraries ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LibraryEntry
	for rows.Next() {
		var entry models.LibraryEntry
		if err := rows.Scan(&entry.ID, &entry.Content); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *LibraryRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM libraries WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrLibraryNotFound
	}
	return nil
}

func (r *LibraryRepository) AddContent(ctx context.Context, id string, name string) error {
	const query = `
		UPDATE libraries SET content = array_append(content, $2)
		WHERE id = $1 AND NOT content @> ARRAY[$2]
	`
	_, err := r.pool.Exec(ctx, query, id, name)
	return err
}

// RemoveContent pulls a name out of the entry. array_remove is a set-remove,
// so concurrent pulls of the same name converge.
func (r *LibraryRepository) RemoveContent(ctx context.Context, id string, name string) error {
	const query = `UPDATE libraries SET content = array_remove(content, $2) WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, name)
	return err
}
