package postgres

import (
	"context"

	"github.com/danuartha/go-commerce-ddd/internal/domain/entity"
	"github.com/danuartha/go-commerce-ddd/internal/domain/repository"
)

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, first_name, last_name, created_at, updated_at`

func (r *UserRepository) FindByID(ctx context.Context, id entity.UserID) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id.String())
	return scanUser(row)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email entity.Email) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email.String())
	return scanUser(row)
}

// Save inserts or replaces the row for the aggregate's id. The unique index
// on email surfaces duplicates as entity.ErrConflict.
func (r *UserRepository) Save(ctx context.Context, u entity.User) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (id, email, first_name, last_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email,
		    first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name,
		    updated_at = EXCLUDED.updated_at
		RETURNING `+userColumns+`
	`, u.ID.String(), u.Email.String(), u.FirstName, u.LastName, u.CreatedAt, u.UpdatedAt)
	return scanUser(row)
}

func (r *UserRepository) Delete(ctx context.Context, id entity.UserID) (bool, error) {
	res, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id.String())
	if err != nil {
		return false, mapError(err)
	}
	return res.RowsAffected() > 0, nil
}

// FindAll pages by insertion order so repeated calls partition the population
// without duplicates or gaps.
func (r *UserRepository) FindAll(ctx context.Context, page, size int) ([]entity.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2
	`, size, page*size)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	users := make([]entity.User, 0, size)
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, mapError(err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
