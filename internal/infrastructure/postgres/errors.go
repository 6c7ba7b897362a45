package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/danuartha/go-commerce-ddd/internal/domain/entity"
)

// PostgreSQL error code for unique constraint violations.
const uniqueViolationCode = "23505"

// mapError translates driver errors into domain error kinds so callers can
// match with errors.Is without importing pgx.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %v", entity.ErrNotFound, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return fmt.Errorf("%w: %v", entity.ErrConflict, err)
	}
	return err
}
