package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// 23505 is the PostgreSQL unique_violation class.
const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
