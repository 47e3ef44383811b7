package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	serializationFailure    = "40001"
)

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return hasPgCode(err, uniqueViolationCode)
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return hasPgCode(err, foreignKeyViolationCode)
}

// IsCheckViolation reports whether err is a check constraint violation,
// such as a stock balance dropping below zero.
func IsCheckViolation(err error) bool {
	return hasPgCode(err, checkViolationCode)
}

// IsSerializationFailure reports whether err is a serialization conflict.
// Callers may retry the whole transaction.
func IsSerializationFailure(err error) bool {
	return hasPgCode(err, serializationFailure)
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
