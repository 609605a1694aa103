package dbx

import (
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes of integrity constraint violations.
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
)

// ClassifyError maps a driver error onto the common sentinel errors.
// It returns nil for nil and the original error when no mapping applies.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return common.ErrorAlreadyExists
	case codeForeignKeyViolation:
		return common.ErrorNotFound
	case codeCheckViolation, codeNotNullViolation:
		return common.ErrorInvalidData
	}
	return err
}
