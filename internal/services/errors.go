package services

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes the services turn into domain errors.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool { return pgCode(err) == uniqueViolation }

func isForeignKeyViolation(err error) bool { return pgCode(err) == foreignKeyViolation }

// violatedTable returns the referenced table named in a foreign key error
// detail, e.g. `Key (job_id)=(9) is not present in table "jobs".`
func violatedTable(err error) string {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return ""
	}
	_, rest, ok := strings.Cut(pgErr.Detail, `table "`)
	if !ok {
		return ""
	}
	table, _, _ := strings.Cut(rest, `"`)
	return table
}
