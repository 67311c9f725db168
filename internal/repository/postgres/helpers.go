package postgres

import (
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// rebind converts ? placeholders to the $n form postgres expects. Filters
// are assembled with ? so that condition building stays independent of
// positional numbering.
func rebind(query string) string {
	return sqlx.Rebind(sqlx.DOLLAR, query)
}

// isUniqueViolation reports whether the error is a postgres unique
// constraint violation.
func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23505"
}
