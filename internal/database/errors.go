package database

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// SQLSTATE codes that classify a backend as "not configured": the table a
// query targets does not exist, or a declared relationship column is absent.
// Read paths suppress these to empty results; write paths never do.
const (
	codeUndefinedTable  = "42P01"
	codeUndefinedColumn = "42703"
)

// IsMissingTable reports whether err is an undefined_table error.
func IsMissingTable(err error) bool {
	return hasCode(err, codeUndefinedTable)
}

// IsMissingRelationship reports whether err is an undefined_column error,
// which is how a declared-but-absent relationship surfaces on joined reads.
func IsMissingRelationship(err error) bool {
	return hasCode(err, codeUndefinedColumn)
}

// IsMissingResource reports whether err indicates an unconfigured backend
// resource: either of the two codes above.
func IsMissingResource(err error) bool {
	return IsMissingTable(err) || IsMissingRelationship(err)
}

// IsNotFound reports whether err is a plain no-rows result.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func hasCode(err error, code string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}
	return false
}
