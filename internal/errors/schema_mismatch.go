package errors

import (
	"fmt"
	"net/http"
)

// SchemaMismatch reports a header row that still differs from the
// expected columns after reconciliation.
func SchemaMismatch(expected, actual []string) *Exception {
	return &Exception{
		Kind:       KindSchemaMismatch,
		Message:    fmt.Sprintf("sheet header %q does not match schema %q", actual, expected),
		StatusCode: http.StatusInternalServerError,
	}
}
