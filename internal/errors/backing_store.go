package errors

import "net/http"

// BackingStoreUnavailable wraps a failed call to the remote table.
func BackingStoreUnavailable(operation string, err error) *Exception {
	return &Exception{
		Kind:       KindBackingStoreUnavailable,
		Message:    "backing store unavailable: " + operation,
		StatusCode: http.StatusServiceUnavailable,
		Err:        err,
	}
}
