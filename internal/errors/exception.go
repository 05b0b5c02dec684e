package errors

import (
	"errors"
	"net/http"
)

// Kind classifies an Exception independently of its message.
type Kind string

const (
	KindValidation              Kind = "validation"
	KindNotFound                Kind = "not_found"
	KindBackingStoreUnavailable Kind = "backing_store_unavailable"
	KindSchemaMismatch          Kind = "schema_mismatch"
	KindInternal                Kind = "internal"
)

type Exception struct {
	Kind       Kind
	Message    string
	StatusCode int
	// Err is the upstream failure, if any. Its text is diagnostic only.
	Err error
}

func (e *Exception) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Exception) Unwrap() error {
	return e.Err
}

// Is reports whether target is the same sentinel, or a kind sentinel
// (a bare Exception with only Kind set) of the same kind.
func (e *Exception) Is(target error) bool {
	t, ok := target.(*Exception)
	if !ok {
		return false
	}
	if t == e {
		return true
	}
	if t.Message == "" && t.Err == nil {
		return t.Kind == e.Kind
	}
	return t.Kind == e.Kind && t.Message == e.Message && t.Err == nil
}

// Kind sentinels, matched through errors.Is against any exception of
// that kind.
var (
	ErrValidation              = &Exception{Kind: KindValidation}
	ErrNotFound                = &Exception{Kind: KindNotFound}
	ErrBackingStoreUnavailable = &Exception{Kind: KindBackingStoreUnavailable}
	ErrSchemaMismatch          = &Exception{Kind: KindSchemaMismatch}
)

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) && appErr.StatusCode != 0 {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func KindOf(err error) Kind {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Validation builds a validation exception with a custom message.
func Validation(message string) *Exception {
	return &Exception{
		Kind:       KindValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}
