package errors

import "net/http"

var ErrInvalidJSON = &Exception{
	Kind:       KindValidation,
	Message:    "invalid JSON payload",
	StatusCode: http.StatusBadRequest,
}
