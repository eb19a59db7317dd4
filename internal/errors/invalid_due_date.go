package errors

import "net/http"

var ErrInvalidDueDate = &Exception{
	Message:    "due date must be RFC 3339, \"2006-01-02 15:04\" or \"2006-01-02\"",
	StatusCode: http.StatusBadRequest,
}
