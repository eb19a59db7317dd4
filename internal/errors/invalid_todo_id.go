package errors

import "net/http"

var ErrInvalidTodoID = &Exception{
	Message:    "todo id must be a positive integer",
	StatusCode: http.StatusBadRequest,
}
