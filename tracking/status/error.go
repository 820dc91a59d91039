package status

import (
	"net/http"

	"github.com/acamacho/jobtrail/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("STATUS")

// Error codes
var (
	CodeStatusNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Status not found")
	CodeStatusAlreadyExists = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Status already exists")
	CodeInvalidRequest      = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Helper functions
func ErrStatusNotFound() *errx.Error {
	return ErrRegistry.New(CodeStatusNotFound)
}

func ErrStatusAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeStatusAlreadyExists)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
