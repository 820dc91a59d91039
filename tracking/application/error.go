package application

import (
	"net/http"

	"github.com/acamacho/jobtrail/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("APPLICATION")

// Error codes
var (
	CodeApplicationNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Application not found")
	CodeInvalidReference    = ErrRegistry.Register("INVALID_REFERENCE", errx.TypeValidation, http.StatusBadRequest, "Referenced entity does not exist")
	CodeInvalidFieldValue   = ErrRegistry.Register("INVALID_FIELD_VALUE", errx.TypeValidation, http.StatusBadRequest, "Invalid field value")
	CodeInvalidRequest      = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
	CodeEmptyBulkUpdate     = ErrRegistry.Register("EMPTY_BULK_UPDATE", errx.TypeValidation, http.StatusBadRequest, "Bulk update contains no updates")
)

// Helper functions
func ErrApplicationNotFound() *errx.Error {
	return ErrRegistry.New(CodeApplicationNotFound)
}

func ErrInvalidReference() *errx.Error {
	return ErrRegistry.New(CodeInvalidReference)
}

func ErrInvalidFieldValue() *errx.Error {
	return ErrRegistry.New(CodeInvalidFieldValue)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrEmptyBulkUpdate() *errx.Error {
	return ErrRegistry.New(CodeEmptyBulkUpdate)
}
