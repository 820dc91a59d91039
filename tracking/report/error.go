package report

import (
	"net/http"

	"github.com/acamacho/jobtrail/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("REPORT")

// Error codes
var (
	CodeInvalidIDFormat      = ErrRegistry.Register("INVALID_ID_FORMAT", errx.TypeValidation, http.StatusBadRequest, "Invalid identifier format")
	CodeInvalidDateFormat    = ErrRegistry.Register("INVALID_DATE_FORMAT", errx.TypeValidation, http.StatusBadRequest, "Invalid date format")
	CodeMissingRequiredField = ErrRegistry.Register("MISSING_REQUIRED_FIELD", errx.TypeValidation, http.StatusBadRequest, "Missing required field")
	CodeQueryExecutionError  = ErrRegistry.Register("QUERY_EXECUTION_ERROR", errx.TypeInternal, http.StatusInternalServerError, "Report query failed")
)

// Helper functions
func ErrInvalidIDFormat(field string) *errx.Error {
	return ErrRegistry.New(CodeInvalidIDFormat).WithDetail("field", field)
}

func ErrInvalidDateFormat(field string) *errx.Error {
	return ErrRegistry.New(CodeInvalidDateFormat).WithDetail("field", field)
}

func ErrMissingRequiredField(field string) *errx.Error {
	return ErrRegistry.New(CodeMissingRequiredField).WithDetail("field", field)
}

func ErrQueryExecution(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeQueryExecutionError, cause)
}
