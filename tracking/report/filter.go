package report

import (
	"time"

	"github.com/acamacho/jobtrail/pkg/kernel"
)

// SafeFilter is a validated report predicate. Every field is optional; a nil
// field means the predicate does not constrain it. Instances are built per
// request through Sanitize and never persisted.
type SafeFilter struct {
	User          *kernel.UserID
	Company       *kernel.CompanyID
	Status        *kernel.StatusID
	PositionTitle *string
	DateFrom      *time.Time
	DateTo        *time.Time
}

// IsEmpty reports whether the filter constrains nothing.
func (f SafeFilter) IsEmpty() bool {
	return f.User == nil && f.Company == nil && f.Status == nil &&
		f.PositionTitle == nil && f.DateFrom == nil && f.DateTo == nil
}

// dateLayouts accepted for externally supplied date bounds.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// Sanitize validates raw query parameters into a SafeFilter. Only recognized
// keys are copied over; anything else is dropped so a caller can never smuggle
// an arbitrary predicate into a query. Identifier fields must parse as
// canonical UUIDs and date fields as dates, otherwise the whole filter is
// rejected before any query is built.
func Sanitize(raw map[string]string) (SafeFilter, error) {
	var f SafeFilter

	if v, ok := nonEmpty(raw, "user"); ok {
		id, err := kernel.ParseID(v)
		if err != nil {
			return SafeFilter{}, ErrInvalidIDFormat("user").WithCause(err)
		}
		userID := kernel.UserID(id)
		f.User = &userID
	}

	if v, ok := nonEmpty(raw, "company"); ok {
		id, err := kernel.ParseID(v)
		if err != nil {
			return SafeFilter{}, ErrInvalidIDFormat("company").WithCause(err)
		}
		companyID := kernel.CompanyID(id)
		f.Company = &companyID
	}

	if v, ok := nonEmpty(raw, "status"); ok {
		id, err := kernel.ParseID(v)
		if err != nil {
			return SafeFilter{}, ErrInvalidIDFormat("status").WithCause(err)
		}
		statusID := kernel.StatusID(id)
		f.Status = &statusID
	}

	if v, ok := nonEmpty(raw, "dateFrom"); ok {
		t, err := parseDate(v)
		if err != nil {
			return SafeFilter{}, ErrInvalidDateFormat("dateFrom").WithCause(err)
		}
		f.DateFrom = &t
	}

	if v, ok := nonEmpty(raw, "dateTo"); ok {
		t, err := parseDate(v)
		if err != nil {
			return SafeFilter{}, ErrInvalidDateFormat("dateTo").WithCause(err)
		}
		f.DateTo = &t
	}

	if v, ok := nonEmpty(raw, "position_title"); ok {
		position := v
		f.PositionTitle = &position
	}

	return f, nil
}

// SanitizeDateRange validates an explicit date-range query. Unlike the
// optional bounds in Sanitize, both bounds are required here.
func SanitizeDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	if startDate == "" {
		return time.Time{}, time.Time{}, ErrMissingRequiredField("startDate")
	}
	if endDate == "" {
		return time.Time{}, time.Time{}, ErrMissingRequiredField("endDate")
	}

	from, err := parseDate(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateFormat("startDate").WithCause(err)
	}
	to, err := parseDate(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateFormat("endDate").WithCause(err)
	}

	return from, to, nil
}

func nonEmpty(raw map[string]string, key string) (string, bool) {
	v, ok := raw[key]
	return v, ok && v != ""
}

func parseDate(v string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
