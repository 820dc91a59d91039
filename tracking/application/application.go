package application

import (
	"time"

	"github.com/acamacho/jobtrail/pkg/kernel"
)

// Application tracks one job application of a user at a company. The user,
// company and status references are enforced by foreign keys at write time;
// externally supplied values for them must be validated before they reach a
// query.
type Application struct {
	ID            kernel.ApplicationID `db:"id" json:"id"`
	UserID        kernel.UserID        `db:"user_id" json:"user_id"`
	CompanyID     kernel.CompanyID     `db:"company_id" json:"company_id"`
	StatusID      kernel.StatusID      `db:"status_id" json:"status_id"`
	PositionTitle string               `db:"position_title" json:"position_title"`
	DateApplied   time.Time            `db:"date_applied" json:"date_applied"`
	Source        *string              `db:"source" json:"source,omitempty"`
	Notes         *string              `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time            `db:"updated_at" json:"updated_at"`
}

// mergeDateFormats are accepted for date_applied values in a changes map
var mergeDateFormats = []string{time.RFC3339, "2006-01-02"}

// ApplyChanges merges a generic field/value map onto the application.
// Only known fields are applied; unknown keys are ignored. Entity-reference
// values must be canonical identifiers and dates must parse, otherwise the
// merge fails without partial application.
func (a *Application) ApplyChanges(changes map[string]any) error {
	merged := *a

	for field, value := range changes {
		switch field {
		case "user":
			id, err := stringID(field, value)
			if err != nil {
				return err
			}
			merged.UserID = kernel.UserID(id)
		case "company":
			id, err := stringID(field, value)
			if err != nil {
				return err
			}
			merged.CompanyID = kernel.CompanyID(id)
		case "status":
			id, err := stringID(field, value)
			if err != nil {
				return err
			}
			merged.StatusID = kernel.StatusID(id)
		case "position_title":
			s, ok := value.(string)
			if !ok || s == "" {
				return ErrInvalidFieldValue().WithDetail("field", field)
			}
			merged.PositionTitle = s
		case "date_applied":
			s, ok := value.(string)
			if !ok {
				return ErrInvalidFieldValue().WithDetail("field", field)
			}
			parsed, err := parseMergeDate(s)
			if err != nil {
				return ErrInvalidFieldValue().WithDetail("field", field).WithCause(err)
			}
			merged.DateApplied = parsed
		case "source":
			s, ok := value.(string)
			if !ok {
				return ErrInvalidFieldValue().WithDetail("field", field)
			}
			merged.Source = &s
		case "notes":
			s, ok := value.(string)
			if !ok {
				return ErrInvalidFieldValue().WithDetail("field", field)
			}
			merged.Notes = &s
		}
	}

	merged.UpdatedAt = time.Now()
	*a = merged
	return nil
}

func stringID(field string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", ErrInvalidFieldValue().WithDetail("field", field)
	}

	id, err := kernel.ParseID(s)
	if err != nil {
		return "", ErrInvalidFieldValue().WithDetail("field", field).WithCause(err)
	}

	return id, nil
}

func parseMergeDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range mergeDateFormats {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
