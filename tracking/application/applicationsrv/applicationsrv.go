package applicationsrv

import (
	"context"
	"time"

	"github.com/acamacho/jobtrail/pkg/errx"
	"github.com/acamacho/jobtrail/pkg/kernel"
	"github.com/acamacho/jobtrail/pkg/txm"
	"github.com/acamacho/jobtrail/tracking/application"
	"github.com/acamacho/jobtrail/tracking/company"
	"github.com/acamacho/jobtrail/tracking/status"
	"github.com/acamacho/jobtrail/tracking/user"
	"github.com/google/uuid"
)

// ApplicationService provides business operations for applications
type ApplicationService struct {
	applicationRepo application.Repository
	userRepo        user.Repository
	companyRepo     company.Repository
	statusRepo      status.Repository
	txm             *txm.Manager
}

// NewApplicationService creates a new instance of the application service
func NewApplicationService(
	applicationRepo application.Repository,
	userRepo user.Repository,
	companyRepo company.Repository,
	statusRepo status.Repository,
	manager *txm.Manager,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		userRepo:        userRepo,
		companyRepo:     companyRepo,
		statusRepo:      statusRepo,
		txm:             manager,
	}
}

// CreateApplication creates a new application
func (s *ApplicationService) CreateApplication(ctx context.Context, req application.CreateApplicationRequest) (*application.Application, error) {
	userID, err := kernel.ParseID(req.User)
	if err != nil {
		return nil, application.ErrInvalidFieldValue().WithDetail("field", "user").WithCause(err)
	}
	companyID, err := kernel.ParseID(req.Company)
	if err != nil {
		return nil, application.ErrInvalidFieldValue().WithDetail("field", "company").WithCause(err)
	}
	statusID, err := kernel.ParseID(req.Status)
	if err != nil {
		return nil, application.ErrInvalidFieldValue().WithDetail("field", "status").WithCause(err)
	}

	if err := s.validateUserExists(ctx, kernel.UserID(userID)); err != nil {
		return nil, err
	}
	if err := s.validateCompanyExists(ctx, kernel.CompanyID(companyID)); err != nil {
		return nil, err
	}
	if err := s.validateStatusExists(ctx, kernel.StatusID(statusID)); err != nil {
		return nil, err
	}

	dateApplied := time.Now()
	if req.DateApplied != "" {
		parsed, err := time.Parse("2006-01-02", req.DateApplied)
		if err != nil {
			parsed, err = time.Parse(time.RFC3339, req.DateApplied)
		}
		if err != nil {
			return nil, application.ErrInvalidFieldValue().WithDetail("field", "date_applied").WithCause(err)
		}
		dateApplied = parsed
	}

	newApplication := &application.Application{
		ID:            kernel.NewApplicationID(uuid.NewString()),
		UserID:        kernel.UserID(userID),
		CompanyID:     kernel.CompanyID(companyID),
		StatusID:      kernel.StatusID(statusID),
		PositionTitle: req.PositionTitle,
		DateApplied:   dateApplied,
		Source:        req.Source,
		Notes:         req.Notes,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.applicationRepo.Create(ctx, newApplication); err != nil {
		if _, ok := err.(*errx.Error); ok {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to create application", errx.TypeInternal)
	}

	return newApplication, nil
}

// GetApplicationDetail retrieves an application with its related entities
func (s *ApplicationService) GetApplicationDetail(ctx context.Context, id kernel.ApplicationID) (*application.ApplicationDetailResponse, error) {
	detail, err := s.applicationRepo.GetDetailByID(ctx, id)
	if err != nil {
		if _, ok := err.(*errx.Error); ok {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to get application detail", errx.TypeInternal)
	}

	return detail, nil
}

// ListApplications retrieves a page of applications with their related
// entities
func (s *ApplicationService) ListApplications(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[application.ApplicationDetailResponse], error) {
	details, err := s.applicationRepo.ListDetails(ctx, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applications", errx.TypeInternal)
	}

	return details, nil
}

// UpdateApplication applies a partial update to an application
func (s *ApplicationService) UpdateApplication(ctx context.Context, id kernel.ApplicationID, req application.UpdateApplicationRequest) (*application.Application, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}

	if err := app.ApplyChanges(req.Changes); err != nil {
		return nil, err
	}

	if err := s.applicationRepo.Update(ctx, id, app); err != nil {
		if _, ok := err.(*errx.Error); ok {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to update application", errx.TypeInternal)
	}

	return app, nil
}

// DeleteApplication deletes an application
func (s *ApplicationService) DeleteApplication(ctx context.Context, id kernel.ApplicationID) error {
	if err := s.applicationRepo.Delete(ctx, id); err != nil {
		if _, ok := err.(*errx.Error); ok {
			return err
		}
		return errx.Wrap(err, "failed to delete application", errx.TypeInternal)
	}

	return nil
}

// ============================================================================
// Validation Helper Methods
// ============================================================================

func (s *ApplicationService) validateUserExists(ctx context.Context, id kernel.UserID) error {
	exists, err := s.userRepo.Exists(ctx, id)
	if err != nil {
		return errx.Wrap(err, "failed to validate user existence", errx.TypeInternal)
	}
	if !exists {
		return user.ErrUserNotFound().WithDetail("user_id", id.String())
	}
	return nil
}

func (s *ApplicationService) validateCompanyExists(ctx context.Context, id kernel.CompanyID) error {
	exists, err := s.companyRepo.Exists(ctx, id)
	if err != nil {
		return errx.Wrap(err, "failed to validate company existence", errx.TypeInternal)
	}
	if !exists {
		return company.ErrCompanyNotFound().WithDetail("company_id", id.String())
	}
	return nil
}

func (s *ApplicationService) validateStatusExists(ctx context.Context, id kernel.StatusID) error {
	exists, err := s.statusRepo.Exists(ctx, id)
	if err != nil {
		return errx.Wrap(err, "failed to validate status existence", errx.TypeInternal)
	}
	if !exists {
		return status.ErrStatusNotFound().WithDetail("status_id", id.String())
	}
	return nil
}
