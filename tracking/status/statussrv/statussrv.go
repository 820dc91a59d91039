package statussrv

import (
	"context"
	"time"

	"github.com/acamacho/jobtrail/pkg/errx"
	"github.com/acamacho/jobtrail/pkg/kernel"
	"github.com/acamacho/jobtrail/tracking/status"
	"github.com/google/uuid"
)

// StatusService provides business operations for statuses
type StatusService struct {
	statusRepo status.Repository
}

// NewStatusService creates a new instance of the status service
func NewStatusService(statusRepo status.Repository) *StatusService {
	return &StatusService{
		statusRepo: statusRepo,
	}
}

// CreateStatus creates a new status
func (s *StatusService) CreateStatus(ctx context.Context, req status.CreateStatusRequest) (*status.Status, error) {
	newStatus := &status.Status{
		ID:        kernel.NewStatusID(uuid.NewString()),
		Label:     req.Label,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.statusRepo.Create(ctx, newStatus); err != nil {
		if _, ok := err.(*errx.Error); ok {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to create status", errx.TypeInternal)
	}

	return newStatus, nil
}

// GetStatusByID retrieves a status by ID
func (s *StatusService) GetStatusByID(ctx context.Context, id kernel.StatusID) (*status.Status, error) {
	st, err := s.statusRepo.GetByID(ctx, id)
	if err != nil {
		return nil, status.ErrStatusNotFound().WithDetail("status_id", id.String())
	}

	return st, nil
}

// ListStatuses retrieves all statuses
func (s *StatusService) ListStatuses(ctx context.Context) ([]status.Status, error) {
	statuses, err := s.statusRepo.List(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list statuses", errx.TypeInternal)
	}

	return statuses, nil
}
