package applicationsrv

import (
	"context"
	"time"

	"github.com/acamacho/jobtrail/pkg/kernel"
	"github.com/acamacho/jobtrail/pkg/logx"
	"github.com/acamacho/jobtrail/pkg/txm"
	"github.com/acamacho/jobtrail/tracking/application"
	"github.com/jmoiron/sqlx"
)

// TransferOwnership reassigns an application to another user inside a single
// transaction. The isolation profile is chosen by the caller; an empty name
// selects the serializable default.
func (s *ApplicationService) TransferOwnership(ctx context.Context, id kernel.ApplicationID, req application.TransferRequest) (*application.Application, error) {
	newUserID, err := kernel.ParseID(req.NewUserID)
	if err != nil {
		return nil, application.ErrInvalidFieldValue().WithDetail("field", "newUserId").WithCause(err)
	}

	profile, err := txm.ProfileByName(req.IsolationLevel)
	if err != nil {
		return nil, err
	}

	if err := s.validateUserExists(ctx, kernel.UserID(newUserID)); err != nil {
		return nil, err
	}

	transferred, err := txm.Run(ctx, s.txm, profile, func(tx *sqlx.Tx) (*application.Application, error) {
		app, err := s.applicationRepo.GetForUpdate(ctx, tx, id)
		if err != nil {
			return nil, err
		}

		app.UserID = kernel.UserID(newUserID)
		app.UpdatedAt = time.Now()

		if err := s.applicationRepo.UpdateTx(ctx, tx, app); err != nil {
			return nil, err
		}

		return app, nil
	})
	if err != nil {
		return nil, err
	}

	logx.Infof("Transferred application %s to user %s under %s", id.String(), newUserID, profile.Name)
	return transferred, nil
}

// BulkUpdate applies a batch of partial updates atomically. Either every
// update in the batch lands or none of them do.
func (s *ApplicationService) BulkUpdate(ctx context.Context, req application.BulkUpdateRequest) (*application.BulkUpdateResponse, error) {
	if len(req.Updates) == 0 {
		return nil, application.ErrEmptyBulkUpdate()
	}

	profile, err := txm.ProfileByName(req.IsolationLevel)
	if err != nil {
		return nil, err
	}

	updated, err := txm.Run(ctx, s.txm, profile, func(tx *sqlx.Tx) ([]kernel.ApplicationID, error) {
		result := make([]kernel.ApplicationID, 0, len(req.Updates))

		for _, item := range req.Updates {
			appID, err := kernel.ParseID(item.ID)
			if err != nil {
				return nil, application.ErrInvalidFieldValue().WithDetail("field", "id").WithCause(err)
			}

			app, err := s.applicationRepo.GetForUpdate(ctx, tx, kernel.ApplicationID(appID))
			if err != nil {
				return nil, err
			}

			if err := app.ApplyChanges(item.Changes); err != nil {
				return nil, err
			}

			if err := s.applicationRepo.UpdateTx(ctx, tx, app); err != nil {
				return nil, err
			}

			result = append(result, app.ID)
		}

		return result, nil
	})
	if err != nil {
		return nil, err
	}

	logx.Infof("Bulk updated %d applications under %s", len(updated), profile.Name)
	return &application.BulkUpdateResponse{
		Updated:        len(updated),
		ApplicationIDs: updated,
		IsolationLevel: profile.Name,
	}, nil
}
