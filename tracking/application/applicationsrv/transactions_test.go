package applicationsrv

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/acamacho/jobtrail/pkg/errx"
	"github.com/acamacho/jobtrail/pkg/kernel"
	"github.com/acamacho/jobtrail/pkg/txm"
	"github.com/acamacho/jobtrail/tracking/application"
	"github.com/acamacho/jobtrail/tracking/application/applicationinfra"
	"github.com/acamacho/jobtrail/tracking/company"
	"github.com/acamacho/jobtrail/tracking/status"
	"github.com/acamacho/jobtrail/tracking/user"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	appID     = "0d4a7f3a-3c86-4f22-9df3-1a8e7e2b6f01"
	secondID  = "2f5b8c1d-4e97-4a33-8ef4-2b9f8f3c7a02"
	ownerID   = "8f14e45f-ceea-4e67-aab5-95efb1a17a86"
	newOwner  = "aaaaaaaa-bbbb-4ccc-8ddd-eeeeeeeeeeee"
	companyID = "1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed"
	statusID  = "6ec0bd7f-11c0-43da-975e-2a8ad9ebae0b"
)

// fakeUserRepository answers existence checks from a fixed set.
type fakeUserRepository struct {
	existing map[string]bool
}

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepository) GetByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	return nil, user.ErrUserNotFound()
}
func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, user.ErrUserNotFound()
}
func (f *fakeUserRepository) List(ctx context.Context) ([]user.User, error) { return nil, nil }
func (f *fakeUserRepository) Exists(ctx context.Context, id kernel.UserID) (bool, error) {
	return f.existing[id.String()], nil
}
func (f *fakeUserRepository) DeleteCascade(ctx context.Context, id kernel.UserID) error { return nil }

type fakeCompanyRepository struct{}

func (f *fakeCompanyRepository) Create(ctx context.Context, c *company.Company) error { return nil }
func (f *fakeCompanyRepository) GetByID(ctx context.Context, id kernel.CompanyID) (*company.Company, error) {
	return nil, company.ErrCompanyNotFound()
}
func (f *fakeCompanyRepository) List(ctx context.Context) ([]company.Company, error) {
	return nil, nil
}
func (f *fakeCompanyRepository) Exists(ctx context.Context, id kernel.CompanyID) (bool, error) {
	return true, nil
}
func (f *fakeCompanyRepository) DeleteCascade(ctx context.Context, id kernel.CompanyID) error {
	return nil
}

type fakeStatusRepository struct{}

func (f *fakeStatusRepository) Create(ctx context.Context, s *status.Status) error { return nil }
func (f *fakeStatusRepository) GetByID(ctx context.Context, id kernel.StatusID) (*status.Status, error) {
	return nil, status.ErrStatusNotFound()
}
func (f *fakeStatusRepository) List(ctx context.Context) ([]status.Status, error) { return nil, nil }
func (f *fakeStatusRepository) Exists(ctx context.Context, id kernel.StatusID) (bool, error) {
	return true, nil
}

func newMockService(t *testing.T) (*ApplicationService, sqlmock.Sqlmock) {
	t.Helper()
	rawDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { rawDB.Close() })

	db := sqlx.NewDb(rawDB, "sqlmock")
	svc := NewApplicationService(
		applicationinfra.NewPostgresApplicationRepository(db),
		&fakeUserRepository{existing: map[string]bool{ownerID: true, newOwner: true}},
		&fakeCompanyRepository{},
		&fakeStatusRepository{},
		txm.NewManager(db),
	)
	return svc, mock
}

func applicationColumns() []string {
	return []string{
		"id", "user_id", "company_id", "status_id", "position_title",
		"date_applied", "source", "notes", "created_at", "updated_at",
	}
}

func applicationRow(id, userID string) []driver.Value {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	return []driver.Value{id, userID, companyID, statusID, "Software Engineer", now, nil, nil, now, now}
}

func expectLockedRow(mock sqlmock.Sqlmock, id, userID string) {
	mock.ExpectQuery("SELECT (.+) FOR UPDATE").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(applicationColumns()).AddRow(applicationRow(id, userID)...))
}

func TestTransferOwnershipCommits(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectExec("SET LOCAL synchronous_commit").WillReturnResult(sqlmock.NewResult(0, 0))
	expectLockedRow(mock, appID, ownerID)
	mock.ExpectExec("UPDATE applications").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	transferred, err := svc.TransferOwnership(context.Background(), kernel.ApplicationID(appID), application.TransferRequest{
		NewUserID:      newOwner,
		IsolationLevel: "READ_COMMITTED",
	})

	require.NoError(t, err)
	assert.Equal(t, kernel.UserID(newOwner), transferred.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferOwnershipDefaultsToSerializable(t *testing.T) {
	svc, mock := newMockService(t)

	// An omitted isolation level runs the transfer under the SERIALIZABLE
	// profile: full WAL flush (synchronous_commit on) and a locked read of
	// the row before reassignment.
	mock.ExpectBegin()
	mock.ExpectExec("SET LOCAL synchronous_commit TO on$").WillReturnResult(sqlmock.NewResult(0, 0))
	expectLockedRow(mock, appID, ownerID)
	mock.ExpectExec("UPDATE applications").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	transferred, err := svc.TransferOwnership(context.Background(), kernel.ApplicationID(appID), application.TransferRequest{
		NewUserID: newOwner,
	})

	require.NoError(t, err)
	assert.Equal(t, kernel.UserID(newOwner), transferred.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferOwnershipUnknownUserSkipsTransaction(t *testing.T) {
	svc, mock := newMockService(t)

	_, err := svc.TransferOwnership(context.Background(), kernel.ApplicationID(appID), application.TransferRequest{
		NewUserID: "11111111-2222-4333-8444-555555555555",
	})

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "USER_NOT_FOUND", e.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferOwnershipInvalidIDSkipsTransaction(t *testing.T) {
	svc, mock := newMockService(t)

	_, err := svc.TransferOwnership(context.Background(), kernel.ApplicationID(appID), application.TransferRequest{
		NewUserID: "not-a-uuid",
	})

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "APPLICATION_INVALID_FIELD_VALUE", e.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferOwnershipUnknownProfile(t *testing.T) {
	svc, _ := newMockService(t)

	_, err := svc.TransferOwnership(context.Background(), kernel.ApplicationID(appID), application.TransferRequest{
		NewUserID:      newOwner,
		IsolationLevel: "CHAOS_MODE",
	})

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "TXM_UNKNOWN_PROFILE", e.Code)
}

func TestBulkUpdateAllOrNothing(t *testing.T) {
	svc, mock := newMockService(t)

	// Second row is missing: the first update must be rolled back with it.
	mock.ExpectBegin()
	mock.ExpectExec("SET LOCAL synchronous_commit").WillReturnResult(sqlmock.NewResult(0, 0))
	expectLockedRow(mock, appID, ownerID)
	mock.ExpectExec("UPDATE applications").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FOR UPDATE").
		WithArgs(secondID).
		WillReturnRows(sqlmock.NewRows(applicationColumns()))
	mock.ExpectRollback()

	_, err := svc.BulkUpdate(context.Background(), application.BulkUpdateRequest{
		Updates: []application.BulkUpdateItem{
			{ID: appID, Changes: map[string]any{"position_title": "Staff Engineer"}},
			{ID: secondID, Changes: map[string]any{"notes": "ping recruiter"}},
		},
	})

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "APPLICATION_NOT_FOUND", e.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkUpdateCommitsAllItems(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectExec("SET LOCAL synchronous_commit").WillReturnResult(sqlmock.NewResult(0, 0))
	expectLockedRow(mock, appID, ownerID)
	mock.ExpectExec("UPDATE applications").WillReturnResult(sqlmock.NewResult(0, 1))
	expectLockedRow(mock, secondID, ownerID)
	mock.ExpectExec("UPDATE applications").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := svc.BulkUpdate(context.Background(), application.BulkUpdateRequest{
		Updates: []application.BulkUpdateItem{
			{ID: appID, Changes: map[string]any{"position_title": "Staff Engineer"}},
			{ID: secondID, Changes: map[string]any{"notes": "ping recruiter"}},
		},
		IsolationLevel: "SERIALIZABLE",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Updated)
	assert.Equal(t, []kernel.ApplicationID{kernel.ApplicationID(appID), kernel.ApplicationID(secondID)}, result.ApplicationIDs)
	assert.Equal(t, "SERIALIZABLE", result.IsolationLevel)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkUpdateEmptyBatch(t *testing.T) {
	svc, _ := newMockService(t)

	_, err := svc.BulkUpdate(context.Background(), application.BulkUpdateRequest{})

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "APPLICATION_EMPTY_BULK_UPDATE", e.Code)
}

func TestBulkUpdateInvalidChangeRollsBack(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectExec("SET LOCAL synchronous_commit").WillReturnResult(sqlmock.NewResult(0, 0))
	expectLockedRow(mock, appID, ownerID)
	mock.ExpectRollback()

	_, err := svc.BulkUpdate(context.Background(), application.BulkUpdateRequest{
		Updates: []application.BulkUpdateItem{
			{ID: appID, Changes: map[string]any{"user": "not-a-uuid"}},
		},
	})

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "APPLICATION_INVALID_FIELD_VALUE", e.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
