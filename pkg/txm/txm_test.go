package txm

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/acamacho/jobtrail/pkg/errx"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockManager(t *testing.T) (*Manager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewManager(sqlx.NewDb(db, "sqlmock")), mock
}

func TestRunCommitsOnSuccess(t *testing.T) {
	m, mock := newMockManager(t)

	mock.ExpectBegin()
	mock.ExpectExec("SET LOCAL synchronous_commit").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE applications").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := m.Run(context.Background(), Serializable, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(context.Background(), "UPDATE applications SET user_id = $1 WHERE id = $2", "u", "a")
		return err
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRollsBackAndReRaisesUnitOfWorkError(t *testing.T) {
	m, mock := newMockManager(t)

	domainErr := errors.New("application not found")

	mock.ExpectBegin()
	mock.ExpectExec("SET LOCAL synchronous_commit").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE applications").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := m.Run(context.Background(), Serializable, func(tx *sqlx.Tx) error {
		// First write succeeds, then the unit of work fails: nothing may
		// remain applied and the original error must surface unchanged.
		if _, err := tx.ExecContext(context.Background(), "UPDATE applications SET user_id = $1 WHERE id = $2", "u", "a"); err != nil {
			return err
		}
		return domainErr
	})

	assert.Same(t, domainErr, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRollsBackOnStoreError(t *testing.T) {
	m, mock := newMockManager(t)

	storeErr := errors.New("deadlock detected")

	mock.ExpectBegin()
	mock.ExpectExec("SET LOCAL synchronous_commit").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE applications").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE applications").WillReturnError(storeErr)
	mock.ExpectRollback()

	err := m.Run(context.Background(), ReadCommitted, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(context.Background(), "UPDATE applications SET notes = $1 WHERE id = $2", "n", "a"); err != nil {
			return err
		}
		_, err := tx.ExecContext(context.Background(), "UPDATE applications SET notes = $1 WHERE id = $2", "n", "b")
		return err
	})

	assert.ErrorIs(t, err, storeErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunWrapsCommitFailure(t *testing.T) {
	m, mock := newMockManager(t)

	commitErr := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectExec("SET LOCAL synchronous_commit").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit().WillReturnError(commitErr)

	err := m.Run(context.Background(), Serializable, func(tx *sqlx.Tx) error {
		return nil
	})

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "TXM_TRANSACTION_ABORTED", e.Code)
	assert.ErrorIs(t, err, commitErr)
}

func TestRunReturnsValueOnCommit(t *testing.T) {
	m, mock := newMockManager(t)

	mock.ExpectBegin()
	mock.ExpectExec("SET LOCAL synchronous_commit").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	got, err := Run(context.Background(), m, Serializable, func(tx *sqlx.Tx) (int, error) {
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestProfileByName(t *testing.T) {
	tests := []struct {
		name    string
		want    Profile
		wantErr bool
	}{
		{name: "", want: Serializable},
		{name: "SERIALIZABLE", want: Serializable},
		{name: "READ_COMMITTED", want: ReadCommitted},
		{name: "READ_UNCOMMITTED", want: ReadUncommitted},
		{name: "SNAPSHOT", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ProfileByName(tt.name)
		if tt.wantErr {
			assert.Error(t, err, "profile %q", tt.name)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "profile %q", tt.name)
	}
}
