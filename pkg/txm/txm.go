// Package txm wraps a unit of work in a database transaction with a named
// isolation/durability profile. Either every write performed through the
// handle commits together, or none do.
package txm

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/acamacho/jobtrail/pkg/errx"
	"github.com/acamacho/jobtrail/pkg/logx"
	"github.com/jmoiron/sqlx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("TXM")

var (
	CodeTransactionAborted = ErrRegistry.Register("TRANSACTION_ABORTED", errx.TypeInternal, http.StatusInternalServerError, "Transaction aborted")
	CodeUnknownProfile     = ErrRegistry.Register("UNKNOWN_PROFILE", errx.TypeValidation, http.StatusBadRequest, "Unknown isolation profile")
)

func ErrTransactionAborted(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeTransactionAborted, cause)
}

func ErrUnknownProfile() *errx.Error {
	return ErrRegistry.New(CodeUnknownProfile)
}

// Profile is a named isolation/durability configuration. SynchronousCommit
// maps the durability concern: "on" waits for WAL flush (majority-equivalent),
// "local" acknowledges on the local node only.
type Profile struct {
	Name              string
	Isolation         sql.IsolationLevel
	SynchronousCommit string
}

var (
	// Serializable is the strongest profile and the default
	Serializable = Profile{
		Name:              "SERIALIZABLE",
		Isolation:         sql.LevelSerializable,
		SynchronousCommit: "on",
	}

	ReadCommitted = Profile{
		Name:              "READ_COMMITTED",
		Isolation:         sql.LevelReadCommitted,
		SynchronousCommit: "local",
	}

	ReadUncommitted = Profile{
		Name:              "READ_UNCOMMITTED",
		Isolation:         sql.LevelReadUncommitted,
		SynchronousCommit: "local",
	}
)

// ProfileByName resolves a profile from the wire name. An empty name selects
// Serializable; an unrecognized one is rejected.
func ProfileByName(name string) (Profile, error) {
	switch name {
	case "", Serializable.Name:
		return Serializable, nil
	case ReadCommitted.Name:
		return ReadCommitted, nil
	case ReadUncommitted.Name:
		return ReadUncommitted, nil
	default:
		return Profile{}, ErrUnknownProfile().WithDetail("isolation_level", name)
	}
}

// UnitOfWork performs reads/writes through the transaction handle. Any error
// it returns aborts the transaction and is re-raised unchanged.
type UnitOfWork func(tx *sqlx.Tx) error

// Manager acquires a dedicated transaction per call and releases it
// unconditionally. It does not retry on conflict; a serialization failure
// surfaces directly to the caller.
type Manager struct {
	db *sqlx.DB
}

// NewManager creates a transaction manager over the given pool
func NewManager(db *sqlx.DB) *Manager {
	return &Manager{db: db}
}

// Run executes fn inside a transaction using the given profile. On success
// the transaction commits; on any error it rolls back and the original error
// is returned. The session is released on every exit path.
func (m *Manager) Run(ctx context.Context, profile Profile, fn UnitOfWork) error {
	tx, err := m.db.BeginTxx(ctx, &sql.TxOptions{Isolation: profile.Isolation})
	if err != nil {
		return ErrTransactionAborted(err).WithDetail("operation", "begin")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "SET LOCAL synchronous_commit TO "+profile.SynchronousCommit); err != nil {
		return ErrTransactionAborted(err).WithDetail("operation", "set_synchronous_commit")
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			logx.Errorf("Failed to roll back %s transaction: %v", profile.Name, rbErr)
		}
		// Re-raise the unit of work's error unchanged
		return err
	}

	if err := tx.Commit(); err != nil {
		return ErrTransactionAborted(err).WithDetail("operation", "commit")
	}

	return nil
}

// Run executes fn inside a transaction and returns its result on commit.
// Generic companion to Manager.Run for units of work that produce a value.
func Run[T any](ctx context.Context, m *Manager, profile Profile, fn func(tx *sqlx.Tx) (T, error)) (T, error) {
	var result T
	err := m.Run(ctx, profile, func(tx *sqlx.Tx) error {
		var fnErr error
		result, fnErr = fn(tx)
		return fnErr
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
