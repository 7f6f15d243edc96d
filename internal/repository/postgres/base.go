package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jwalitptl/bizmanager-api/internal/model"
	"github.com/jwalitptl/bizmanager-api/internal/repository"
	"github.com/jwalitptl/bizmanager-api/pkg/errors"
	"github.com/jwalitptl/bizmanager-api/pkg/metrics"
)

// Postgres SQLSTATE codes the repositories translate.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeNotNullViolation     = "23502"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeStringTooLong        = "22001"
	codeNumericOutOfRange    = "22003"
)

// MsgValueOutOfRange reports a value the column cannot hold.
const MsgValueOutOfRange = "Ensure the values fit within the allowed length and range."

// uniqueConstraints maps unique index names onto the field error shown to callers.
var uniqueConstraints = map[string]errors.FieldErrors{
	"users_username_key":  {"username": {model.MsgUsernameTaken}},
	"clients_owner_email": {errors.MessageKey: {model.MsgClientEmailTaken}},
	"service_products_service_id_product_id_key": {"products": {model.MsgProductsDuplicate}},
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db      *sqlx.DB
	metrics *metrics.Metrics
}

// NewBaseRepository creates a new base repository. m may be nil.
func NewBaseRepository(db *sqlx.DB, m *metrics.Metrics) BaseRepository {
	return BaseRepository{db: db, metrics: m}
}

// WithTx executes fn within a transaction started with opts.
func (r *BaseRepository) WithTx(ctx context.Context, opts *sql.TxOptions, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// track starts timing op. Call the result deferred with the named error:
//
//	defer r.track("client_create")(&err)
func (r *BaseRepository) track(op string) func(*error) {
	start := time.Now()
	return func(err *error) {
		r.metrics.ObserveDatabase(op, start, *err)
	}
}

var serializable = &sql.TxOptions{Isolation: sql.LevelSerializable}

// translate maps driver errors onto application errors. sql.ErrNoRows becomes
// a not-found for resource; anything unrecognised is wrapped as internal.
// Application errors and repository sentinels pass through unchanged.
func translate(resource, action string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.As(err); ok {
		return err
	}
	if stderrors.Is(err, repository.ErrUnknownProducts) {
		return err
	}
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.NotFound(resource, err)
	}

	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case codeUniqueViolation:
			fields, ok := uniqueConstraints[pqErr.Constraint]
			if !ok {
				fields = errors.FieldErrors{errors.MessageKey: {fmt.Sprintf("%s already exists.", resource)}}
			}
			return errors.Conflict(copyFields(fields), fmt.Errorf("failed to %s %s: %w", action, resource, err))
		case codeSerializationFailure:
			return errors.Conflict(
				errors.FieldErrors{errors.MessageKey: {"The request conflicted with a concurrent change. Retry it."}},
				fmt.Errorf("failed to %s %s: %w", action, resource, err),
			)
		case codeStringTooLong, codeNumericOutOfRange:
			field := errors.MessageKey
			if pqErr.Column != "" {
				field = pqErr.Column
			}
			appErr := errors.ValidationMessage(field, MsgValueOutOfRange)
			appErr.Err = fmt.Errorf("failed to %s %s: %w", action, resource, err)
			return appErr
		case codeForeignKeyViolation, codeNotNullViolation, codeCheckViolation:
			return errors.Integrity(fmt.Errorf("failed to %s %s: %w", action, resource, err))
		}
	}

	return errors.Internal(fmt.Errorf("failed to %s %s: %w", action, resource, err))
}

func copyFields(f errors.FieldErrors) errors.FieldErrors {
	out := errors.FieldErrors{}
	out.Merge(f)
	return out
}

// expectOne turns a zero-row update into a not-found.
func expectOne(resource string, result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound(resource, nil)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// searchPattern builds the ILIKE argument for an optional search term. The
// term matches literally; queries must use ESCAPE '\'.
func searchPattern(filter model.ListFilter) string {
	if filter.Search == "" {
		return ""
	}
	return "%" + likeEscaper.Replace(filter.Search) + "%"
}
