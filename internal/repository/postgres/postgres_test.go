package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/bizmanager-api/internal/model"
	"github.com/jwalitptl/bizmanager-api/internal/repository"
	"github.com/jwalitptl/bizmanager-api/pkg/errors"
	"github.com/jwalitptl/bizmanager-api/pkg/metrics"
)

func newMock(t *testing.T) (BaseRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBaseRepository(sqlx.NewDb(db, "postgres"), nil), mock
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		fields errors.FieldErrors
	}{
		{
			name:   "no rows",
			err:    sql.ErrNoRows,
			status: http.StatusNotFound,
		},
		{
			name:   "client email index",
			err:    &pq.Error{Code: codeUniqueViolation, Constraint: "clients_owner_email"},
			status: http.StatusConflict,
			fields: errors.FieldErrors{errors.MessageKey: {model.MsgClientEmailTaken}},
		},
		{
			name:   "username",
			err:    &pq.Error{Code: codeUniqueViolation, Constraint: "users_username_key"},
			status: http.StatusConflict,
			fields: errors.FieldErrors{"username": {model.MsgUsernameTaken}},
		},
		{
			name:   "foreign key",
			err:    &pq.Error{Code: codeForeignKeyViolation},
			status: http.StatusInternalServerError,
		},
		{
			name:   "not null",
			err:    fmt.Errorf("insert: %w", &pq.Error{Code: codeNotNullViolation}),
			status: http.StatusInternalServerError,
		},
		{
			name:   "numeric overflow",
			err:    &pq.Error{Code: codeNumericOutOfRange},
			status: http.StatusBadRequest,
			fields: errors.FieldErrors{errors.MessageKey: {MsgValueOutOfRange}},
		},
		{
			name:   "string too long on a known column",
			err:    &pq.Error{Code: codeStringTooLong, Column: "email"},
			status: http.StatusBadRequest,
			fields: errors.FieldErrors{"email": {MsgValueOutOfRange}},
		},
		{
			name:   "serialization",
			err:    &pq.Error{Code: codeSerializationFailure},
			status: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr, ok := errors.As(translate("client", "create", tt.err))
			require.True(t, ok)
			assert.Equal(t, tt.status, appErr.StatusCode())
			if tt.fields != nil {
				assert.Equal(t, tt.fields, appErr.Fields)
			}
		})
	}
}

func TestTranslatePassesThrough(t *testing.T) {
	assert.Nil(t, translate("client", "get", nil))
	assert.ErrorIs(t, translate("service", "create", repository.ErrUnknownProducts), repository.ErrUnknownProducts)

	nf := errors.NotFound("client", nil)
	assert.Same(t, nf, translate("client", "update", nf))

	assert.True(t, errors.Is(translate("client", "get", stderrors.New("boom")), errors.ErrInternal))
}

func TestTranslateDoesNotShareFieldMaps(t *testing.T) {
	err := &pq.Error{Code: codeUniqueViolation, Constraint: "clients_owner_email"}
	first, _ := errors.As(translate("client", "create", err))
	first.Fields.Add("extra", "x")

	second, _ := errors.As(translate("client", "create", err))
	assert.NotContains(t, second.Fields, "extra")
}

func TestEnsureSchema(t *testing.T) {
	base, mock := newMock(t)

	stmts := statements()
	require.NotEmpty(t, stmts)
	for range stmts {
		mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, EnsureSchema(context.Background(), base.db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchemaStopsOnError(t *testing.T) {
	base, mock := newMock(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnError(stderrors.New("permission denied"))

	err := EnsureSchema(context.Background(), base.db)
	assert.ErrorContains(t, err, "statement 1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxRollsBackOnError(t *testing.T) {
	base, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	err := base.WithTx(context.Background(), nil, func(*sqlx.Tx) error {
		return stderrors.New("abort")
	})
	assert.EqualError(t, err, "abort")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrackRecordsOutcome(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := metrics.NewMetrics("test", prometheus.NewRegistry())
	repo := NewClientRepository(NewBaseRepository(sqlx.NewDb(db, "postgres"), m))

	mock.ExpectExec("UPDATE clients").WillReturnResult(sqlmock.NewResult(0, 0))
	err = repo.SoftDelete(context.Background(), uuid.New(), uuid.New(), time.Now())
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatabaseOperations.WithLabelValues("client_delete", "error")))
}

func decimalOf(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSearchPatternMatchesLiterally(t *testing.T) {
	assert.Equal(t, "", searchPattern(model.ListFilter{}))
	assert.Equal(t, "%john%", searchPattern(model.ListFilter{Search: "john"}))
	assert.Equal(t, `%\_%`, searchPattern(model.ListFilter{Search: "_"}))
	assert.Equal(t, `%50\%\\off%`, searchPattern(model.ListFilter{Search: `50%\off`}))
}
