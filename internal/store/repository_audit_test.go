package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/invisible-wallet/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuditRepo(t *testing.T) (*auditRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t, DialectPostgres)
	return &auditRepository{DB: db, logger: db.logger}, mock
}

func TestSaveAuditLog_WithoutWallet(t *testing.T) {
	repo, mock := newTestAuditRepo(t)
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	entry := models.AuditLogEntry{
		ID:         "a1",
		Operation:  models.AuditOperationRecover,
		Timestamp:  ts,
		PlatformID: "platform-1",
		Network:    models.Testnet,
		Error:      "wallet not found",
	}

	// empty wallet id is stored as NULL
	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs("a1", nil, "recover", "platform-1", "testnet", false, "wallet not found", "{}", ts).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SaveAuditLog(context.Background(), entry))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveAuditLog_Error(t *testing.T) {
	repo, mock := newTestAuditRepo(t)
	mock.ExpectExec("INSERT INTO audit_logs").WillReturnError(errors.New("disk full"))

	err := repo.SaveAuditLog(context.Background(), models.AuditLogEntry{ID: "a1", Operation: models.AuditOperationSign})
	assert.ErrorIs(t, err, ErrStorage)
}

func TestListAuditLogs(t *testing.T) {
	repo, mock := newTestAuditRepo(t)
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(auditLogColumns).
		AddRow("a2", "w1", "sign", "platform-1", "testnet", true, "", `{"kind":"conversion"}`, ts.Add(time.Minute)).
		AddRow("a1", "w1", "create", "platform-1", "testnet", true, "", "{}", ts)

	mock.ExpectQuery("SELECT (.+) FROM audit_logs WHERE wallet_id = \\$1 ORDER BY created_at DESC LIMIT 10").
		WithArgs("w1").
		WillReturnRows(rows)

	entries, err := repo.ListAuditLogs(context.Background(), "w1", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.AuditOperationSign, entries[0].Operation)
	assert.Equal(t, "conversion", entries[0].Metadata["kind"])
	assert.Equal(t, "w1", entries[1].WalletID)
	assert.True(t, entries[1].Success)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAuditLogs_QueryError(t *testing.T) {
	repo, mock := newTestAuditRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM audit_logs").WillReturnError(errors.New("boom"))

	_, err := repo.ListAuditLogs(context.Background(), "w1", 0)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestListAuditLogs_RowError(t *testing.T) {
	repo, mock := newTestAuditRepo(t)
	rows := sqlmock.NewRows(auditLogColumns).
		AddRow("a1", "w1", "sign", "p", "testnet", true, "", "{}", time.Now()).
		RowError(0, errors.New("broken row"))
	mock.ExpectQuery("SELECT (.+) FROM audit_logs").WillReturnRows(rows)

	_, err := repo.ListAuditLogs(context.Background(), "w1", 0)
	assert.ErrorIs(t, err, ErrStorage)
}
