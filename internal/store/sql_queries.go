package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/invisible-wallet/models"
)

const (
	walletsTable   = "wallets"
	auditLogsTable = "audit_logs"
)

var walletColumns = []string{
	"id",
	"email",
	"platform_id",
	"network",
	"public_key",
	"encrypted_secret",
	"salt",
	"iv",
	"status",
	"metadata",
	"created_at",
	"last_accessed_at",
}

var auditLogColumns = []string{
	"id",
	"wallet_id",
	"operation",
	"platform_id",
	"network",
	"success",
	"error",
	"metadata",
	"created_at",
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func buildInsertWalletQuery(b sq.StatementBuilderType, wallet models.InvisibleWallet) (string, []any, error) {
	metadata, err := encodeMetadata(wallet.Metadata)
	if err != nil {
		return "", nil, err
	}

	return b.Insert(walletsTable).
		Columns(walletColumns...).
		Values(
			wallet.ID,
			wallet.Email,
			wallet.PlatformID,
			string(wallet.Network),
			wallet.PublicKey,
			wallet.EncryptedSecret,
			wallet.Salt,
			wallet.IV,
			string(wallet.Status),
			metadata,
			wallet.CreatedAt.UTC(),
			wallet.LastAccessedAt.UTC(),
		).
		ToSql()
}

func buildSelectWalletQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return b.Select(walletColumns...).
		From(walletsTable).
		Where(where).
		Limit(1).
		ToSql()
}

func buildUpdateWalletAccessQuery(b sq.StatementBuilderType, id string, accessedAt time.Time) (string, []any, error) {
	return b.Update(walletsTable).
		Set("last_accessed_at", accessedAt.UTC()).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildDeleteWalletQuery(b sq.StatementBuilderType, id string) (string, []any, error) {
	return b.Delete(walletsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildInsertAuditLogQuery(b sq.StatementBuilderType, entry models.AuditLogEntry) (string, []any, error) {
	metadata, err := encodeMetadata(entry.Metadata)
	if err != nil {
		return "", nil, err
	}

	walletID := sql.NullString{String: entry.WalletID, Valid: entry.WalletID != ""}

	return b.Insert(auditLogsTable).
		Columns(auditLogColumns...).
		Values(
			entry.ID,
			walletID,
			string(entry.Operation),
			entry.PlatformID,
			string(entry.Network),
			entry.Success,
			entry.Error,
			metadata,
			entry.Timestamp.UTC(),
		).
		ToSql()
}

func buildListAuditLogsQuery(b sq.StatementBuilderType, walletID string, limit uint64) (string, []any, error) {
	query := b.Select(auditLogColumns...).
		From(auditLogsTable).
		Where(sq.Eq{"wallet_id": walletID}).
		OrderBy("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	return query.ToSql()
}

func scanWallet(row rowScanner) (models.InvisibleWallet, error) {
	var (
		wallet   models.InvisibleWallet
		network  string
		status   string
		metadata string
	)

	err := row.Scan(
		&wallet.ID,
		&wallet.Email,
		&wallet.PlatformID,
		&network,
		&wallet.PublicKey,
		&wallet.EncryptedSecret,
		&wallet.Salt,
		&wallet.IV,
		&status,
		&metadata,
		&wallet.CreatedAt,
		&wallet.LastAccessedAt,
	)
	if err != nil {
		return models.InvisibleWallet{}, err
	}

	wallet.Network = models.Network(network)
	wallet.Status = models.WalletStatus(status)
	if wallet.Metadata, err = decodeMetadata(metadata); err != nil {
		return models.InvisibleWallet{}, err
	}

	return wallet, nil
}

func scanAuditLog(row rowScanner) (models.AuditLogEntry, error) {
	var (
		entry     models.AuditLogEntry
		walletID  sql.NullString
		operation string
		network   string
		metadata  string
	)

	err := row.Scan(
		&entry.ID,
		&walletID,
		&operation,
		&entry.PlatformID,
		&network,
		&entry.Success,
		&entry.Error,
		&metadata,
		&entry.Timestamp,
	)
	if err != nil {
		return models.AuditLogEntry{}, err
	}

	entry.WalletID = walletID.String
	entry.Operation = models.AuditOperation(operation)
	entry.Network = models.Network(network)
	if entry.Metadata, err = decodeMetadata(metadata); err != nil {
		return models.AuditLogEntry{}, err
	}

	return entry, nil
}

func encodeMetadata(metadata map[string]string) (string, error) {
	if len(metadata) == 0 {
		return "{}", nil
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodingMetadata, err)
	}
	return string(raw), nil
}

func decodeMetadata(raw string) (map[string]string, error) {
	if raw == "" || raw == "{}" {
		return nil, nil
	}
	var metadata map[string]string
	if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingMetadata, err)
	}
	return metadata, nil
}
