package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/invisible-wallet/internal/logger"
	"github.com/MKhiriev/invisible-wallet/models"
)

// auditRepository is the SQL implementation of [AuditRepository] over the
// append-only "audit_logs" table.
type auditRepository struct {
	*DB
	logger *logger.Logger
}

// NewAuditRepository constructs an [AuditRepository] backed by db.
func NewAuditRepository(db *DB, logger *logger.Logger) AuditRepository {
	logger.Debug().Msg("creating audit repository")
	return &auditRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *auditRepository) SaveAuditLog(ctx context.Context, entry models.AuditLogEntry) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertAuditLogQuery(r.builder(), entry)
	if err != nil {
		log.Err(err).Str("func", "auditRepository.SaveAuditLog").Msg("failed to create query")
		return fmt.Errorf("%w: %w: %w", ErrStorage, ErrBuildingSQLQuery, err)
	}

	err = r.withRetry(ctx, func() error {
		_, execErr := r.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "auditRepository.SaveAuditLog").
			Str("operation", string(entry.Operation)).
			Msg("failed to insert audit entry")
		return fmt.Errorf("%w: %w: %w", ErrStorage, ErrExecutingStatement, err)
	}

	return nil
}

// ListAuditLogs returns the newest entries of a wallet first. A zero limit
// returns every entry.
func (r *auditRepository) ListAuditLogs(ctx context.Context, walletID string, limit uint64) ([]models.AuditLogEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListAuditLogsQuery(r.builder(), walletID, limit)
	if err != nil {
		log.Err(err).Str("func", "auditRepository.ListAuditLogs").Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w: %w", ErrStorage, ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "auditRepository.ListAuditLogs").
			Str("wallet_id", walletID).
			Msg("failed to execute query for audit entries")
		return nil, fmt.Errorf("%w: %w: %w", ErrStorage, ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.AuditLogEntry, 0, 16)
	for rows.Next() {
		entry, scanErr := scanAuditLog(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "auditRepository.ListAuditLogs").
				Str("wallet_id", walletID).
				Msg("failed to scan audit row")
			return nil, fmt.Errorf("%w: %w: %w", ErrStorage, ErrScanningRow, scanErr)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).
			Str("func", "auditRepository.ListAuditLogs").
			Str("wallet_id", walletID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w: %w", ErrStorage, ErrScanningRows, err)
	}

	return entries, nil
}
