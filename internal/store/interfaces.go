// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/invisible-wallet/models"
)

// WalletRepository persists wallet custody records.
type WalletRepository interface {
	// SaveWallet inserts a new wallet. A record with the same
	// (email, platform_id, network) triple yields [ErrWalletAlreadyExists].
	SaveWallet(ctx context.Context, wallet models.InvisibleWallet) error

	// GetWallet looks a wallet up by its natural key.
	GetWallet(ctx context.Context, email, platformID string, network models.Network) (models.InvisibleWallet, error)

	// GetWalletByID looks a wallet up by its identifier.
	GetWalletByID(ctx context.Context, id string) (models.InvisibleWallet, error)

	// UpdateWalletAccess records the time of the last successful access.
	UpdateWalletAccess(ctx context.Context, id string, accessedAt time.Time) error

	// DeleteWallet removes a wallet record. Audit entries are retained.
	DeleteWallet(ctx context.Context, id string) error
}

// AuditRepository persists the append-only audit trail.
type AuditRepository interface {
	SaveAuditLog(ctx context.Context, entry models.AuditLogEntry) error
	ListAuditLogs(ctx context.Context, walletID string, limit uint64) ([]models.AuditLogEntry, error)
}

// WalletStore is the full persistence capability consumed by the wallet service.
type WalletStore interface {
	WalletRepository
	AuditRepository
}
