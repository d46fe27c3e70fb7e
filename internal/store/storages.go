package store

import "github.com/MKhiriev/invisible-wallet/internal/logger"

// Storages groups the repositories sharing one database connection.
// It satisfies [WalletStore].
type Storages struct {
	WalletRepository
	AuditRepository
}

// NewStorages builds every repository on top of db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		WalletRepository: NewWalletRepository(db, log),
		AuditRepository:  NewAuditRepository(db, log),
	}
}
