// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/invisible-wallet/internal/logger"
	"github.com/MKhiriev/invisible-wallet/models"
)

// walletRepository is the SQL implementation of [WalletRepository] over the
// "wallets" table. The (email, platform_id, network) UNIQUE constraint makes
// SaveWallet a conditional insert.
type walletRepository struct {
	*DB
	logger *logger.Logger
}

// NewWalletRepository constructs a [WalletRepository] backed by db.
func NewWalletRepository(db *DB, logger *logger.Logger) WalletRepository {
	logger.Debug().Msg("creating wallet repository")
	return &walletRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *walletRepository) SaveWallet(ctx context.Context, wallet models.InvisibleWallet) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertWalletQuery(r.builder(), wallet)
	if err != nil {
		log.Err(err).Str("func", "walletRepository.SaveWallet").Msg("failed to create query")
		return fmt.Errorf("%w: %w: %w", ErrStorage, ErrBuildingSQLQuery, err)
	}

	attempts := 0
	err = r.withRetry(ctx, func() error {
		attempts++
		_, execErr := r.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		if r.isUniqueViolation(err) {
			// a retried insert may conflict with its own earlier attempt that
			// committed before the transient error was reported
			if attempts > 1 && r.ownsTuple(ctx, wallet) {
				return nil
			}
			log.Info().
				Str("func", "walletRepository.SaveWallet").
				Str("platform_id", wallet.PlatformID).
				Str("network", wallet.Network.String()).
				Msg("wallet already exists")
			return ErrWalletAlreadyExists
		}
		log.Err(err).Str("func", "walletRepository.SaveWallet").Msg("failed to insert wallet")
		return fmt.Errorf("%w: %w: %w", ErrStorage, ErrExecutingStatement, err)
	}

	return nil
}

// ownsTuple reports whether the stored wallet of the (email, platform_id,
// network) tuple of wallet is wallet itself.
func (r *walletRepository) ownsTuple(ctx context.Context, wallet models.InvisibleWallet) bool {
	existing, err := r.GetWallet(ctx, wallet.Email, wallet.PlatformID, wallet.Network)
	return err == nil && existing.ID == wallet.ID
}

func (r *walletRepository) GetWallet(ctx context.Context, email, platformID string, network models.Network) (models.InvisibleWallet, error) {
	return r.getWallet(ctx, "walletRepository.GetWallet", sq.Eq{
		"email":       email,
		"platform_id": platformID,
		"network":     string(network),
	})
}

func (r *walletRepository) GetWalletByID(ctx context.Context, id string) (models.InvisibleWallet, error) {
	return r.getWallet(ctx, "walletRepository.GetWalletByID", sq.Eq{"id": id})
}

func (r *walletRepository) getWallet(ctx context.Context, funcName string, where sq.Eq) (models.InvisibleWallet, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectWalletQuery(r.builder(), where)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to create query")
		return models.InvisibleWallet{}, fmt.Errorf("%w: %w: %w", ErrStorage, ErrBuildingSQLQuery, err)
	}

	var wallet models.InvisibleWallet
	err = r.withRetry(ctx, func() error {
		var scanErr error
		wallet, scanErr = scanWallet(r.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.InvisibleWallet{}, ErrWalletNotFound
	case err != nil:
		log.Err(err).Str("func", funcName).Msg("failed to scan wallet row")
		return models.InvisibleWallet{}, fmt.Errorf("%w: %w: %w", ErrStorage, ErrScanningRow, err)
	}

	return wallet, nil
}

func (r *walletRepository) UpdateWalletAccess(ctx context.Context, id string, accessedAt time.Time) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateWalletAccessQuery(r.builder(), id, accessedAt)
	if err != nil {
		log.Err(err).Str("func", "walletRepository.UpdateWalletAccess").Msg("failed to create query")
		return fmt.Errorf("%w: %w: %w", ErrStorage, ErrBuildingSQLQuery, err)
	}

	var affected int64
	err = r.withRetry(ctx, func() error {
		res, execErr := r.ExecContext(ctx, query, args...)
		if execErr != nil {
			return execErr
		}
		affected, execErr = res.RowsAffected()
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "walletRepository.UpdateWalletAccess").Str("wallet_id", id).Msg("failed to update wallet access")
		return fmt.Errorf("%w: %w: %w", ErrStorage, ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrWalletNotFound
	}

	return nil
}

func (r *walletRepository) DeleteWallet(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteWalletQuery(r.builder(), id)
	if err != nil {
		log.Err(err).Str("func", "walletRepository.DeleteWallet").Msg("failed to create query")
		return fmt.Errorf("%w: %w: %w", ErrStorage, ErrBuildingSQLQuery, err)
	}

	res, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "walletRepository.DeleteWallet").Str("wallet_id", id).Msg("failed to delete wallet")
		return fmt.Errorf("%w: %w: %w", ErrStorage, ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w: %w", ErrStorage, ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrWalletNotFound
	}

	log.Info().Str("func", "walletRepository.DeleteWallet").Str("wallet_id", id).Msg("wallet deleted")
	return nil
}
