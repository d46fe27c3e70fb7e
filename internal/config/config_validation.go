// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// minIterations rejects configurations that would make PBKDF2 trivially
// cheap.
const minIterations = 10_000

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}

	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: empty token sign key", ErrInvalidAppConfigs)
	}
	if cfg.App.MinPassphraseScore < 0 || cfg.App.MinPassphraseScore > 4 {
		return fmt.Errorf("%w: passphrase score must be within 0..4", ErrInvalidAppConfigs)
	}

	if cfg.Crypto.Iterations < minIterations || cfg.Crypto.SaltLength < 16 {
		return fmt.Errorf("%w: iterations >= %d and salt length >= 16 required", ErrInvalidCryptoConfigs, minIterations)
	}

	if cfg.Ledger.TestnetURL == "" || cfg.Ledger.MainnetURL == "" || cfg.Ledger.RequestTimeout <= 0 {
		return ErrInvalidLedgerConfigs
	}

	if cfg.Cache.RedisAddress != "" && (cfg.Cache.MaxFailedAttempts <= 0 || cfg.Cache.LockoutWindow <= 0) {
		return ErrInvalidCacheConfigs
	}

	if cfg.Workers.TaskTimeout <= 0 || cfg.Workers.AuditTimeout <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
