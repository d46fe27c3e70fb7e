// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/invisible-wallet/internal/cache"
	"github.com/MKhiriev/invisible-wallet/internal/config"
	"github.com/MKhiriev/invisible-wallet/internal/crypto"
	"github.com/MKhiriev/invisible-wallet/internal/keypair"
	"github.com/MKhiriev/invisible-wallet/internal/ledger"
	"github.com/MKhiriev/invisible-wallet/internal/logger"
	"github.com/MKhiriev/invisible-wallet/internal/metrics"
	"github.com/MKhiriev/invisible-wallet/internal/store"
	"github.com/MKhiriev/invisible-wallet/internal/txcodec"
	"github.com/MKhiriev/invisible-wallet/internal/utils"
	"github.com/MKhiriev/invisible-wallet/internal/validators"
	"github.com/MKhiriev/invisible-wallet/internal/workers"
	"github.com/MKhiriev/invisible-wallet/models"
)

const defaultAuditTimeout = 5 * time.Second

// Audit metadata keys.
const (
	MetadataKind             = "kind"
	MetadataHash             = "hash"
	MetadataSourceAsset      = "source_asset"
	MetadataDestinationAsset = "destination_asset"
	MetadataSourceAmount     = "source_amount"

	kindConversion = "conversion"
)

// WalletDependencies are the collaborators of the wallet service. Limiter,
// Codec and IDs fall back to a no-op limiter, the JSON codec and UUIDs.
type WalletDependencies struct {
	Store      store.WalletStore
	Crypto     crypto.Service
	Ledgers    LedgerProvider
	Estimators ConversionEstimators
	Validator  validators.Validator
	Launcher   workers.Launcher
	Limiter    cache.AttemptLimiter
	Codec      txcodec.Codec
	Metrics    *metrics.Collectors
	IDs        IDGenerator
}

type invisibleWalletService struct {
	store      store.WalletStore
	crypto     crypto.Service
	ledgers    LedgerProvider
	estimators ConversionEstimators
	validator  validators.Validator
	launcher   workers.Launcher
	limiter    cache.AttemptLimiter
	codec      txcodec.Codec
	metrics    *metrics.Collectors
	ids        IDGenerator

	auditTimeout time.Duration
	now          func() time.Time

	logger *logger.Logger
}

// NewInvisibleWalletService constructs the wallet service. cfg.AuditTimeout
// bounds every audit write.
func NewInvisibleWalletService(deps WalletDependencies, cfg config.Workers, logger *logger.Logger) InvisibleWalletService {
	s := &invisibleWalletService{
		store:        deps.Store,
		crypto:       deps.Crypto,
		ledgers:      deps.Ledgers,
		estimators:   deps.Estimators,
		validator:    deps.Validator,
		launcher:     deps.Launcher,
		limiter:      deps.Limiter,
		codec:        deps.Codec,
		metrics:      deps.Metrics,
		ids:          deps.IDs,
		auditTimeout: cfg.AuditTimeout,
		now:          time.Now,
		logger:       logger,
	}

	if s.limiter == nil {
		s.limiter = cache.NopLimiter{}
	}
	if s.codec == nil {
		s.codec = txcodec.New()
	}
	if s.ids == nil {
		s.ids = utils.NewUUIDGenerator()
	}
	if s.auditTimeout <= 0 {
		s.auditTimeout = defaultAuditTimeout
	}

	return s
}

// ─────────────────────────────────────────────
// create
// ─────────────────────────────────────────────

func (s *invisibleWalletService) CreateWallet(ctx context.Context, request models.CreateWalletRequest) (models.WalletResponse, error) {
	entry := s.newAuditEntry(models.AuditOperationCreate, request.PlatformID, request.Network)

	wallet, err := s.createWallet(ctx, request)
	entry.WalletID = wallet.ID
	s.audit(ctx, entry, err)
	if err != nil {
		return models.WalletResponse{}, err
	}

	return wallet.Response(), nil
}

func (s *invisibleWalletService) createWallet(ctx context.Context, request models.CreateWalletRequest) (models.InvisibleWallet, error) {
	if err := s.validator.Validate(ctx, request); err != nil {
		return models.InvisibleWallet{}, validationError(err)
	}

	_, err := s.store.GetWallet(ctx, request.Email, request.PlatformID, request.Network)
	switch {
	case err == nil:
		return models.InvisibleWallet{}, ErrWalletAlreadyExists
	case !errors.Is(err, store.ErrWalletNotFound):
		return models.InvisibleWallet{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	kp, err := keypair.Random()
	if err != nil {
		return models.InvisibleWallet{}, fmt.Errorf("%w: %w", ErrEncryptionFailed, err)
	}
	defer kp.Wipe()

	seed, err := kp.Seed()
	if err != nil {
		return models.InvisibleWallet{}, fmt.Errorf("%w: %w", ErrEncryptionFailed, err)
	}
	defer crypto.Wipe(seed)

	envelope, err := s.crypto.EncryptPrivateKey(seed, request.Passphrase)
	if err != nil {
		return models.InvisibleWallet{}, fmt.Errorf("%w: %w", ErrEncryptionFailed, err)
	}

	id, err := s.crypto.GenerateSecureID()
	if err != nil {
		return models.InvisibleWallet{}, fmt.Errorf("%w: %w", ErrEncryptionFailed, err)
	}

	now := s.now().UTC()
	wallet := models.InvisibleWallet{
		ID:              id,
		Email:           request.Email,
		PlatformID:      request.PlatformID,
		Network:         request.Network,
		PublicKey:       kp.Address(),
		EncryptedSecret: envelope.Ciphertext,
		Salt:            envelope.Salt,
		IV:              envelope.IV,
		Status:          models.WalletStatusActive,
		CreatedAt:       now,
		LastAccessedAt:  now,
		Metadata:        request.Metadata,
	}

	// the unique natural key settles concurrent creations
	if err = s.store.SaveWallet(ctx, wallet); err != nil {
		if errors.Is(err, store.ErrWalletAlreadyExists) {
			return models.InvisibleWallet{}, ErrWalletAlreadyExists
		}
		return models.InvisibleWallet{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	if wallet.Network == models.Testnet {
		s.fundTestAccount(ctx, wallet.PublicKey)
	}

	return wallet, nil
}

func (s *invisibleWalletService) fundTestAccount(ctx context.Context, publicKey string) {
	client, err := s.ledgers.Client(models.Testnet)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("testnet funding skipped")
		return
	}

	s.launcher.Go(ctx, "fund-test-account", func(ctx context.Context) error {
		return client.FundTestAccount(ctx, publicKey)
	})
}

// ─────────────────────────────────────────────
// recover
// ─────────────────────────────────────────────

func (s *invisibleWalletService) RecoverWallet(ctx context.Context, request models.RecoverWalletRequest) (models.WalletResponse, error) {
	entry := s.newAuditEntry(models.AuditOperationRecover, request.PlatformID, request.Network)

	response, err := s.recoverWallet(ctx, request, &entry)
	s.audit(ctx, entry, err)

	return response, err
}

func (s *invisibleWalletService) recoverWallet(ctx context.Context, request models.RecoverWalletRequest, entry *models.AuditLogEntry) (models.WalletResponse, error) {
	err := s.validator.Validate(ctx, request, validators.FieldEmail, validators.FieldPlatformID, validators.FieldNetwork)
	if err != nil {
		return models.WalletResponse{}, validationError(err)
	}

	wallet, err := s.store.GetWallet(ctx, request.Email, request.PlatformID, request.Network)
	if err != nil {
		return models.WalletResponse{}, lookupError(err)
	}
	entry.WalletID = wallet.ID

	if wallet.Status != models.WalletStatusActive {
		return models.WalletResponse{}, ErrWalletSuspended
	}

	// decryption only proves knowledge of the passphrase
	kp, err := s.unlock(ctx, wallet, request.Passphrase)
	if err != nil {
		return models.WalletResponse{}, err
	}
	kp.Wipe()

	wallet.LastAccessedAt = s.touch(ctx, wallet.ID)

	return wallet.Response(), nil
}

// ─────────────────────────────────────────────
// sign
// ─────────────────────────────────────────────

func (s *invisibleWalletService) SignTransaction(ctx context.Context, request models.SignTransactionRequest) (models.SignResult, error) {
	entry := s.newAuditEntry(models.AuditOperationSign, request.PlatformID, "")

	result, err := s.signTransaction(ctx, request, &entry)
	s.audit(ctx, entry, err)

	return result, err
}

func (s *invisibleWalletService) signTransaction(ctx context.Context, request models.SignTransactionRequest, entry *models.AuditLogEntry) (models.SignResult, error) {
	if err := s.validator.Validate(ctx, request, validators.FieldWalletID, validators.FieldPlatformID); err != nil {
		return models.SignResult{}, validationError(err)
	}

	wallet, err := s.authorizedWallet(ctx, request.WalletID, request.Email, request.PlatformID, entry)
	if err != nil {
		return models.SignResult{}, err
	}

	signedPayload, hash, err := s.sign(ctx, wallet, request.Passphrase, request.TransactionPayload)
	if err != nil {
		return models.SignResult{Success: false, Error: PublicMessage(err)}, err
	}

	s.touch(ctx, wallet.ID)
	entry.Metadata = map[string]string{MetadataHash: hash}

	return models.SignResult{
		SignedPayload: signedPayload,
		Hash:          hash,
		Success:       true,
	}, nil
}

// sign decrypts the wallet key, signs payload and wipes the key before the
// signed transaction is serialized.
func (s *invisibleWalletService) sign(ctx context.Context, wallet models.InvisibleWallet, passphrase, payload string) (string, string, error) {
	kp, err := s.unlock(ctx, wallet, passphrase)
	if err != nil {
		return "", "", err
	}
	defer kp.Wipe()

	tx, err := s.codec.Parse(payload, wallet.Network)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidTransactionPayload, err)
	}

	err = s.codec.Sign(tx, kp)
	kp.Wipe()
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}

	signedPayload, err := s.codec.Serialize(tx)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}
	hash, err := s.codec.Hash(tx)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}

	return signedPayload, hash, nil
}

// ─────────────────────────────────────────────
// convert
// ─────────────────────────────────────────────

func (s *invisibleWalletService) ConvertFromWallet(ctx context.Context, request models.WalletConversionRequest) (models.ConversionResult, error) {
	entry := s.newAuditEntry(models.AuditOperationSign, request.PlatformID, "")
	entry.Metadata = map[string]string{
		MetadataKind:             kindConversion,
		MetadataSourceAsset:      request.SourceAsset.String(),
		MetadataDestinationAsset: request.DestinationAsset.String(),
		MetadataSourceAmount:     request.SourceAmount,
	}

	result, err := s.convertFromWallet(ctx, request, &entry)
	s.audit(ctx, entry, err)

	return result, err
}

func (s *invisibleWalletService) convertFromWallet(ctx context.Context, request models.WalletConversionRequest, entry *models.AuditLogEntry) (models.ConversionResult, error) {
	if err := s.validator.Validate(ctx, request); err != nil {
		return models.ConversionResult{}, validationError(err)
	}

	wallet, err := s.authorizedWallet(ctx, request.WalletID, request.Email, request.PlatformID, entry)
	if err != nil {
		return models.ConversionResult{}, err
	}

	estimator, err := s.estimators.For(wallet.Network)
	if err != nil {
		return models.ConversionResult{}, err
	}

	kp, err := s.unlock(ctx, wallet, request.Passphrase)
	if err != nil {
		return models.ConversionResult{Success: false, Error: PublicMessage(err)}, err
	}
	seed, err := kp.Seed()
	kp.Wipe()
	if err != nil {
		return models.ConversionResult{Success: false, Error: ErrKeyIntegrity.Error()}, fmt.Errorf("%w: %w", ErrKeyIntegrity, err)
	}

	result := estimator.ExecuteConversion(ctx, seed, request.ConversionRequest)
	crypto.Wipe(seed)

	s.touch(ctx, wallet.ID)
	if !result.Success {
		entry.Error = result.Error
		return result, fmt.Errorf("%w: %s", ErrConversionFailed, result.Error)
	}

	entry.Metadata[MetadataHash] = result.Hash
	return result, nil
}

// ─────────────────────────────────────────────
// balance
// ─────────────────────────────────────────────

func (s *invisibleWalletService) GetWalletWithBalance(ctx context.Context, email, platformID string, network models.Network) (*models.WalletWithBalance, error) {
	log := logger.FromContext(ctx)

	if !network.IsValid() {
		return nil, ErrInvalidNetwork
	}

	wallet, err := s.store.GetWallet(ctx, email, platformID, network)
	if err != nil {
		if errors.Is(err, store.ErrWalletNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	result := &models.WalletWithBalance{
		WalletResponse: wallet.Response(),
		Balances:       []models.Balance{},
	}

	client, err := s.ledgers.Client(network)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidNetwork, err)
	}

	account, err := client.LoadAccount(ctx, wallet.PublicKey)
	switch {
	case err == nil:
		result.AccountExists = true
		result.Balances = account.Balances
	case errors.Is(err, ledger.ErrAccountNotFound):
		// not funded yet
	default:
		log.Warn().Err(err).
			Str("func", "invisibleWalletService.GetWalletWithBalance").
			Str("wallet_id", wallet.ID).
			Msg("balance lookup failed")
	}

	return result, nil
}

// ─────────────────────────────────────────────
// helpers
// ─────────────────────────────────────────────

// authorizedWallet loads the wallet id and checks that it belongs to
// platformID and email. A foreign email is reported as not found.
func (s *invisibleWalletService) authorizedWallet(ctx context.Context, id, email, platformID string, entry *models.AuditLogEntry) (models.InvisibleWallet, error) {
	wallet, err := s.store.GetWalletByID(ctx, id)
	if err != nil {
		return models.InvisibleWallet{}, lookupError(err)
	}
	entry.WalletID = wallet.ID
	entry.Network = wallet.Network

	if wallet.PlatformID != platformID {
		return models.InvisibleWallet{}, ErrUnauthorizedOrigin
	}
	if wallet.Email != email {
		return models.InvisibleWallet{}, ErrWalletNotFound
	}
	if wallet.Status != models.WalletStatusActive {
		return models.InvisibleWallet{}, ErrWalletSuspended
	}

	return wallet, nil
}

// unlock decrypts the wallet secret and returns its keypair. The caller
// must Wipe the keypair. Wrong passphrases are counted per wallet.
func (s *invisibleWalletService) unlock(ctx context.Context, wallet models.InvisibleWallet, passphrase string) (*keypair.Full, error) {
	log := logger.FromContext(ctx)

	locked, retryAfter, err := s.limiter.Locked(ctx, wallet.ID)
	if err != nil {
		log.Warn().Err(err).Str("wallet_id", wallet.ID).Msg("attempt limiter unavailable")
	} else if locked {
		s.metrics.Lockout()
		return nil, fmt.Errorf("%w: retry in %s", ErrTooManyAttempts, retryAfter.Round(time.Second))
	}

	secret, err := s.crypto.DecryptPrivateKey(wallet.Envelope(), passphrase)
	if err != nil {
		if _, limitErr := s.limiter.RegisterFailure(ctx, wallet.ID); limitErr != nil {
			log.Warn().Err(limitErr).Str("wallet_id", wallet.ID).Msg("failed to count passphrase failure")
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidPassphrase, err)
	}
	defer secret.Wipe()

	kp, err := keypair.FromSeed(secret.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyIntegrity, err)
	}
	if kp.Address() != wallet.PublicKey {
		kp.Wipe()
		log.Error().Str("wallet_id", wallet.ID).Msg("decrypted key does not match stored public key")
		return nil, ErrKeyIntegrity
	}

	if err = s.limiter.Reset(ctx, wallet.ID); err != nil {
		log.Warn().Err(err).Str("wallet_id", wallet.ID).Msg("failed to reset passphrase failures")
	}

	return kp, nil
}

// touch records a successful access. Failures are logged only.
func (s *invisibleWalletService) touch(ctx context.Context, id string) time.Time {
	accessedAt := s.now().UTC()
	if err := s.store.UpdateWalletAccess(ctx, id, accessedAt); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("wallet_id", id).Msg("failed to update last access time")
	}
	return accessedAt
}

func (s *invisibleWalletService) newAuditEntry(operation models.AuditOperation, platformID string, network models.Network) models.AuditLogEntry {
	return models.AuditLogEntry{
		ID:         s.ids.Generate(),
		Operation:  operation,
		Timestamp:  s.now().UTC(),
		PlatformID: platformID,
		Network:    network,
	}
}

// audit writes entry synchronously, detached from the cancellation of ctx
// and bounded by the audit timeout. Write failures are logged only.
func (s *invisibleWalletService) audit(ctx context.Context, entry models.AuditLogEntry, opErr error) {
	entry.Success = opErr == nil
	if opErr != nil && entry.Error == "" {
		entry.Error = PublicMessage(opErr)
	}

	operation := string(entry.Operation)
	if entry.Metadata[MetadataKind] == kindConversion {
		operation = kindConversion
	}
	s.metrics.WalletOperation(operation, entry.Success)

	auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.auditTimeout)
	defer cancel()

	if err := s.store.SaveAuditLog(auditCtx, entry); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "invisibleWalletService.audit").
			Str("operation", string(entry.Operation)).
			Str("wallet_id", entry.WalletID).
			Msg("failed to save audit log entry")
	}
}

func lookupError(err error) error {
	if errors.Is(err, store.ErrWalletNotFound) {
		return ErrWalletNotFound
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

func validationError(err error) error {
	switch {
	case errors.Is(err, validators.ErrInvalidEmail):
		return ErrInvalidEmail
	case errors.Is(err, validators.ErrEmptyPassphrase), errors.Is(err, validators.ErrWeakPassphrase):
		return fmt.Errorf("%w: %w", ErrInvalidPassphraseStrength, err)
	case errors.Is(err, validators.ErrInvalidNetwork):
		return ErrInvalidNetwork
	case errors.Is(err, validators.ErrInvalidDestination):
		return ErrInvalidDestination
	default:
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
}
