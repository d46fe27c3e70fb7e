// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/MKhiriev/invisible-wallet/internal/config"
	"github.com/MKhiriev/invisible-wallet/models"
	"golang.org/x/crypto/pbkdf2"
)

// Fixed envelope parameters.
const (
	AlgorithmAESGCM = "AES-256-GCM"
	KDFPBKDF2       = "PBKDF2-SHA256"

	// IVLength is the GCM nonce size.
	IVLength = 12

	// MinSaltLength is the smallest accepted salt.
	MinSaltLength = 16

	// DefaultIterations is the PBKDF2 iteration count used when none is
	// configured.
	DefaultIterations = 100_000

	keyLength = 32
	idLength  = 16
)

// cryptoService is the private implementation of [Service].
type cryptoService struct {
	iterations int
	saltLength int

	// random is the entropy source. Tests replace it to simulate failures.
	random io.Reader
}

// NewCryptoService constructs a [Service] from the crypto section of the
// configuration. Zero values fall back to [DefaultIterations] and
// [MinSaltLength]; salts shorter than [MinSaltLength] are raised to it.
func NewCryptoService(cfg config.Crypto) Service {
	return newCryptoService(cfg, rand.Reader)
}

func newCryptoService(cfg config.Crypto, random io.Reader) *cryptoService {
	iterations := cfg.Iterations
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	saltLength := cfg.SaltLength
	if saltLength < MinSaltLength {
		saltLength = MinSaltLength
	}

	return &cryptoService{
		iterations: iterations,
		saltLength: saltLength,
		random:     random,
	}
}

// EncryptPrivateKey implements [Service].
func (c *cryptoService) EncryptPrivateKey(secret []byte, passphrase string) (models.EncryptionEnvelope, error) {
	if len(secret) == 0 || passphrase == "" {
		return models.EncryptionEnvelope{}, fmt.Errorf("%w: empty secret or passphrase", ErrEncryption)
	}

	salt := make([]byte, c.saltLength)
	if _, err := io.ReadFull(c.random, salt); err != nil {
		return models.EncryptionEnvelope{}, fmt.Errorf("%w: %w", ErrEncryption, ErrRandomSource)
	}
	iv := make([]byte, IVLength)
	if _, err := io.ReadFull(c.random, iv); err != nil {
		return models.EncryptionEnvelope{}, fmt.Errorf("%w: %w", ErrEncryption, ErrRandomSource)
	}

	key := c.deriveKey(passphrase, salt)
	defer Wipe(key)

	gcm, err := newGCM(key)
	if err != nil {
		return models.EncryptionEnvelope{}, fmt.Errorf("%w: create cipher", ErrEncryption)
	}

	ciphertext := gcm.Seal(nil, iv, secret, nil)

	envelope := c.envelopeTemplate()
	envelope.Ciphertext = base64.StdEncoding.EncodeToString(ciphertext)
	envelope.Salt = base64.StdEncoding.EncodeToString(salt)
	envelope.IV = base64.StdEncoding.EncodeToString(iv)

	return envelope, nil
}

// DecryptPrivateKey implements [Service].
func (c *cryptoService) DecryptPrivateKey(envelope models.EncryptionEnvelope, passphrase string) (*SecretBuffer, error) {
	if passphrase == "" {
		return nil, ErrDecryption
	}
	if !c.compatible(envelope) {
		return nil, ErrDecryption
	}

	salt, err := base64.StdEncoding.DecodeString(envelope.Salt)
	if err != nil || len(salt) < MinSaltLength {
		return nil, ErrDecryption
	}
	iv, err := base64.StdEncoding.DecodeString(envelope.IV)
	if err != nil || len(iv) != IVLength {
		return nil, ErrDecryption
	}
	ciphertext, err := base64.StdEncoding.DecodeString(envelope.Ciphertext)
	if err != nil || len(ciphertext) == 0 {
		return nil, ErrDecryption
	}

	key := c.deriveKey(passphrase, salt)
	defer Wipe(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, ErrDecryption
	}

	plaintext, err := gcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		// the tag check failed; the cause is not reported
		return nil, ErrDecryption
	}

	return NewSecretBuffer(plaintext), nil
}

// GenerateSecureID implements [Service].
func (c *cryptoService) GenerateSecureID() (string, error) {
	b := make([]byte, idLength)
	if _, err := io.ReadFull(c.random, b); err != nil {
		return "", ErrRandomSource
	}
	return hex.EncodeToString(b), nil
}

func (c *cryptoService) deriveKey(passphrase string, salt []byte) []byte {
	pass := []byte(passphrase)
	defer Wipe(pass)

	return pbkdf2.Key(pass, salt, c.iterations, keyLength, sha256.New)
}

// envelopeTemplate returns an envelope carrying the configured algorithm
// metadata and no ciphertext.
func (c *cryptoService) envelopeTemplate() models.EncryptionEnvelope {
	return models.EncryptionEnvelope{
		Algorithm:  AlgorithmAESGCM,
		KDF:        KDFPBKDF2,
		Iterations: c.iterations,
		SaltLength: c.saltLength,
		IVLength:   IVLength,
	}
}

// compatible reports whether the metadata of envelope, where present, agrees
// with the configuration. Envelopes rebuilt from storage carry no metadata
// and are checked against the configuration implicitly.
func (c *cryptoService) compatible(envelope models.EncryptionEnvelope) bool {
	if envelope.Algorithm != "" && envelope.Algorithm != AlgorithmAESGCM {
		return false
	}
	if envelope.KDF != "" && envelope.KDF != KDFPBKDF2 {
		return false
	}
	if envelope.Iterations != 0 && envelope.Iterations != c.iterations {
		return false
	}
	if envelope.IVLength != 0 && envelope.IVLength != IVLength {
		return false
	}
	return true
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
