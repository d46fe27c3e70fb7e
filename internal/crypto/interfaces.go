package crypto

import "github.com/MKhiriev/invisible-wallet/models"

// Service turns a passphrase and a secret seed into an
// [models.EncryptionEnvelope] and back. It knows nothing about wallets,
// storage or the ledger.
//
// Scheme:
//
//	salt, iv = random(SaltLength), random(12)
//	key      = PBKDF2-HMAC-SHA256(passphrase, salt, Iterations, 32)
//	ct       = AES-256-GCM(key, iv, secret)
//
// Derived keys and plaintext copies are zeroed before every return.
type Service interface {
	// EncryptPrivateKey seals secret under passphrase with a fresh salt and
	// IV. Returns [ErrEncryption] when either input is empty or a primitive
	// fails.
	EncryptPrivateKey(secret []byte, passphrase string) (models.EncryptionEnvelope, error)

	// DecryptPrivateKey opens envelope with passphrase. Every failure,
	// including a wrong passphrase and malformed parameters, is reported as
	// [ErrDecryption]. The caller owns the returned buffer and must Wipe it.
	DecryptPrivateKey(envelope models.EncryptionEnvelope, passphrase string) (*SecretBuffer, error)

	// GenerateSecureID returns 128 random bits, hex encoded.
	GenerateSecureID() (string, error)
}
