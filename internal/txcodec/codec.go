// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package txcodec converts base64 XDR transaction envelopes to
// [models.Transaction] and back, computes transaction hashes and attaches
// signatures.
//
// Envelopes are encoded and hashed by the txnbuild package of the Stellar
// SDK, so payloads are the ones Horizon accepts on POST /transactions. The
// hash of a transaction covers the network passphrase and the transaction
// body; signatures are not part of it.
package txcodec

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/MKhiriev/invisible-wallet/internal/keypair"
	"github.com/MKhiriev/invisible-wallet/models"
	"github.com/stellar/go-stellar-sdk/network"
	"github.com/stellar/go-stellar-sdk/txnbuild"
)

// Codec is the transaction boundary consumed by the wallet and conversion
// services.
type Codec interface {
	Parse(payload string, network models.Network) (*models.Transaction, error)
	Serialize(tx *models.Transaction) (string, error)
	Hash(tx *models.Transaction) (string, error)
	Sign(tx *models.Transaction, kp *keypair.Full) error
}

type xdrCodec struct{}

// New returns the XDR envelope [Codec].
func New() Codec {
	return xdrCodec{}
}

// Parse decodes payload. Fee bump envelopes and envelopes without
// operations are rejected with [ErrMalformedPayload].
func (xdrCodec) Parse(payload string, net models.Network) (*models.Transaction, error) {
	if _, err := Passphrase(net); err != nil {
		return nil, err
	}

	generic, err := txnbuild.TransactionFromXDR(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	envelope, ok := generic.Transaction()
	if !ok {
		return nil, fmt.Errorf("%w: fee bump envelopes are not supported", ErrMalformedPayload)
	}

	tx := describe(envelope)
	tx.Network = net
	tx.Envelope = payload

	if err = validate(tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// Serialize returns the base64 XDR envelope of tx with its signatures.
func (xdrCodec) Serialize(tx *models.Transaction) (string, error) {
	envelope, err := envelopeOf(tx)
	if err != nil {
		return "", err
	}

	payload, err := envelope.Base64()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	return payload, nil
}

// Hash returns the hex encoded transaction hash on the network of tx.
func (xdrCodec) Hash(tx *models.Transaction) (string, error) {
	envelope, passphrase, err := prepare(tx)
	if err != nil {
		return "", err
	}

	hash, err := envelope.HashHex(passphrase)
	if err != nil {
		return "", fmt.Errorf("hash transaction: %w", err)
	}
	return hash, nil
}

// Sign appends a decorated signature of kp over the transaction hash and
// stores the signed envelope in tx.
func (xdrCodec) Sign(tx *models.Transaction, kp *keypair.Full) error {
	envelope, passphrase, err := prepare(tx)
	if err != nil {
		return err
	}

	hash, err := envelope.Hash(passphrase)
	if err != nil {
		return fmt.Errorf("hash transaction: %w", err)
	}
	sig, err := kp.Sign(hash[:])
	if err != nil {
		return fmt.Errorf("sign transaction: %w", err)
	}

	signed, err := envelope.AddSignatureBase64(passphrase, kp.Address(), base64.StdEncoding.EncodeToString(sig))
	if err != nil {
		return fmt.Errorf("sign transaction: %w", err)
	}
	payload, err := signed.Base64()
	if err != nil {
		return fmt.Errorf("encode signed transaction: %w", err)
	}

	tx.Envelope = payload
	tx.Signatures = signaturesOf(signed)
	return nil
}

// VerifySignature reports whether tx carries a valid signature by address.
func VerifySignature(tx *models.Transaction, address string) error {
	signer, err := keypair.ParseAddress(address)
	if err != nil {
		return err
	}

	envelope, passphrase, err := prepare(tx)
	if err != nil {
		return err
	}
	hash, err := envelope.Hash(passphrase)
	if err != nil {
		return fmt.Errorf("hash transaction: %w", err)
	}

	hint := signer.Hint()
	for _, s := range envelope.Signatures() {
		if [4]byte(s.Hint) != hint {
			continue
		}
		if signer.Verify(hash[:], []byte(s.Signature)) == nil {
			return nil
		}
	}

	return keypair.ErrInvalidSignature
}

// Passphrase returns the network passphrase mixed into transaction hashes
// on net.
func Passphrase(net models.Network) (string, error) {
	switch net {
	case models.Testnet:
		return network.TestNetworkPassphrase, nil
	case models.Mainnet:
		return network.PublicNetworkPassphrase, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownNetwork, net)
	}
}

func prepare(tx *models.Transaction) (*txnbuild.Transaction, string, error) {
	if tx == nil {
		return nil, "", fmt.Errorf("%w: nil transaction", ErrMalformedPayload)
	}

	passphrase, err := Passphrase(tx.Network)
	if err != nil {
		return nil, "", err
	}
	envelope, err := envelopeOf(tx)
	if err != nil {
		return nil, "", err
	}
	return envelope, passphrase, nil
}

// envelopeOf decodes tx.Envelope, or builds a new unsigned envelope from the
// descriptive fields when tx has none.
func envelopeOf(tx *models.Transaction) (*txnbuild.Transaction, error) {
	if tx == nil {
		return nil, fmt.Errorf("%w: nil transaction", ErrMalformedPayload)
	}

	if tx.Envelope == "" {
		return build(tx)
	}

	generic, err := txnbuild.TransactionFromXDR(tx.Envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	envelope, ok := generic.Transaction()
	if !ok {
		return nil, fmt.Errorf("%w: fee bump envelopes are not supported", ErrMalformedPayload)
	}
	return envelope, nil
}

func signaturesOf(envelope *txnbuild.Transaction) []models.Signature {
	decorated := envelope.Signatures()
	signatures := make([]models.Signature, 0, len(decorated))
	for _, s := range decorated {
		hint := [4]byte(s.Hint)
		signatures = append(signatures, models.Signature{
			Hint:      base64.StdEncoding.EncodeToString(hint[:]),
			Signature: base64.StdEncoding.EncodeToString(s.Signature),
		})
	}
	return signatures
}

func memoText(memo txnbuild.Memo) string {
	switch m := memo.(type) {
	case txnbuild.MemoText:
		return string(m)
	case txnbuild.MemoID:
		return strconv.FormatUint(uint64(m), 10)
	case txnbuild.MemoHash:
		return hex.EncodeToString(m[:])
	case txnbuild.MemoReturn:
		return hex.EncodeToString(m[:])
	default:
		return ""
	}
}
