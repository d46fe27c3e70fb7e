package txcodec

import (
	"encoding/base64"
	"testing"

	"github.com/MKhiriev/invisible-wallet/internal/keypair"
	"github.com/MKhiriev/invisible-wallet/models"
	"github.com/stellar/go-stellar-sdk/network"
	"github.com/stellar/go-stellar-sdk/txnbuild"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPayment(t *testing.T) (*models.Transaction, *keypair.Full) {
	t.Helper()

	src, err := keypair.Random()
	require.NoError(t, err)
	dst, err := keypair.Random()
	require.NoError(t, err)

	return &models.Transaction{
		Network:       models.Testnet,
		SourceAccount: src.Address(),
		Sequence:      42,
		Fee:           100,
		Memo:          "invoice-7",
		Operations: []models.Operation{{
			Type:        models.OperationPayment,
			Destination: dst.Address(),
			Asset:       &models.Asset{},
			Amount:      "10.5000000",
		}},
	}, src
}

func TestSerializeParse_RoundTrip(t *testing.T) {
	c := New()
	tx, _ := newPayment(t)

	payload, err := c.Serialize(tx)
	require.NoError(t, err)

	parsed, err := c.Parse(payload, models.Testnet)
	require.NoError(t, err)

	assert.Equal(t, tx.SourceAccount, parsed.SourceAccount)
	assert.Equal(t, tx.Operations, parsed.Operations)
	assert.Equal(t, models.Testnet, parsed.Network)
	assert.Empty(t, parsed.Signatures)

	h1, err := c.Hash(tx)
	require.NoError(t, err)
	h2, err := c.Hash(parsed)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)

	generic, err := txnbuild.TransactionFromXDR(payload)
	require.NoError(t, err)
	envelope, ok := generic.Transaction()
	require.True(t, ok)
	sdkHash, err := envelope.HashHex(network.TestNetworkPassphrase)
	require.NoError(t, err)
	assert.Equal(t, sdkHash, h1)
	assert.Equal(t, "invoice-7", parsed.Memo)
	assert.Equal(t, int64(42), parsed.Sequence)
}

func TestHash_DependsOnNetwork(t *testing.T) {
	c := New()
	tx, _ := newPayment(t)

	testnet, err := c.Hash(tx)
	require.NoError(t, err)

	tx.Network = models.Mainnet
	mainnet, err := c.Hash(tx)
	require.NoError(t, err)

	assert.NotEqual(t, testnet, mainnet)
}

func TestSign(t *testing.T) {
	c := New()
	tx, kp := newPayment(t)

	before, err := c.Hash(tx)
	require.NoError(t, err)

	require.NoError(t, c.Sign(tx, kp))
	require.Len(t, tx.Signatures, 1)

	after, err := c.Hash(tx)
	require.NoError(t, err)
	assert.Equal(t, before, after, "signatures are not hashed")

	require.NoError(t, VerifySignature(tx, kp.Address()))

	other, err := keypair.Random()
	require.NoError(t, err)
	assert.ErrorIs(t, VerifySignature(tx, other.Address()), keypair.ErrInvalidSignature)

	payload, err := c.Serialize(tx)
	require.NoError(t, err)
	parsed, err := c.Parse(payload, models.Testnet)
	require.NoError(t, err)
	require.NoError(t, VerifySignature(parsed, kp.Address()))

	// the same payload read on another network carries an invalid signature
	onMainnet, err := c.Parse(payload, models.Mainnet)
	require.NoError(t, err)
	assert.Error(t, VerifySignature(onMainnet, kp.Address()))
}

func TestSign_WipedKeypair(t *testing.T) {
	c := New()
	tx, kp := newPayment(t)
	kp.Wipe()

	assert.Error(t, c.Sign(tx, kp))
	assert.Empty(t, tx.Signatures)
}

func TestParse_Malformed(t *testing.T) {
	c := New()
	tx, _ := newPayment(t)

	valid, err := c.Serialize(tx)
	require.NoError(t, err)

	cases := map[string]string{
		"empty":      "",
		"not base64": "!!!not-base64!!!",
		"not xdr":    base64.StdEncoding.EncodeToString([]byte("hello")),
		"truncated":  valid[:len(valid)/2],
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := c.Parse(payload, models.Testnet)
			assert.ErrorIs(t, err, ErrMalformedPayload)
		})
	}
}

func TestParse_KeepsUnmodelledOperations(t *testing.T) {
	c := New()
	src, err := keypair.Random()
	require.NoError(t, err)

	envelope, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        &txnbuild.SimpleAccount{AccountID: src.Address(), Sequence: 7},
		IncrementSequenceNum: false,
		Operations:           []txnbuild.Operation{&txnbuild.BumpSequence{BumpTo: 99}},
		BaseFee:              txnbuild.MinBaseFee,
		Preconditions:        txnbuild.Preconditions{TimeBounds: txnbuild.NewTimebounds(0, 1900000000)},
	})
	require.NoError(t, err)
	payload, err := envelope.Base64()
	require.NoError(t, err)

	parsed, err := c.Parse(payload, models.Testnet)
	require.NoError(t, err)
	require.Len(t, parsed.Operations, 1)
	assert.Equal(t, models.OperationOther, parsed.Operations[0].Type)
	require.NotNil(t, parsed.TimeBounds)
	assert.Equal(t, int64(1900000000), parsed.TimeBounds.MaxTime)

	require.NoError(t, c.Sign(parsed, src))
	signed, err := c.Serialize(parsed)
	require.NoError(t, err)

	generic, err := txnbuild.TransactionFromXDR(signed)
	require.NoError(t, err)
	out, ok := generic.Transaction()
	require.True(t, ok)
	require.Len(t, out.Operations(), 1)
	bump, ok := out.Operations()[0].(*txnbuild.BumpSequence)
	require.True(t, ok)
	assert.Equal(t, int64(99), bump.BumpTo)
	assert.Len(t, out.Signatures(), 1)
}

func TestSerialize_RejectsUnencodableOperation(t *testing.T) {
	tx, _ := newPayment(t)
	tx.Operations = append(tx.Operations, models.Operation{Type: models.OperationOther})

	_, err := New().Serialize(tx)
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestParse_UnknownNetwork(t *testing.T) {
	_, err := New().Parse("", "devnet")
	assert.ErrorIs(t, err, ErrUnknownNetwork)
}

func TestPassphrase(t *testing.T) {
	passphrase, err := Passphrase(models.Testnet)
	require.NoError(t, err)
	assert.Equal(t, network.TestNetworkPassphrase, passphrase)

	passphrase, err = Passphrase(models.Mainnet)
	require.NoError(t, err)
	assert.Equal(t, network.PublicNetworkPassphrase, passphrase)

	_, err = Passphrase("devnet")
	assert.ErrorIs(t, err, ErrUnknownNetwork)
}
