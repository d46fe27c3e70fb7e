package keypair

import (
	"strings"
	"testing"

	sdkkeypair "github.com/stellar/go-stellar-sdk/keypair"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	knownSeed    = "SBZVMB74Z76QZ3ZOY7UTDFYKMEGKW5XFJEB6PFKBF4UYSSWHG4EDH7PY"
	knownAddress = "GB7BDSZU2Y27LYNLALKKALB52WS2IZWYBDGY6EQBLEED3TJOCVMZRH7H"

	zeroSeed    = "SAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAABSU2"
	zeroAddress = "GA5WUJ54Z23KILLCUOUNAKTPBVZWKMQVO4O6EQ5GHLAERIMLLHNCSKYH"
)

func TestFromSeed_KnownVectors(t *testing.T) {
	cases := []struct {
		seed    string
		address string
	}{
		{knownSeed, knownAddress},
		{zeroSeed, zeroAddress},
	}

	for _, tc := range cases {
		kp, err := FromSeed([]byte(tc.seed))
		require.NoError(t, err)
		assert.Equal(t, tc.address, kp.Address())

		seed, err := kp.Seed()
		require.NoError(t, err)
		assert.Equal(t, tc.seed, string(seed))
	}
}

func TestFromRawSeed_Zero(t *testing.T) {
	kp, err := FromRawSeed(make([]byte, 32))
	require.NoError(t, err)
	assert.Equal(t, zeroAddress, kp.Address())
}

func TestRandom(t *testing.T) {
	a, err := Random()
	require.NoError(t, err)
	b, err := Random()
	require.NoError(t, err)

	assert.NotEqual(t, a.Address(), b.Address())
	assert.True(t, strings.HasPrefix(a.Address(), "G"))
	assert.Len(t, a.Address(), 56)

	seed, err := a.Seed()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(seed), "S"))

	again, err := FromSeed(seed)
	require.NoError(t, err)
	assert.Equal(t, a.Address(), again.Address())
}

func TestFromSeed_Rejects(t *testing.T) {
	cases := map[string]struct {
		input string
		want  error
	}{
		"empty":           {"", ErrInvalidKey},
		"too short":       {knownSeed[:40], ErrInvalidKey},
		"not base32":      {strings.Repeat("1", 56), ErrInvalidKey},
		"account id":      {knownAddress, ErrInvalidVersion},
		"broken checksum": {knownSeed[:55] + "Q", ErrInvalidKey},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromSeed([]byte(tc.input))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParseAddress(t *testing.T) {
	a, err := ParseAddress(knownAddress)
	require.NoError(t, err)
	assert.Equal(t, knownAddress, a.Address())

	_, err = ParseAddress(knownSeed)
	assert.ErrorIs(t, err, ErrInvalidVersion)

	assert.True(t, IsValidAddress(zeroAddress))
	assert.False(t, IsValidAddress("GABC"))
	assert.False(t, IsValidAddress(zeroAddress[:55]+"A"))
}

func TestSignVerify(t *testing.T) {
	kp, err := Random()
	require.NoError(t, err)

	msg := []byte("transaction hash")
	sig, err := kp.Sign(msg)
	require.NoError(t, err)

	require.NoError(t, kp.Verify(msg, sig))

	pub, err := ParseAddress(kp.Address())
	require.NoError(t, err)
	require.NoError(t, pub.Verify(msg, sig))
	assert.Equal(t, kp.Hint(), pub.Hint())

	assert.ErrorIs(t, pub.Verify([]byte("other"), sig), ErrInvalidSignature)
	assert.ErrorIs(t, pub.Verify(msg, sig[:10]), ErrInvalidSignature)
}

func TestWipe(t *testing.T) {
	kp, err := FromSeed([]byte(knownSeed))
	require.NoError(t, err)

	kp.Wipe()

	_, err = kp.Sign([]byte("x"))
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = kp.Seed()
	assert.ErrorIs(t, err, ErrInvalidKey)
	assert.Equal(t, knownAddress, kp.Address())

	var nilKP *Full
	assert.NotPanics(t, nilKP.Wipe)
}

func TestFromRawSeed_MatchesSDKDerivation(t *testing.T) {
	kp, err := Random()
	require.NoError(t, err)

	seed, err := kp.Seed()
	require.NoError(t, err)

	reference, err := sdkkeypair.ParseFull(string(seed))
	require.NoError(t, err)
	assert.Equal(t, reference.Address(), kp.Address())

	msg := []byte("transaction hash")
	sig, err := kp.Sign(msg)
	require.NoError(t, err)
	assert.NoError(t, reference.Verify(msg, sig))
	assert.Equal(t, reference.Hint(), kp.Hint())
}
