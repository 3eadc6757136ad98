package ibe

import (
	"testing"

	"github.com/Layr-Labs/dawn-ibe/pkg/curve"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ShareRecoverRoundtrip(t *testing.T) {
	mpk, msk, err := Generate()
	require.NoError(t, err)

	label := Label("app-7")

	u, s, err := Share(label, mpk)
	require.NoError(t, err)

	sigma, err := Reveal(label, msk)
	require.NoError(t, err)

	recovered, err := Recover(u, sigma)
	require.NoError(t, err)

	assert.Equal(t, s.Bytes(), recovered.Bytes())
}

func Test_Share_FreshRandomnessEachTime(t *testing.T) {
	mpk, _, err := Generate()
	require.NoError(t, err)
	label := Label("app-7")

	u1, s1, err := Share(label, mpk)
	require.NoError(t, err)
	u2, s2, err := Share(label, mpk)
	require.NoError(t, err)

	assert.False(t, u1.Point.Equal(u2.Point), "two shares for the same label must use distinct ephemeral keys")
	assert.NotEqual(t, s1.Bytes(), s2.Bytes())
}

func Test_Verify(t *testing.T) {
	mpk, msk, err := Generate()
	require.NoError(t, err)
	label := Label("app-7")

	sigma, err := Reveal(label, msk)
	require.NoError(t, err)

	t.Run("accepts the honest decryption key", func(t *testing.T) {
		ok, err := Verify(label, mpk, sigma)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("rejects a key revealed for a different label", func(t *testing.T) {
		wrongSigma, err := Reveal(Label("app-8"), msk)
		require.NoError(t, err)

		ok, err := Verify(label, mpk, wrongSigma)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("rejects a key revealed under a different master key", func(t *testing.T) {
		_, otherMsk, err := Generate()
		require.NoError(t, err)
		wrongSigma, err := Reveal(label, otherMsk)
		require.NoError(t, err)

		ok, err := Verify(label, mpk, wrongSigma)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("rejects the identity point as sigma", func(t *testing.T) {
		var zero fr.Element
		zeroPoint := curve.ScalarMulG1(curve.G1Generator(), &zero)
		identitySigma := &DecryptionKey{Point: zeroPoint}

		ok, err := Verify(label, mpk, identitySigma)
		assert.ErrorIs(t, err, ErrZeroPoint)
		assert.False(t, ok)
	})
}

func Test_MasterKey_Serialization(t *testing.T) {
	mpk, msk, err := Generate()
	require.NoError(t, err)

	decoded, err := MasterPublicKeyFromBytes(mpk.Bytes())
	require.NoError(t, err)
	assert.Equal(t, mpk.Bytes(), decoded.Bytes())

	reloaded, err := MasterPrivateKeyFromScalarBytes(msk.ScalarBytes())
	require.NoError(t, err)
	assert.Equal(t, msk.ScalarBytes(), reloaded.ScalarBytes())
}

func Test_MasterPrivateKeyFromScalarBytes_RejectsZero(t *testing.T) {
	_, err := MasterPrivateKeyFromScalarBytes(make([]byte, 32))
	assert.Error(t, err)
}

func Test_DecryptionKey_Serialization(t *testing.T) {
	_, msk, err := Generate()
	require.NoError(t, err)

	sigma, err := Reveal(Label("app-7"), msk)
	require.NoError(t, err)

	decoded, err := DecryptionKeyFromBytes(sigma.Bytes())
	require.NoError(t, err)
	assert.Equal(t, sigma.Bytes(), decoded.Bytes())
}
