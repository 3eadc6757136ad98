package curve

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ScalarMul(t *testing.T) {
	t.Run("G1 roundtrips through compressed bytes", func(t *testing.T) {
		s, err := RandomScalar()
		require.NoError(t, err)

		p := ScalarMulG1(G1Generator(), s)
		decoded, err := NewG1FromCompressed(p.Bytes())
		require.NoError(t, err)
		assert.True(t, p.Equal(decoded))
	})

	t.Run("G2 roundtrips through compressed bytes", func(t *testing.T) {
		s, err := RandomScalar()
		require.NoError(t, err)

		p := ScalarMulG2(G2Generator(), s)
		decoded, err := NewG2FromCompressed(p.Bytes())
		require.NoError(t, err)
		assert.True(t, p.Equal(decoded))
	})

	t.Run("distinct scalars produce distinct points", func(t *testing.T) {
		a, err := RandomScalar()
		require.NoError(t, err)
		b, err := RandomScalar()
		require.NoError(t, err)

		pa := ScalarMulG1(G1Generator(), a)
		pb := ScalarMulG1(G1Generator(), b)
		assert.False(t, pa.Equal(pb))
	})
}

func Test_RandomScalar_NeverZero(t *testing.T) {
	for i := 0; i < 100; i++ {
		s, err := RandomScalar()
		require.NoError(t, err)
		assert.False(t, s.IsZero())
	}
}

func Test_Pairing(t *testing.T) {
	t.Run("bilinearity: e([a]P, [b]Q) == e(P, [ab]Q)", func(t *testing.T) {
		a, err := RandomScalar()
		require.NoError(t, err)
		b, err := RandomScalar()
		require.NoError(t, err)

		lhs, err := Pair(ScalarMulG1(G1Generator(), a), ScalarMulG2(G2Generator(), b))
		require.NoError(t, err)

		ab := new(fr.Element).Mul(a, b)
		rhs, err := Pair(G1Generator(), ScalarMulG2(G2Generator(), ab))
		require.NoError(t, err)

		assert.Equal(t, GTBytes(&lhs), GTBytes(&rhs))
	})
}

func Test_PairingsEqual(t *testing.T) {
	s, err := RandomScalar()
	require.NoError(t, err)
	p := ScalarMulG1(G1Generator(), s)

	t.Run("equal pairings detected", func(t *testing.T) {
		ok, err := PairingsEqual(p, G2Generator(), p, G2Generator())
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unequal pairings rejected", func(t *testing.T) {
		other, err := RandomScalar()
		require.NoError(t, err)
		q := ScalarMulG1(G1Generator(), other)

		ok, err := PairingsEqual(p, G2Generator(), q, G2Generator())
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func Test_IsZero(t *testing.T) {
	s, err := RandomScalar()
	require.NoError(t, err)

	assert.False(t, ScalarMulG1(G1Generator(), s).IsZero())
	assert.False(t, ScalarMulG2(G2Generator(), s).IsZero())

	var zero fr.Element
	assert.True(t, ScalarMulG1(G1Generator(), &zero).IsZero())
	assert.True(t, ScalarMulG2(G2Generator(), &zero).IsZero())
}

func Test_GTBytes_CanonicalLength(t *testing.T) {
	s, err := RandomScalar()
	require.NoError(t, err)
	gt, err := Pair(ScalarMulG1(G1Generator(), s), G2Generator())
	require.NoError(t, err)

	b := GTBytes(&gt)
	assert.Len(t, b, GTSize)
}
