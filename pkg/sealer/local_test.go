package sealer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LocalSealer_Roundtrip(t *testing.T) {
	s, err := NewLocalSealer()
	require.NoError(t, err)

	ctx := context.Background()
	aad := []byte("key-id-1")
	plaintext := []byte("master private key scalar bytes")

	sealed, err := s.Seal(ctx, aad, plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, []byte(sealed))

	unsealed, err := s.Unseal(ctx, aad, sealed)
	require.NoError(t, err)
	assert.Equal(t, plaintext, unsealed)
}

func Test_LocalSealer_RejectsWrongAAD(t *testing.T) {
	s, err := NewLocalSealer()
	require.NoError(t, err)

	ctx := context.Background()
	sealed, err := s.Seal(ctx, []byte("aad-a"), []byte("secret"))
	require.NoError(t, err)

	_, err = s.Unseal(ctx, []byte("aad-b"), sealed)
	assert.Error(t, err)
}

func Test_LocalSealer_RejectsTamperedBlob(t *testing.T) {
	s, err := NewLocalSealer()
	require.NoError(t, err)

	ctx := context.Background()
	aad := []byte("aad")
	sealed, err := s.Seal(ctx, aad, []byte("secret"))
	require.NoError(t, err)

	tampered := append([]byte(nil), sealed...)
	tampered[0] ^= 0xff

	_, err = s.Unseal(ctx, aad, tampered)
	assert.Error(t, err)
}

func Test_LocalSealer_DistinctInstancesCannotShareBlobs(t *testing.T) {
	s1, err := NewLocalSealer()
	require.NoError(t, err)
	s2, err := NewLocalSealer()
	require.NoError(t, err)

	ctx := context.Background()
	aad := []byte("aad")
	sealed, err := s1.Seal(ctx, aad, []byte("secret"))
	require.NoError(t, err)

	_, err = s2.Unseal(ctx, aad, sealed)
	assert.Error(t, err)
}
