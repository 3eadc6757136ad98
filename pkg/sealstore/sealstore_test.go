package sealstore

import (
	"testing"

	"github.com/Layr-Labs/dawn-ibe/pkg/authority"
	"github.com/Layr-Labs/dawn-ibe/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_PutThenGet_Roundtrip(t *testing.T) {
	tmpDir := t.TempDir()
	testLogger, err := logger.NewLogger(&logger.LoggerConfig{Debug: false})
	require.NoError(t, err)

	store, err := Open(tmpDir, testLogger)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	sealed := authority.SealedMasterPrivateKey{Blob: []byte{1, 2, 3, 4, 5}}
	require.NoError(t, store.Put("key-a", sealed))

	got, found, err := store.Get("key-a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, sealed.Blob, got.Blob)
}

func Test_Get_NotFound(t *testing.T) {
	tmpDir := t.TempDir()
	testLogger, err := logger.NewLogger(&logger.LoggerConfig{Debug: false})
	require.NoError(t, err)

	store, err := Open(tmpDir, testLogger)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, found, err := store.Get("missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func Test_Put_OverwritesExisting(t *testing.T) {
	tmpDir := t.TempDir()
	testLogger, err := logger.NewLogger(&logger.LoggerConfig{Debug: false})
	require.NoError(t, err)

	store, err := Open(tmpDir, testLogger)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Put("key-a", authority.SealedMasterPrivateKey{Blob: []byte("first")}))
	require.NoError(t, store.Put("key-a", authority.SealedMasterPrivateKey{Blob: []byte("second")}))

	got, found, err := store.Get("key-a")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("second"), got.Blob)
}

func Test_DistinctKeyIDsDoNotCollide(t *testing.T) {
	tmpDir := t.TempDir()
	testLogger, err := logger.NewLogger(&logger.LoggerConfig{Debug: false})
	require.NoError(t, err)

	store, err := Open(tmpDir, testLogger)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Put("key-a", authority.SealedMasterPrivateKey{Blob: []byte("a")}))
	require.NoError(t, store.Put("key-b", authority.SealedMasterPrivateKey{Blob: []byte("b")}))

	got, found, err := store.Get("key-a")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("a"), got.Blob)

	got, found, err = store.Get("key-b")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("b"), got.Blob)
}

func Test_Close_IsIdempotentAndRejectsFurtherUse(t *testing.T) {
	tmpDir := t.TempDir()
	testLogger, err := logger.NewLogger(&logger.LoggerConfig{Debug: false})
	require.NoError(t, err)

	store, err := Open(tmpDir, testLogger)
	require.NoError(t, err)

	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	_, _, err = store.Get("key-a")
	assert.Error(t, err)

	err = store.Put("key-a", authority.SealedMasterPrivateKey{Blob: []byte("x")})
	assert.Error(t, err)
}
