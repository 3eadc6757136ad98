package authority

import (
	"bytes"
	"context"
	"testing"

	"github.com/Layr-Labs/dawn-ibe/pkg/ibe"
	"github.com/Layr-Labs/dawn-ibe/pkg/sealer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GenerateThenReveal(t *testing.T) {
	ctx := context.Background()
	s, err := sealer.NewLocalSealer()
	require.NoError(t, err)

	genResp, err := Handle(ctx, GenerateRequest(), s)
	require.NoError(t, err)
	require.Equal(t, KindGenerate, genResp.Kind)
	require.NotEmpty(t, genResp.MasterPublicKey)
	require.NotEmpty(t, genResp.Sealed.Blob)

	mpk, err := ibe.MasterPublicKeyFromBytes(genResp.MasterPublicKey)
	require.NoError(t, err)

	label := ibe.Label("app-1")
	revealResp, err := Handle(ctx, RevealRequest(label, genResp.Sealed), s)
	require.NoError(t, err)
	require.Equal(t, KindReveal, revealResp.Kind)

	sigma, err := ibe.DecryptionKeyFromBytes(revealResp.DecryptionKey)
	require.NoError(t, err)

	ok, err := ibe.Verify(label, mpk, sigma)
	require.NoError(t, err)
	assert.True(t, ok)
}

func Test_Reveal_RejectsBlobSealedByAnotherKey(t *testing.T) {
	ctx := context.Background()
	s1, err := sealer.NewLocalSealer()
	require.NoError(t, err)
	s2, err := sealer.NewLocalSealer()
	require.NoError(t, err)

	genResp, err := Handle(ctx, GenerateRequest(), s1)
	require.NoError(t, err)

	_, err = Handle(ctx, RevealRequest(ibe.Label("app-1"), genResp.Sealed), s2)
	assert.Error(t, err)
}

func Test_RequestResponse_CBORRoundtrip(t *testing.T) {
	var buf bytes.Buffer

	req := RevealRequest(ibe.Label("app-1"), SealedMasterPrivateKey{Blob: []byte{1, 2, 3}})
	require.NoError(t, WriteRequest(&buf, req))

	decoded, err := ReadRequest(&buf)
	require.NoError(t, err)
	assert.Equal(t, req, decoded)

	buf.Reset()
	resp := Response{Kind: KindReveal, DecryptionKey: []byte{4, 5, 6}}
	require.NoError(t, WriteResponse(&buf, resp))

	decodedResp, err := ReadResponse(&buf)
	require.NoError(t, err)
	assert.Equal(t, resp, decodedResp)
}
