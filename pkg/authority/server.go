package authority

import (
	"context"
	"fmt"

	"github.com/Layr-Labs/dawn-ibe/pkg/ibe"
	"github.com/Layr-Labs/dawn-ibe/pkg/sealer"
)

// mskAAD is the fixed associated data every sealed master private key is
// bound under. There is exactly one master key per authority instance, so
// a constant is sufficient; a multi-tenant authority would bind this to a
// tenant or key identifier instead.
var mskAAD = []byte("dawn-ibe-master-private-key")

// Handle dispatches req to the Generate or Reveal operation and returns the
// corresponding Response. This is the only function in the module that
// runs with an unsealed master private key scalar in memory.
func Handle(ctx context.Context, req Request, s sealer.Sealer) (Response, error) {
	switch req.Kind {
	case KindGenerate:
		return handleGenerate(ctx, s)
	case KindReveal:
		return handleReveal(ctx, req, s)
	default:
		return Response{}, fmt.Errorf("authority: unknown request kind %q", req.Kind)
	}
}

func handleGenerate(ctx context.Context, s sealer.Sealer) (Response, error) {
	mpk, msk, err := ibe.Generate()
	if err != nil {
		return Response{}, fmt.Errorf("authority: generate failed: %w", err)
	}

	sealed, err := s.Seal(ctx, mskAAD, msk.ScalarBytes())
	if err != nil {
		return Response{}, fmt.Errorf("authority: failed to seal master private key: %w", err)
	}

	return Response{
		Kind:            KindGenerate,
		MasterPublicKey: mpk.Bytes(),
		Sealed:          SealedMasterPrivateKey{Blob: sealed},
	}, nil
}

func handleReveal(ctx context.Context, req Request, s sealer.Sealer) (Response, error) {
	scalarBytes, err := s.Unseal(ctx, mskAAD, req.Sealed.Blob)
	if err != nil {
		return Response{}, fmt.Errorf("authority: failed to unseal master private key: %w", err)
	}

	msk, err := ibe.MasterPrivateKeyFromScalarBytes(scalarBytes)
	if err != nil {
		return Response{}, fmt.Errorf("authority: invalid unsealed master private key: %w", err)
	}

	sigma, err := ibe.Reveal(req.Label, msk)
	if err != nil {
		return Response{}, fmt.Errorf("authority: reveal failed: %w", err)
	}

	return Response{Kind: KindReveal, DecryptionKey: sigma.Bytes()}, nil
}
