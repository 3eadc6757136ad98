// Package sealer abstracts the authority's hardware trust boundary: the
// operation that wraps a master private key's scalar bytes so they can be
// stored outside the boundary and only unwrapped back inside it.
//
// The production path seals against an AWS KMS customer managed key
// (pkg/sealer's KMSSealer); a LocalSealer stands in for it in development
// and tests, playing the same role localKeyGenerator plays next to the AWS
// KMS key generator.
package sealer

import "context"

// Sealed is an opaque, storable blob produced by Seal. Its internal layout
// is sealer-specific; callers must round-trip it through the same Sealer
// that produced it.
type Sealed []byte

// Sealer wraps and unwraps master private key material. aad binds the
// sealed blob to context that must match on unseal (e.g. a key identifier);
// it is authenticated but not encrypted.
type Sealer interface {
	Seal(ctx context.Context, aad, plaintext []byte) (Sealed, error)
	Unseal(ctx context.Context, aad []byte, sealed Sealed) ([]byte, error)
}
