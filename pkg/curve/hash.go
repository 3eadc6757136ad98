package curve

import (
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// g1DST is the domain separation tag for hashing labels into G1. It must
// match the verifier's expectation exactly; changing it breaks
// interoperability with every previously published decryption key.
const g1DST = "BLS_SIG_BLS12381G1_XMD:SHA-256_SSWU_RO_NUL_"

// HashToG1 deterministically maps label to a point in G1 using the
// BLS_SIG_BLS12381G1_XMD:SHA-256_SSWU_RO_NUL_ hash-to-curve suite.
func HashToG1(label []byte) (*G1Point, error) {
	p, err := bls12381.HashToG1(label, []byte(g1DST))
	if err != nil {
		return nil, fmt.Errorf("curve: hash to G1 failed: %w", err)
	}
	return &G1Point{p: p}, nil
}
