// Package curve wraps the BLS12-381 pairing operations used by the IBE
// layer: point (de)serialization, scalar multiplication, and pairings.
// gnark-crypto documents constant-time scalar multiplication and pairing
// evaluation, which is why it is used here instead of a hand-rolled curve
// implementation.
package curve

import (
	"fmt"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// GT is an element of the pairing target group.
type GT = bls12381.GT

// Compressed encoding sizes for the curve's groups.
const (
	G1Size = bls12381.SizeOfG1AffineCompressed
	G2Size = bls12381.SizeOfG2AffineCompressed
	GTSize = bls12381.SizeOfGT
)

// G1Point is a point on BLS12-381 G1.
type G1Point struct {
	p bls12381.G1Affine
}

// G2Point is a point on BLS12-381 G2.
type G2Point struct {
	p bls12381.G2Affine
}

var (
	g1Gen G1Point
	g2Gen G2Point
)

func init() {
	_, _, g1, g2 := bls12381.Generators()
	g1Gen.p = g1
	g2Gen.p = g2
}

// G1Generator returns the fixed generator of G1.
func G1Generator() *G1Point {
	p := g1Gen
	return &p
}

// G2Generator returns the fixed generator of G2.
func G2Generator() *G2Point {
	p := g2Gen
	return &p
}

// NewG1FromCompressed decodes a 48-byte compressed G1 point.
func NewG1FromCompressed(b []byte) (*G1Point, error) {
	var p bls12381.G1Affine
	if _, err := p.SetBytes(b); err != nil {
		return nil, fmt.Errorf("curve: invalid G1 point: %w", err)
	}
	return &G1Point{p: p}, nil
}

// NewG2FromCompressed decodes a 96-byte compressed G2 point.
func NewG2FromCompressed(b []byte) (*G2Point, error) {
	var p bls12381.G2Affine
	if _, err := p.SetBytes(b); err != nil {
		return nil, fmt.Errorf("curve: invalid G2 point: %w", err)
	}
	return &G2Point{p: p}, nil
}

// Bytes returns the 48-byte compressed encoding of p.
func (p *G1Point) Bytes() []byte {
	b := p.p.Bytes()
	return b[:]
}

// Bytes returns the 96-byte compressed encoding of p.
func (p *G2Point) Bytes() []byte {
	b := p.p.Bytes()
	return b[:]
}

// IsZero reports whether p is the identity point.
func (p *G1Point) IsZero() bool { return p.p.IsInfinity() }

// IsZero reports whether p is the identity point.
func (p *G2Point) IsZero() bool { return p.p.IsInfinity() }

// Equal reports whether p and o encode the same point.
func (p *G1Point) Equal(o *G1Point) bool { return p.p.Equal(&o.p) }

// Equal reports whether p and o encode the same point.
func (p *G2Point) Equal(o *G2Point) bool { return p.p.Equal(&o.p) }

// Affine exposes the underlying gnark-crypto point for pairing calls.
func (p *G1Point) Affine() bls12381.G1Affine { return p.p }

// Affine exposes the underlying gnark-crypto point for pairing calls.
func (p *G2Point) Affine() bls12381.G2Affine { return p.p }

// Neg returns the additive inverse of p.
func (p *G1Point) Neg() *G1Point {
	var n bls12381.G1Affine
	n.Neg(&p.p)
	return &G1Point{p: n}
}

// ScalarMulG1 computes [s]p.
func ScalarMulG1(p *G1Point, s *fr.Element) *G1Point {
	var sBig big.Int
	s.BigInt(&sBig)
	var r bls12381.G1Affine
	r.ScalarMultiplication(&p.p, &sBig)
	return &G1Point{p: r}
}

// ScalarMulG2 computes [s]p.
func ScalarMulG2(p *G2Point, s *fr.Element) *G2Point {
	var sBig big.Int
	s.BigInt(&sBig)
	var r bls12381.G2Affine
	r.ScalarMultiplication(&p.p, &sBig)
	return &G2Point{p: r}
}

// AddG2 adds two G2 points.
func AddG2(a, b *G2Point) *G2Point {
	var r bls12381.G2Affine
	r.Add(&a.p, &b.p)
	return &G2Point{p: r}
}

// RandomScalar samples a nonzero scalar from a cryptographically secure
// source, resampling on the (negligibly likely) zero outcome.
func RandomScalar() (*fr.Element, error) {
	for {
		s := new(fr.Element)
		if _, err := s.SetRandom(); err != nil {
			return nil, fmt.Errorf("curve: failed to sample scalar: %w", err)
		}
		if !s.IsZero() {
			return s, nil
		}
	}
}

// Pair evaluates the bilinear pairing e(a, b).
func Pair(a *G1Point, b *G2Point) (GT, error) {
	return bls12381.Pair([]bls12381.G1Affine{a.p}, []bls12381.G2Affine{b.p})
}

// PairingsEqual checks e(a1,b1) == e(a2,b2) using a single multi-Miller-loop
// and final exponentiation, which is cheaper than two independent pairings.
func PairingsEqual(a1 *G1Point, b1 *G2Point, a2 *G1Point, b2 *G2Point) (bool, error) {
	neg := a1.Neg()
	ml, err := bls12381.MillerLoop(
		[]bls12381.G1Affine{neg.p, a2.p},
		[]bls12381.G2Affine{b1.p, b2.p},
	)
	if err != nil {
		return false, fmt.Errorf("curve: miller loop failed: %w", err)
	}
	result := bls12381.FinalExponentiation(&ml)
	return result.IsOne(), nil
}

// GTBytes returns the canonical 576-byte big-endian encoding of a GT element
// (12 field-element limbs). gnark-crypto's GT.Bytes exposes exactly this
// encoding; it must never be swapped for a Stringer/debug representation,
// which is unstable across library versions and would silently break
// interop between implementations of this scheme.
func GTBytes(s *GT) [GTSize]byte {
	return s.Bytes()
}
