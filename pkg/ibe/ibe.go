// Package ibe implements the Boneh-Franklin-style identity-based encryption
// primitives: master key generation, per-label encapsulation, authority
// reveal, recipient recovery, and public verification of a revealed
// decryption key.
//
// A Label picks out an IBE identity. The master keypair is long-lived; a
// DecryptionKey is derived per label by whoever holds the MasterPrivateKey
// and may be published once it exists, since verify lets anyone confirm it
// was derived honestly.
package ibe

import (
	"errors"
	"fmt"

	"github.com/Layr-Labs/dawn-ibe/pkg/curve"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// ErrZeroPoint is returned by Verify when sigma or the label's hash is the
// identity; such values can never arise from honest execution and would
// otherwise make the pairing check vacuously true.
var ErrZeroPoint = errors.New("ibe: zero point is not a valid key or ephemeral value")

// Label is the public byte string binding a ciphertext to an IBE identity.
type Label []byte

// MasterPublicKey is the authority's long-lived public key, a point in G2.
type MasterPublicKey struct {
	Point *curve.G2Point
}

// MasterPrivateKey is the authority's long-lived secret scalar.
type MasterPrivateKey struct {
	scalar *fr.Element
}

// DecryptionKey is the per-label secret the authority publishes; a point in
// G1.
type DecryptionKey struct {
	Point *curve.G1Point
}

// EphemeralPublicKey is the per-encryption randomness commitment, a point in
// G2.
type EphemeralPublicKey struct {
	Point *curve.G2Point
}

// SharedSecret is the GT element both sides of an encryption agree on; it
// never leaves the crypto layer and must not be retained past key
// derivation.
type SharedSecret struct {
	gt curve.GT
}

// Bytes returns the canonical 576-byte encoding used to derive a symmetric
// key from s.
func (s SharedSecret) Bytes() [curve.GTSize]byte {
	return curve.GTBytes(&s.gt)
}

// Bytes returns the 96-byte compressed encoding of the master public key.
func (k *MasterPublicKey) Bytes() []byte { return k.Point.Bytes() }

// MasterPublicKeyFromBytes decodes a compressed G2 point as a master public
// key.
func MasterPublicKeyFromBytes(b []byte) (*MasterPublicKey, error) {
	p, err := curve.NewG2FromCompressed(b)
	if err != nil {
		return nil, fmt.Errorf("ibe: invalid master public key: %w", err)
	}
	return &MasterPublicKey{Point: p}, nil
}

// Bytes returns the 96-byte compressed encoding of u.
func (u *EphemeralPublicKey) Bytes() []byte { return u.Point.Bytes() }

// EphemeralPublicKeyFromBytes decodes a compressed G2 point as an ephemeral
// public key.
func EphemeralPublicKeyFromBytes(b []byte) (*EphemeralPublicKey, error) {
	p, err := curve.NewG2FromCompressed(b)
	if err != nil {
		return nil, fmt.Errorf("ibe: invalid ephemeral public key: %w", err)
	}
	return &EphemeralPublicKey{Point: p}, nil
}

// Bytes returns the 48-byte compressed encoding of sigma.
func (sigma *DecryptionKey) Bytes() []byte { return sigma.Point.Bytes() }

// DecryptionKeyFromBytes decodes a compressed G1 point as a decryption key.
func DecryptionKeyFromBytes(b []byte) (*DecryptionKey, error) {
	p, err := curve.NewG1FromCompressed(b)
	if err != nil {
		return nil, fmt.Errorf("ibe: invalid decryption key: %w", err)
	}
	return &DecryptionKey{Point: p}, nil
}

// Generate samples a fresh master keypair: msk is a uniformly random nonzero
// scalar, and mpk = [msk]*G2.
func Generate() (*MasterPublicKey, *MasterPrivateKey, error) {
	sk, err := curve.RandomScalar()
	if err != nil {
		return nil, nil, fmt.Errorf("ibe: failed to generate master key: %w", err)
	}
	pk := curve.ScalarMulG2(curve.G2Generator(), sk)
	return &MasterPublicKey{Point: pk}, &MasterPrivateKey{scalar: sk}, nil
}

// Share samples fresh encapsulation randomness r and returns
// (u, s) = ([r]*G2, e(H(label), mpk)^r).
func Share(label Label, mpk *MasterPublicKey) (*EphemeralPublicKey, *SharedSecret, error) {
	h, err := curve.HashToG1(label)
	if err != nil {
		return nil, nil, fmt.Errorf("ibe: failed to hash label: %w", err)
	}

	r, err := curve.RandomScalar()
	if err != nil {
		return nil, nil, fmt.Errorf("ibe: failed to sample share randomness: %w", err)
	}

	u := curve.ScalarMulG2(curve.G2Generator(), r)

	base, err := curve.Pair(h, mpk.Point)
	if err != nil {
		return nil, nil, fmt.Errorf("ibe: pairing failed: %w", err)
	}
	var s curve.GT
	s.Exp(base, frToBigInt(r))

	return &EphemeralPublicKey{Point: u}, &SharedSecret{gt: s}, nil
}

// Reveal computes the per-label decryption key sigma = [msk]*H(label). This
// is the only operation that touches msk, and it is meant to run inside the
// authority's trusted boundary for the lifetime of a single request.
func Reveal(label Label, msk *MasterPrivateKey) (*DecryptionKey, error) {
	h, err := curve.HashToG1(label)
	if err != nil {
		return nil, fmt.Errorf("ibe: failed to hash label: %w", err)
	}
	sigma := curve.ScalarMulG1(h, msk.scalar)
	return &DecryptionKey{Point: sigma}, nil
}

// Recover computes s' = e(sigma, u), which equals the shared secret produced
// by Share for the same label once sigma is the honest decryption key.
func Recover(u *EphemeralPublicKey, sigma *DecryptionKey) (*SharedSecret, error) {
	s, err := curve.Pair(sigma.Point, u.Point)
	if err != nil {
		return nil, fmt.Errorf("ibe: pairing failed: %w", err)
	}
	return &SharedSecret{gt: s}, nil
}

// Verify reports whether sigma is the honest decryption key for label under
// mpk, i.e. e(H(label), mpk) == e(sigma, G2). It rejects sigma or the
// label's hash being the identity point, since honest execution can never
// produce either and a malicious prover could otherwise pass trivially.
func Verify(label Label, mpk *MasterPublicKey, sigma *DecryptionKey) (bool, error) {
	h, err := curve.HashToG1(label)
	if err != nil {
		return false, fmt.Errorf("ibe: failed to hash label: %w", err)
	}
	if sigma.Point.IsZero() || h.IsZero() {
		return false, ErrZeroPoint
	}
	return curve.PairingsEqual(h, mpk.Point, sigma.Point, curve.G2Generator())
}

// MasterPrivateKeyFromScalarBytes reconstructs a master private key from its
// raw 32-byte big-endian scalar encoding, as produced by ScalarBytes. This is
// used by sealing facilities that persist msk as an opaque blob and need to
// reload it before calling Reveal.
func MasterPrivateKeyFromScalarBytes(b []byte) (*MasterPrivateKey, error) {
	var s fr.Element
	s.SetBytes(b)
	if s.IsZero() {
		return nil, errors.New("ibe: master private key scalar must be nonzero")
	}
	return &MasterPrivateKey{scalar: &s}, nil
}

// ScalarBytes returns the 32-byte big-endian encoding of msk's scalar.
func (msk *MasterPrivateKey) ScalarBytes() []byte {
	b := msk.scalar.Bytes()
	return b[:]
}
