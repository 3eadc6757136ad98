// Package ciphertext glues the IBE encapsulation layer (pkg/ibe) and the
// single-use AEAD layer (pkg/aead) into a hybrid, IND-CCA-like encryption
// object with a stable wire form: a triple (u, payload, tag) that can be
// embedded inside a transaction envelope.
package ciphertext

import (
	"crypto/sha256"
	"fmt"

	"github.com/Layr-Labs/dawn-ibe/pkg/aead"
	"github.com/Layr-Labs/dawn-ibe/pkg/ibe"
)

// Ciphertext is the hybrid IBE+AEAD ciphertext. Payload is the same length
// as the original plaintext; Tag authenticates it against the associated
// data passed to Encrypt or Reencrypt.
type Ciphertext struct {
	U       *ibe.EphemeralPublicKey
	Payload []byte
	Tag     [aead.TagSize]byte
}

// Encrypt runs ibe.Share against label and mpk, derives a symmetric key from
// the resulting shared secret, and seals a copy of plaintext under
// associatedData. Randomized through ibe.Share's fresh r; never call this
// twice with the same label and expect the same ciphertext.
func Encrypt(mpk *ibe.MasterPublicKey, label ibe.Label, plaintext []byte, associatedData []byte) (*Ciphertext, error) {
	u, s, err := ibe.Share(label, mpk)
	if err != nil {
		return nil, fmt.Errorf("ciphertext: share failed: %w", err)
	}

	key := deriveKey(s)
	buf := append([]byte(nil), plaintext...)
	tag, err := aead.Encrypt(&key, buf, associatedData)
	if err != nil {
		return nil, fmt.Errorf("ciphertext: encrypt failed: %w", err)
	}

	return &Ciphertext{U: u, Payload: buf, Tag: tag}, nil
}

// Decrypt recovers the shared secret from ct.U and sigma, derives the
// symmetric key, and opens ct.Payload against associatedData. It never
// returns a partial plaintext: on tag mismatch the only output is
// aead.ErrAuthentication.
func (ct *Ciphertext) Decrypt(sigma *ibe.DecryptionKey, associatedData []byte) ([]byte, error) {
	s, err := ibe.Recover(ct.U, sigma)
	if err != nil {
		return nil, fmt.Errorf("ciphertext: recover failed: %w", err)
	}

	key := deriveKey(s)
	buf := append([]byte(nil), ct.Payload...)
	if err := aead.Decrypt(&key, buf, associatedData, ct.Tag); err != nil {
		return nil, err
	}
	return buf, nil
}

// Reencrypt reconstructs a ciphertext from an externally supplied (u, sigma)
// pair instead of sampling fresh randomness: it derives s = recover(u,
// sigma) and seals plaintext under associatedData exactly as Encrypt would
// have. For an honest original ciphertext ct, Reencrypt(ct.U, sigma,
// plaintext, ad) reproduces ct byte-for-byte — this is the verifier-side
// reconstruction used to round-trip a decrypted transaction back into its
// encrypted form.
func Reencrypt(u *ibe.EphemeralPublicKey, sigma *ibe.DecryptionKey, plaintext []byte, associatedData []byte) (*Ciphertext, error) {
	s, err := ibe.Recover(u, sigma)
	if err != nil {
		return nil, fmt.Errorf("ciphertext: recover failed: %w", err)
	}

	key := deriveKey(s)
	buf := append([]byte(nil), plaintext...)
	tag, err := aead.Encrypt(&key, buf, associatedData)
	if err != nil {
		return nil, fmt.Errorf("ciphertext: encrypt failed: %w", err)
	}

	return &Ciphertext{U: u, Payload: buf, Tag: tag}, nil
}

// deriveKey computes SHA-256 over the canonical 576-byte encoding of the
// shared secret. Both sides of an exchange must agree on that encoding
// bit-for-bit, which is why SharedSecret.Bytes uses GT's canonical
// serialization rather than any debug/Stringer form.
func deriveKey(s *ibe.SharedSecret) [aead.KeySize]byte {
	b := s.Bytes()
	return sha256.Sum256(b[:])
}
