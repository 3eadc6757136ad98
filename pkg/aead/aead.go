// Package aead implements the single-use symmetric layer used to turn a
// fresh IBE shared secret into an authenticated ciphertext: ChaCha20-Poly1305
// with a fixed all-zero 96-bit nonce. The nonce is safe to fix because the
// key is derived from per-encryption pairing randomness and is never reused.
package aead

import (
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize and TagSize are the fixed sizes of the symmetric key and
// authentication tag.
const (
	KeySize = chacha20poly1305.KeySize
	TagSize = chacha20poly1305.Overhead
)

// nonce is fixed at 12 zero bytes. Any future change that reuses a derived
// key across messages must also introduce a real nonce and bump a version
// byte upstream; see the ciphertext package's wire format comment.
var nonce = make([]byte, chacha20poly1305.NonceSize)

// Encrypt seals buf in place against associatedData under key and returns
// the detached authentication tag.
func Encrypt(key *[KeySize]byte, buf []byte, associatedData []byte) ([TagSize]byte, error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return [TagSize]byte{}, fmt.Errorf("aead: failed to init cipher: %w", err)
	}

	sealed := aead.Seal(nil, nonce, buf, associatedData)
	copy(buf, sealed[:len(buf)])
	var tag [TagSize]byte
	copy(tag[:], sealed[len(buf):])
	return tag, nil
}

// Decrypt opens buf in place against associatedData and tag, returning an
// error on tag mismatch. The plaintext is never returned on failure: buf no
// longer holds the ciphertext and does not hold a plaintext, and callers must
// treat a non-nil error as "no plaintext produced".
func Decrypt(key *[KeySize]byte, buf []byte, associatedData []byte, tag [TagSize]byte) error {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return fmt.Errorf("aead: failed to init cipher: %w", err)
	}

	sealed := make([]byte, 0, len(buf)+TagSize)
	sealed = append(sealed, buf...)
	sealed = append(sealed, tag[:]...)

	opened, err := aead.Open(buf[:0], nonce, sealed, associatedData)
	if err != nil {
		return ErrAuthentication
	}
	copy(buf, opened)
	return nil
}
