package sealer

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"

	"github.com/Layr-Labs/dawn-ibe/pkg/aead"
)

// LocalSealer seals master private key material under an in-process
// ChaCha20-Poly1305 key instead of a hardware or KMS boundary. It exists
// for local development and tests, the same role localKeyGenerator plays
// next to the AWS KMS-backed key generator: real enough to exercise every
// code path, never to be pointed at production secrets.
type LocalSealer struct {
	mu  sync.Mutex
	key [aead.KeySize]byte
}

// NewLocalSealer samples a fresh process-lifetime key. The key is never
// persisted, so a LocalSealer cannot unseal blobs from a previous process.
func NewLocalSealer() (*LocalSealer, error) {
	s := &LocalSealer{}
	if _, err := rand.Read(s.key[:]); err != nil {
		return nil, fmt.Errorf("sealer: failed to sample local key: %w", err)
	}
	return s, nil
}

func (s *LocalSealer) Seal(_ context.Context, aad, plaintext []byte) (Sealed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := append([]byte(nil), plaintext...)
	tag, err := aead.Encrypt(&s.key, buf, aad)
	if err != nil {
		return nil, fmt.Errorf("sealer: local seal failed: %w", err)
	}
	return append(buf, tag[:]...), nil
}

func (s *LocalSealer) Unseal(_ context.Context, aad []byte, sealed Sealed) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(sealed) < aead.TagSize {
		return nil, fmt.Errorf("sealer: sealed blob shorter than an authentication tag")
	}
	split := len(sealed) - aead.TagSize
	buf := append([]byte(nil), sealed[:split]...)
	var tag [aead.TagSize]byte
	copy(tag[:], sealed[split:])

	if err := aead.Decrypt(&s.key, buf, aad, tag); err != nil {
		return nil, err
	}
	return buf, nil
}
