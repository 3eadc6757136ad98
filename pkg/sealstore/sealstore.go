// Package sealstore persists sealed master private key blobs across
// authority restarts. It never touches an unsealed key: everything it
// stores and returns is exactly the opaque blob a sealer.Sealer produced.
package sealstore

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/Layr-Labs/dawn-ibe/pkg/authority"
	badgerdb "github.com/dgraph-io/badger/v3"
	"go.uber.org/zap"
)

const keyPrefixSealed = "sealed-msk:"

// Store persists SealedMasterPrivateKey blobs, keyed by an arbitrary key
// identifier the caller chooses (e.g. a KMS key ID, so rotating the
// sealing key doesn't collide with old blobs).
type Store struct {
	db     *badgerdb.DB
	logger *zap.Logger
	mu     sync.RWMutex
	closed bool
}

// Open opens (or creates) a badger database at dataPath to back the store.
func Open(dataPath string, logger *zap.Logger) (*Store, error) {
	absPath, err := filepath.Abs(dataPath)
	if err != nil {
		return nil, fmt.Errorf("sealstore: failed to resolve path: %w", err)
	}

	opts := badgerdb.DefaultOptions(absPath)
	opts.Logger = &badgerLoggerAdapter{logger: logger}
	opts.SyncWrites = true

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("sealstore: failed to open database at %s: %w", absPath, err)
	}

	logger.Sugar().Infow("sealstore initialized", "path", absPath)
	return &Store{db: db, logger: logger}, nil
}

// Put stores sealed under keyID, overwriting any existing blob.
func (s *Store) Put(keyID string, sealed authority.SealedMasterPrivateKey) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return fmt.Errorf("sealstore: closed")
	}

	key := []byte(keyPrefixSealed + keyID)
	return s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set(key, sealed.Blob)
	})
}

// Get retrieves the sealed blob stored under keyID. It returns (zero value,
// false, nil) if no blob has been stored under that key.
func (s *Store) Get(keyID string) (authority.SealedMasterPrivateKey, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return authority.SealedMasterPrivateKey{}, false, fmt.Errorf("sealstore: closed")
	}

	key := []byte(keyPrefixSealed + keyID)
	var blob []byte
	found := false

	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(key)
		if err == badgerdb.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			blob = append([]byte(nil), val...)
			return nil
		})
	})
	if err != nil {
		return authority.SealedMasterPrivateKey{}, false, fmt.Errorf("sealstore: get failed: %w", err)
	}
	if !found {
		return authority.SealedMasterPrivateKey{}, false, nil
	}
	return authority.SealedMasterPrivateKey{Blob: blob}, true, nil
}

// Close shuts down the underlying database. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("sealstore: failed to close database: %w", err)
	}
	return nil
}
