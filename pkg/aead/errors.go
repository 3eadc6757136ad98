package aead

import "errors"

// ErrAuthentication indicates an AEAD tag mismatch: either a wrong key (and
// so typically a wrong decryption key upstream) or tampering.
var ErrAuthentication = errors.New("aead: authentication failed")
