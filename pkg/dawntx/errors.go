package dawntx

import "errors"

// Errors surfaced by the transaction coupling layer. None of them are
// recovered locally; classifying the failure precisely is this package's
// entire job.
var (
	// ErrSignature means the envelope's signature could not be recovered
	// (malformed r/s/v, or a point not on the curve).
	ErrSignature = errors.New("dawntx: invalid signature")

	// ErrAuthentication means the AEAD tag did not verify: either the
	// decryption key doesn't match this label or the ciphertext was
	// tampered with.
	ErrAuthentication = errors.New("dawntx: ciphertext authentication failed")

	// ErrInvalidDecryptionKey is reserved for callers that pre-verify sigma
	// via ibe.Verify before calling Decrypt.
	ErrInvalidDecryptionKey = errors.New("dawntx: invalid decryption key")

	// ErrInvalidSender means the sender recovered while reencrypting does
	// not match the sender recorded on the decrypted transaction.
	ErrInvalidSender = errors.New("dawntx: recovered sender does not match")

	// ErrShortPayload means the decrypted plaintext is shorter than the
	// 20-byte callee address it must begin with. The AEAD tag has already
	// validated the ciphertext by this point, which is why this is
	// reported distinctly from ErrAuthentication.
	ErrShortPayload = errors.New("dawntx: decrypted payload shorter than an address")
)
