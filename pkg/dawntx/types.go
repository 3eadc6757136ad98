// Package dawntx composes the hybrid ciphertext layer (pkg/ciphertext) with
// a typed transaction envelope: it derives the label from (chain id,
// sender, nonce), embeds the resulting ciphertext in an RLP-encoded body,
// and provides the encrypt/decrypt/reencrypt round trip relayers use once a
// label's decryption key is public.
//
// Transaction signing and RLP framing belong to the host chain; this
// package only fixes the shape of the typed body (§6 of the governing
// design) and calls go-ethereum's secp256k1 primitives to recover/verify
// senders, the same way the rest of this module's dependency stack already
// does for Ethereum-compatible chains.
package dawntx

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
)

// Type is the EIP-2718 transaction type byte for the confidential
// transaction kind. Types 0-3 are reserved by Ethereum mainnet (legacy,
// access-list, dynamic-fee, blob); this sits outside that range.
const Type = 0x64

// TxEncrypted is the on-wire, confidential shape of the transaction: every
// plaintext field the network needs to schedule and price the transaction,
// plus the hybrid ciphertext hiding its callee and calldata.
type TxEncrypted struct {
	ChainID              *big.Int
	Nonce                uint64
	MaxPriorityFeePerGas *big.Int
	MaxFeePerGas         *big.Int
	GasLimit             uint64
	Value                *big.Int
	AccessList           gethtypes.AccessList

	// CiphertextU is the 96-byte compressed ephemeral G2 public key.
	CiphertextU []byte
	// CiphertextPayload is the AEAD-sealed "to || input", same length as
	// the plaintext it hides.
	CiphertextPayload []byte
	// CiphertextTag is the 16-byte AEAD authentication tag.
	CiphertextTag []byte
}

// TxDecrypted is the shape a relayer reconstructs once the label's
// decryption key is public: the callee and input are now visible, and the
// fields needed to reencrypt back into a TxEncrypted without a back
// pointer are retained by value.
type TxDecrypted struct {
	ChainID              *big.Int
	Nonce                uint64
	MaxPriorityFeePerGas *big.Int
	MaxFeePerGas         *big.Int
	GasLimit             uint64
	Value                *big.Int
	AccessList           gethtypes.AccessList

	To    common.Address
	Input []byte

	// EphemeralPublicKey, DecryptionKey, and Sender are retained so
	// Reencrypt can reconstruct an identical ciphertext without consulting
	// anything outside this struct.
	EphemeralPublicKey []byte // 96 bytes
	DecryptionKey       []byte // 48 bytes
	Sender              common.Address
}

// Signature is a recoverable secp256k1 signature in the (v, r, s) form used
// by Ethereum-style transaction envelopes.
type Signature struct {
	V byte
	R *big.Int
	S *big.Int
}

// Signed pairs a transaction body with the signature and hash it was
// submitted under. Decrypting a TxEncrypted produces a Signed[TxDecrypted]
// that keeps the *original* signature and hash unchanged: the signature was
// and remains a signature over the encrypted body, never re-validated
// against the decrypted plaintext.
type Signed[T any] struct {
	Tx  T
	Sig Signature
	// Hash is the SigningHash of the original TxEncrypted: keccak256 of its
	// unsigned signing preimage, the value the signature was made over.
	Hash common.Hash
}
