package dawntx

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// rlpFields mirrors the exact field order of the signing preimage and the
// signed wire encoding: chain_id, nonce, max_priority_fee_per_gas,
// max_fee_per_gas, gas_limit, value, access_list, then the three ciphertext
// components. There is no "to" or "input" field: those are exactly what the
// ciphertext hides.
type rlpFields struct {
	ChainID              *big.Int
	Nonce                uint64
	MaxPriorityFeePerGas *big.Int
	MaxFeePerGas         *big.Int
	GasLimit             uint64
	Value                *big.Int
	AccessList           gethtypes.AccessList
	U                    []byte
	Payload              []byte
	Tag                  []byte
}

func toRLPFields(tx *TxEncrypted) rlpFields {
	return rlpFields{
		ChainID:              tx.ChainID,
		Nonce:                tx.Nonce,
		MaxPriorityFeePerGas: tx.MaxPriorityFeePerGas,
		MaxFeePerGas:         tx.MaxFeePerGas,
		GasLimit:             tx.GasLimit,
		Value:                tx.Value,
		AccessList:           tx.AccessList,
		U:                    tx.CiphertextU,
		Payload:              tx.CiphertextPayload,
		Tag:                  tx.CiphertextTag,
	}
}

// EncodeForSigning returns the EIP-2718-style signing preimage: the type
// byte followed by the RLP list of tx's fields, with no outer string
// header. This is also the canonical unsigned wire form.
func EncodeForSigning(tx *TxEncrypted) ([]byte, error) {
	body, err := rlp.EncodeToBytes(toRLPFields(tx))
	if err != nil {
		return nil, fmt.Errorf("dawntx: encode fields: %w", err)
	}
	out := make([]byte, 0, len(body)+1)
	out = append(out, Type)
	out = append(out, body...)
	return out, nil
}

// SigningHash returns the keccak256 hash of tx's signing preimage.
func SigningHash(tx *TxEncrypted) (common.Hash, error) {
	preimage, err := EncodeForSigning(tx)
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(preimage), nil
}

// Sign computes tx's signing hash and produces a Signed[TxEncrypted] under
// priv. The returned Hash is exactly what Decrypt later preserves unchanged
// onto the decrypted transaction.
func Sign(tx *TxEncrypted, priv *ecdsa.PrivateKey) (*Signed[TxEncrypted], error) {
	hash, err := SigningHash(tx)
	if err != nil {
		return nil, err
	}
	sig, err := crypto.Sign(hash.Bytes(), priv)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignature, err)
	}
	return &Signed[TxEncrypted]{
		Tx:   *tx,
		Sig:  Signature{V: sig[64], R: new(big.Int).SetBytes(sig[0:32]), S: new(big.Int).SetBytes(sig[32:64])},
		Hash: hash,
	}, nil
}

// RecoverSender recovers the address that produced sig over hash.
func RecoverSender(hash common.Hash, sig Signature) (common.Address, error) {
	raw := make([]byte, 65)
	copy(raw[0:32], leftPad32(sig.R))
	copy(raw[32:64], leftPad32(sig.S))
	raw[64] = sig.V

	pub, err := crypto.SigToPub(hash.Bytes(), raw)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrSignature, err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

func leftPad32(x *big.Int) []byte {
	var b [32]byte
	x.FillBytes(b[:])
	return b[:]
}
