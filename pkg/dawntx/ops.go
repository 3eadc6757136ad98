package dawntx

import (
	"errors"
	"math/big"

	"github.com/Layr-Labs/dawn-ibe/pkg/aead"
	"github.com/Layr-Labs/dawn-ibe/pkg/ciphertext"
	"github.com/Layr-Labs/dawn-ibe/pkg/ibe"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
)

const addressSize = 20

// EncryptTx seals (to, input) into a confidential transaction body under
// mpk, bound to the label derived from chainID, sender, and nonce. sender
// is never stored on the result: the label already commits to it, and it
// is recovered from the signature when the transaction is later decrypted.
func EncryptTx(
	mpk *ibe.MasterPublicKey,
	chainID *big.Int,
	nonce uint64,
	maxPriorityFeePerGas, maxFeePerGas *big.Int,
	gasLimit uint64,
	value *big.Int,
	accessList gethtypes.AccessList,
	to common.Address,
	input []byte,
	sender common.Address,
) (*TxEncrypted, error) {
	l := label(chainID.Uint64(), sender, nonce)
	payload := make([]byte, 0, addressSize+len(input))
	payload = append(payload, to.Bytes()...)
	payload = append(payload, input...)

	ct, err := ciphertext.Encrypt(mpk, l, payload, l)
	if err != nil {
		return nil, err
	}

	return &TxEncrypted{
		ChainID:              chainID,
		Nonce:                nonce,
		MaxPriorityFeePerGas: maxPriorityFeePerGas,
		MaxFeePerGas:         maxFeePerGas,
		GasLimit:             gasLimit,
		Value:                value,
		AccessList:           accessList,
		CiphertextU:          ct.U.Bytes(),
		CiphertextPayload:    ct.Payload,
		CiphertextTag:        ct.Tag[:],
	}, nil
}

// DecryptUnsigned opens tx's ciphertext under sigma, the decryption key
// revealed for the label (chain_id, sender, nonce). sender must be supplied
// by the caller (Decrypt recovers it from the envelope's signature); it is
// never derived from tx itself.
func DecryptUnsigned(tx *TxEncrypted, sigma *ibe.DecryptionKey, sender common.Address) (*TxDecrypted, error) {
	l := label(tx.ChainID.Uint64(), sender, tx.Nonce)

	u, err := ibe.EphemeralPublicKeyFromBytes(tx.CiphertextU)
	if err != nil {
		return nil, err
	}
	var tag [aead.TagSize]byte
	copy(tag[:], tx.CiphertextTag)
	ct := ciphertext.Ciphertext{U: u, Payload: tx.CiphertextPayload, Tag: tag}

	payload, err := ct.Decrypt(sigma, l)
	if err != nil {
		if errors.Is(err, aead.ErrAuthentication) {
			return nil, ErrAuthentication
		}
		return nil, err
	}
	if len(payload) < addressSize {
		return nil, ErrShortPayload
	}

	return &TxDecrypted{
		ChainID:              tx.ChainID,
		Nonce:                tx.Nonce,
		MaxPriorityFeePerGas: tx.MaxPriorityFeePerGas,
		MaxFeePerGas:         tx.MaxFeePerGas,
		GasLimit:             tx.GasLimit,
		Value:                tx.Value,
		AccessList:           tx.AccessList,
		To:                   common.BytesToAddress(payload[:addressSize]),
		Input:                append([]byte(nil), payload[addressSize:]...),
		EphemeralPublicKey:   append([]byte(nil), tx.CiphertextU...),
		DecryptionKey:        sigma.Bytes(),
		Sender:               sender,
	}, nil
}

// Decrypt recovers the sender from signed's own signature, opens the
// ciphertext under sigma, and rewraps the result with signed's original
// signature and hash unchanged. The signature was produced over the
// encrypted body and is never re-validated against the plaintext: a
// relayer that wants to confirm signed was honestly formed calls
// Reencrypt and compares, rather than re-deriving a signature here.
func Decrypt(signed *Signed[TxEncrypted], sigma *ibe.DecryptionKey) (*Signed[TxDecrypted], error) {
	sender, err := RecoverSender(signed.Hash, signed.Sig)
	if err != nil {
		return nil, err
	}

	dtx, err := DecryptUnsigned(&signed.Tx, sigma, sender)
	if err != nil {
		return nil, err
	}

	return &Signed[TxDecrypted]{Tx: *dtx, Sig: signed.Sig, Hash: signed.Hash}, nil
}

// ReencryptUnsigned reconstructs the confidential body from a decrypted
// transaction's retained ephemeral key and decryption key. Because
// ciphertext.Reencrypt is a deterministic right inverse of Encrypt, this
// reproduces the original ciphertext byte for byte when tx genuinely came
// from decrypting an honest TxEncrypted.
func ReencryptUnsigned(tx *TxDecrypted) (*TxEncrypted, error) {
	l := label(tx.ChainID.Uint64(), tx.Sender, tx.Nonce)

	u, err := ibe.EphemeralPublicKeyFromBytes(tx.EphemeralPublicKey)
	if err != nil {
		return nil, err
	}
	sigma, err := ibe.DecryptionKeyFromBytes(tx.DecryptionKey)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, 0, addressSize+len(tx.Input))
	payload = append(payload, tx.To.Bytes()...)
	payload = append(payload, tx.Input...)

	ct, err := ciphertext.Reencrypt(u, sigma, payload, l)
	if err != nil {
		return nil, err
	}

	return &TxEncrypted{
		ChainID:              tx.ChainID,
		Nonce:                tx.Nonce,
		MaxPriorityFeePerGas: tx.MaxPriorityFeePerGas,
		MaxFeePerGas:         tx.MaxFeePerGas,
		GasLimit:             tx.GasLimit,
		Value:                tx.Value,
		AccessList:           tx.AccessList,
		CiphertextU:          ct.U.Bytes(),
		CiphertextPayload:    ct.Payload,
		CiphertextTag:        ct.Tag[:],
	}, nil
}

// Reencrypt rebuilds the confidential envelope from a decrypted
// transaction, reusing signed's signature, and checks that the signature's
// recovered sender still matches the sender recorded on the decrypted
// transaction. A mismatch means signed.Tx was tampered with after
// decryption (its sender field no longer agrees with what its signature
// would recover), and Reencrypt refuses to produce an envelope for it.
func Reencrypt(signed *Signed[TxDecrypted]) (*Signed[TxEncrypted], error) {
	tx, err := ReencryptUnsigned(&signed.Tx)
	if err != nil {
		return nil, err
	}

	hash, err := SigningHash(tx)
	if err != nil {
		return nil, err
	}

	sender, err := RecoverSender(hash, signed.Sig)
	if err != nil {
		return nil, err
	}
	if sender != signed.Tx.Sender {
		return nil, ErrInvalidSender
	}

	return &Signed[TxEncrypted]{Tx: *tx, Sig: signed.Sig, Hash: hash}, nil
}
