package dawntx

import (
	"encoding/binary"

	"github.com/Layr-Labs/dawn-ibe/pkg/ibe"
	"github.com/ethereum/go-ethereum/common"
)

// LabelSize is the fixed length of a transaction label.
const LabelSize = 96

// label lays out the IBE identity bound to a confidential transaction:
//
//	bytes  0..24  zero
//	bytes 24..32  chain_id, big-endian u64
//	bytes 32..44  zero
//	bytes 44..64  sender address (20 bytes)
//	bytes 64..88  zero
//	bytes 88..96  nonce, big-endian u64
//
// This fixed padding keeps the label length constant regardless of chain id
// or nonce magnitude, and keeps each field's byte range non-overlapping so
// future fields could be added without reflowing existing ones.
func label(chainID uint64, sender common.Address, nonce uint64) ibe.Label {
	var l [LabelSize]byte
	binary.BigEndian.PutUint64(l[24:32], chainID)
	copy(l[44:64], sender.Bytes())
	binary.BigEndian.PutUint64(l[88:96], nonce)
	return l[:]
}
