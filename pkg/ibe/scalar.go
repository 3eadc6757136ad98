package ibe

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

func frToBigInt(s *fr.Element) *big.Int {
	var b big.Int
	s.BigInt(&b)
	return &b
}
