package common

import (
	"crypto/rand"
	"math/big"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// MaxI128/MinI128 bound the signed 128-bit amount range the engine
// operates in. Values outside it are rejected, never wrapped.
var (
	MaxI128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	MinI128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// FitsI128 reports whether v lies within the signed 128-bit range.
func FitsI128(v *big.Int) bool {
	return v.Cmp(MinI128) >= 0 && v.Cmp(MaxI128) <= 0
}

func Trim0xPrefix(str string) string {
	return strings.TrimPrefix(str, "0x")
}

func Prepend0xPrefix(str string) string {
	if strings.HasPrefix(str, "0x") {
		return str
	}
	return "0x" + str
}

func RandBytes32() [32]byte {
	var b [32]byte
	n, err := rand.Read(b[:])

	if err != nil {
		return [32]byte{}
	}
	if n != 32 {
		return [32]byte{}
	}

	return b
}

func RandHash() ethcommon.Hash {
	return ethcommon.Hash(RandBytes32())
}

func RandAddress() ethcommon.Address {
	b := RandBytes32()
	return ethcommon.BytesToAddress(b[:20])
}
