package common

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	logger "github.com/sirupsen/logrus"
)

// EncodePacked serializes a tuple of values into one byte string for
// hashing. Integers are fixed-width big-endian so the packing is
// unambiguous for the value kinds the engine hashes.
func EncodePacked(values ...interface{}) []byte {
	var res [][]byte
	for _, value := range values {
		switch v := value.(type) {
		case string:
			res = append(res, encodeString(v))
		case []byte:
			res = append(res, v)
		case [32]byte:
			res = append(res, v[:])
		case uint64:
			res = append(res, encodeUint64(v))
		case uint32:
			res = append(res, encodeUint64(uint64(v)))
		case *big.Int:
			res = append(res, math.U256Bytes(v))
		case common.Hash:
			res = append(res, v[:])
		case []common.Hash:
			res = append(res, encodeHashArray(v))
		case common.Address:
			res = append(res, v[:])
		}
	}
	return bytes.Join(res, nil)
}

func encodeUint64(v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b[:]
}

func encodeHashArray(arr []common.Hash) []byte {
	var res [][]byte
	for _, v := range arr {
		res = append(res, v[:])
	}

	return bytes.Join(res, nil)
}

func encodeString(v string) []byte {
	if strings.HasPrefix(v, "0x") {
		return encodeHexString(v)
	}

	return []byte(v)
}

func encodeHexString(v string) []byte {
	decoded, err := hex.DecodeString(strings.TrimPrefix(v, "0x"))
	if err != nil {
		logger.Fatal(err)
	}
	return decoded
}
