package enginedb

import (
	"bytes"
	"encoding/gob"
	"errors"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// amounts are stored as decimal strings since i128 exceeds sqlite's
// integer width
func bigToStr(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func strToBig(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.New("malformed amount string: " + s)
	}
	return v, nil
}

func hashToHex(h ethcommon.Hash) string {
	return h.String()[2:]
}

func addrToHex(a ethcommon.Address) string {
	return a.String()[2:]
}

func EncodeProof(proof []ethcommon.Hash) ([]byte, error) {
	if proof == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(proof); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func DecodeProof(data []byte) ([]ethcommon.Hash, error) {
	if data == nil {
		return nil, nil
	}

	if len(data) == 0 {
		return nil, errors.New("expect non-empty bytes")
	}

	decoder := gob.NewDecoder(bytes.NewReader(data))
	var proof []ethcommon.Hash
	if err := decoder.Decode(&proof); err != nil {
		return nil, err
	}

	return proof, nil
}
