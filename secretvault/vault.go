// Package secretvault guards the one-time reveal secrets.
package secretvault

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/StellarBridge-io/swap-engine-go/agreement"
	"github.com/StellarBridge-io/swap-engine-go/htlc"
)

// Vault validates secret reveals and tracks consumed secrets.
// The used-secret set is global. A secret revealed for one swap can
// never be revealed again anywhere in the system.
type Vault struct {
	hasher  agreement.Hasher
	storage agreement.SecretStorage
}

func NewVault(hasher agreement.Hasher, storage agreement.SecretStorage) *Vault {
	return &Vault{
		hasher:  hasher,
		storage: storage,
	}
}

// Validate checks the secret against the swap's hash commitment.
func (v *Vault) Validate(secret common.Hash, secretHash common.Hash) bool {
	return htlc.ValidateSecret(v.hasher, secret, secretHash)
}

func (v *Vault) IsUsed(secret common.Hash) (bool, error) {
	return v.storage.IsSecretUsed(secret)
}

func (v *Vault) MarkUsed(secret common.Hash) error {
	return v.storage.MarkSecretUsed(secret)
}
