package distributor

import (
	"github.com/gagliardetto/solana-go"

	"github.com/bitfsorg/taxreward-go/ledger"
)

// DelegatedAuthority accepts the configured owner and the deployment's admin
// address, the signer a governance program acts through.
type DelegatedAuthority struct {
	Admin solana.PublicKey
}

// Authorized reports whether caller is the owner or the admin address.
func (a DelegatedAuthority) Authorized(cfg *ledger.Config, caller solana.PublicKey) bool {
	if (ledger.OwnerKey{}).Authorized(cfg, caller) {
		return true
	}
	return !a.Admin.IsZero() && a.Admin.Equals(caller)
}
