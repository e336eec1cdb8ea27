package distributor

import (
	"github.com/gagliardetto/solana-go"

	"github.com/bitfsorg/taxreward-go/bank"
	"github.com/bitfsorg/taxreward-go/ledger"
	"github.com/bitfsorg/taxreward-go/settle"
	"github.com/bitfsorg/taxreward-go/store"
)

// VaultBalances reports the vault addresses of a deployment and what they hold.
type VaultBalances struct {
	TokenVault    solana.PublicKey
	TokenBalance  uint64
	RewardVault   solana.PublicKey
	RewardBalance uint64
}

// HolderEntry pairs a holder with its ledger entry.
type HolderEntry struct {
	Holder  solana.PublicKey
	Entry   *ledger.Entry
	Pending uint64
}

// Config returns the policy record of mint.
func (d *Distributor) Config(mint solana.PublicKey) (*ledger.Config, error) {
	var cfg *ledger.Config
	err := d.view(func(tx store.Tx) error {
		var err error
		cfg, err = loadConfig(tx, mint)
		return err
	})
	return cfg, err
}

// Global returns the accumulator record of mint.
func (d *Distributor) Global(mint solana.PublicKey) (*ledger.GlobalState, error) {
	var g *ledger.GlobalState
	err := d.view(func(tx store.Tx) error {
		var err error
		g, err = loadGlobal(tx, mint)
		return err
	})
	return g, err
}

// Entry returns holder's ledger entry under mint.
func (d *Distributor) Entry(mint, holder solana.PublicKey) (*ledger.Entry, error) {
	var e *ledger.Entry
	err := d.view(func(tx store.Tx) error {
		var err error
		e, err = loadEntry(tx, mint, holder)
		return err
	})
	return e, err
}

// Pending returns what a claim by holder would pay right now.
func (d *Distributor) Pending(mint, holder solana.PublicKey) (uint64, error) {
	var owed uint64
	err := d.view(func(tx store.Tx) error {
		g, err := loadGlobal(tx, mint)
		if err != nil {
			return err
		}
		e, err := loadEntry(tx, mint, holder)
		if err != nil {
			return err
		}
		owed, err = settle.Pending(e, g)
		return err
	})
	return owed, err
}

// Entries lists every ledger entry of mint with its pending amount.
func (d *Distributor) Entries(mint solana.PublicKey) ([]HolderEntry, error) {
	var out []HolderEntry
	err := d.view(func(tx store.Tx) error {
		g, err := loadGlobal(tx, mint)
		if err != nil {
			return err
		}
		return tx.ForEachEntry(mint, func(holder solana.PublicKey, e *ledger.Entry) error {
			p, err := settle.Pending(e, g)
			if err != nil {
				return err
			}
			out = append(out, HolderEntry{Holder: holder, Entry: e, Pending: p})
			return nil
		})
	})
	return out, err
}

// Vaults returns the vault addresses and balances of mint's deployment.
func (d *Distributor) Vaults(mint solana.PublicKey) (*VaultBalances, error) {
	dep, err := d.Deployment(mint)
	if err != nil {
		return nil, err
	}
	v := &VaultBalances{TokenVault: dep.TokenVault, RewardVault: dep.RewardVault}
	err = d.view(func(tx store.Tx) error {
		var err error
		if v.TokenBalance, err = tx.Balance(bank.Token(mint), dep.TokenVault); err != nil {
			return err
		}
		v.RewardBalance, err = tx.Balance(bank.Native, dep.RewardVault)
		return err
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Balance returns owner's balance of asset.
func (d *Distributor) Balance(asset bank.Asset, owner solana.PublicKey) (uint64, error) {
	var bal uint64
	err := d.view(func(tx store.Tx) error {
		var err error
		bal, err = tx.Balance(asset, owner)
		return err
	})
	return bal, err
}
