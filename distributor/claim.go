package distributor

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/bitfsorg/taxreward-go/bank"
	"github.com/bitfsorg/taxreward-go/metrics"
	"github.com/bitfsorg/taxreward-go/settle"
	"github.com/bitfsorg/taxreward-go/store"
	"github.com/bitfsorg/taxreward-go/taxerr"
)

// Claim settles the caller's pending rewards, pays them from the reward
// vault and refreshes the caller's balance snapshot. It returns the amount
// paid.
func (d *Distributor) Claim(ctx context.Context, mint, caller solana.PublicKey) (uint64, error) {
	dep, err := d.Deployment(mint)
	if err != nil {
		return 0, err
	}

	var paid uint64
	_, err = d.invoke(ctx, OpClaim, func(inv *invocation, tx store.Tx) error {
		if _, err := loadConfig(tx, mint); err != nil {
			return err
		}
		g, err := loadGlobal(tx, mint)
		if err != nil {
			return err
		}
		entry, err := loadEntry(tx, mint, caller)
		if err != nil {
			return err
		}

		owed, err := settle.Settle(entry, g)
		if err != nil {
			return err
		}
		vault, err := tx.Balance(bank.Native, dep.RewardVault)
		if err != nil {
			return err
		}
		if owed > vault {
			return fmt.Errorf("%w: owe %d, vault holds %d", taxerr.ErrInsufficientRewardVault, owed, vault)
		}
		if err := bank.Transfer(tx, bank.Native, dep.RewardVault, caller, owed); err != nil {
			return err
		}

		bal, err := tx.Balance(bank.Token(mint), caller)
		if err != nil {
			return err
		}
		settle.Snapshot(entry, bal)
		if err := tx.PutEntry(mint, caller, entry); err != nil {
			return err
		}

		paid = owed
		inv.log.Debug("distributor: rewards claimed", "mint", mint, "caller", caller, "paid", owed, "snapshot", bal)
		return nil
	})
	if err != nil {
		return 0, err
	}
	metrics.RewardsPaidTotal.Add(float64(paid))
	return paid, nil
}
