package distributor

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/bitfsorg/taxreward-go/settle"
	"github.com/bitfsorg/taxreward-go/store"
	"github.com/bitfsorg/taxreward-go/taxerr"
)

// CloseLedgerEntry deletes holder's ledger entry. The closer must be the
// holder or pass the deployment's authorizer, and nothing may be pending:
// unclaimed rewards are never forfeited, so the holder claims first.
func (d *Distributor) CloseLedgerEntry(ctx context.Context, mint, holder, closer solana.PublicKey) error {
	dep, err := d.Deployment(mint)
	if err != nil {
		return err
	}
	_, err = d.invoke(ctx, OpClose, func(inv *invocation, tx store.Tx) error {
		cfg, err := loadConfig(tx, mint)
		if err != nil {
			return err
		}
		if !closer.Equals(holder) && !d.authorizer(dep).Authorized(cfg, closer) {
			return fmt.Errorf("%w: %s may not close the entry of %s", taxerr.ErrUnauthorized, closer, holder)
		}
		g, err := loadGlobal(tx, mint)
		if err != nil {
			return err
		}
		entry, err := loadEntry(tx, mint, holder)
		if err != nil {
			return err
		}
		pending, err := settle.Pending(entry, g)
		if err != nil {
			return err
		}
		if pending > 0 {
			return fmt.Errorf("%w: %d pending rewards must be claimed first", taxerr.ErrInvalidInstruction, pending)
		}
		if err := tx.DeleteEntry(mint, holder); err != nil {
			return err
		}
		inv.log.Debug("distributor: ledger entry closed", "mint", mint, "holder", holder, "closer", closer)
		return nil
	})
	return err
}
