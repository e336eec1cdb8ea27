package distributor

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/bitfsorg/taxreward-go/bank"
	"github.com/bitfsorg/taxreward-go/store"
	"github.com/bitfsorg/taxreward-go/taxerr"
)

// Fund credits amount of asset to owner. It models deposits that arrive from
// outside the program, such as token mints or native airdrops.
func (d *Distributor) Fund(ctx context.Context, asset bank.Asset, owner solana.PublicKey, amount uint64) error {
	if !asset.Valid() {
		return fmt.Errorf("%w: %w: %s", taxerr.ErrInvalidInstruction, bank.ErrUnknownAsset, asset)
	}
	_, err := d.invoke(ctx, OpFund, func(inv *invocation, tx store.Tx) error {
		if err := bank.Credit(tx, asset, owner, amount); err != nil {
			return err
		}
		inv.log.Debug("distributor: account funded", "asset", asset.String(), "owner", owner, "amount", amount)
		return nil
	})
	return err
}
