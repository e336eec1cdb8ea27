package distributor

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/bitfsorg/taxreward-go/ledger"
	"github.com/bitfsorg/taxreward-go/store"
)

// SetPolicy changes the tax rate and/or pause flag of mint's deployment.
func (d *Distributor) SetPolicy(ctx context.Context, mint, caller solana.PublicKey, upd ledger.PolicyUpdate) error {
	dep, err := d.Deployment(mint)
	if err != nil {
		return err
	}
	_, err = d.invoke(ctx, OpSetPolicy, func(inv *invocation, tx store.Tx) error {
		cfg, err := loadConfig(tx, mint)
		if err != nil {
			return err
		}
		if err := ledger.SetPolicy(cfg, d.authorizer(dep), caller, upd); err != nil {
			return err
		}
		if err := tx.PutConfig(mint, cfg); err != nil {
			return err
		}
		inv.log.Debug("distributor: policy updated",
			"mint", mint, "caller", caller, "tax_rate_bps", cfg.TaxRateBps, "paused", cfg.Paused)
		return nil
	})
	return err
}

// RefreshSupply replaces the total supply that future proceeds are spread
// over. Past accruals are unaffected.
func (d *Distributor) RefreshSupply(ctx context.Context, mint, caller solana.PublicKey, newSupply uint64) error {
	dep, err := d.Deployment(mint)
	if err != nil {
		return err
	}
	_, err = d.invoke(ctx, OpRefreshSupply, func(inv *invocation, tx store.Tx) error {
		cfg, err := loadConfig(tx, mint)
		if err != nil {
			return err
		}
		g, err := loadGlobal(tx, mint)
		if err != nil {
			return err
		}
		if err := ledger.RefreshSupply(cfg, g, d.authorizer(dep), caller, newSupply); err != nil {
			return err
		}
		if err := tx.PutGlobal(mint, g); err != nil {
			return err
		}
		inv.log.Debug("distributor: supply refreshed", "mint", mint, "total_supply", newSupply)
		return nil
	})
	return err
}
