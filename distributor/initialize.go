package distributor

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/bitfsorg/taxreward-go/ledger"
	"github.com/bitfsorg/taxreward-go/pda"
	"github.com/bitfsorg/taxreward-go/store"
	"github.com/bitfsorg/taxreward-go/taxerr"
)

// InitializeOpts holds options for the Initialize operation.
type InitializeOpts struct {
	Mint          solana.PublicKey
	Owner         solana.PublicKey
	TaxRateBps    uint16
	ExchangeRoute solana.PublicKey // primary exchange program, recorded in the policy
	InitialSupply uint64
}

// Initialize creates the policy and accumulator records of a new deployment
// and returns its addresses.
func (d *Distributor) Initialize(ctx context.Context, opts *InitializeOpts) (*pda.Deployment, error) {
	if opts == nil {
		return nil, fmt.Errorf("%w: nil options", taxerr.ErrInvalidInstruction)
	}
	dep, err := d.Deployment(opts.Mint)
	if err != nil {
		return nil, err
	}

	_, err = d.invoke(ctx, OpInitialize, func(inv *invocation, tx store.Tx) error {
		if _, err := tx.Config(opts.Mint); err == nil {
			return fmt.Errorf("%w: mint %s is already initialized", taxerr.ErrInvalidInstruction, opts.Mint)
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		cfg, g, err := ledger.Initialize(opts.Owner, opts.TaxRateBps, opts.ExchangeRoute, opts.InitialSupply)
		if err != nil {
			return err
		}
		if err := tx.PutConfig(opts.Mint, cfg); err != nil {
			return err
		}
		if err := tx.PutGlobal(opts.Mint, g); err != nil {
			return err
		}
		inv.log.Debug("distributor: deployment created",
			"mint", opts.Mint, "owner", opts.Owner, "tax_rate_bps", opts.TaxRateBps,
			"total_supply", opts.InitialSupply, "config", dep.Config, "reward_vault", dep.RewardVault)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dep, nil
}
