package distributor

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/holiman/uint256"

	"github.com/bitfsorg/taxreward-go/bank"
	"github.com/bitfsorg/taxreward-go/ledger"
	"github.com/bitfsorg/taxreward-go/metrics"
	"github.com/bitfsorg/taxreward-go/pda"
	"github.com/bitfsorg/taxreward-go/rewardmath"
	"github.com/bitfsorg/taxreward-go/settle"
	"github.com/bitfsorg/taxreward-go/store"
	"github.com/bitfsorg/taxreward-go/swap"
	"github.com/bitfsorg/taxreward-go/taxerr"
)

// TransferOpts holds options for the TaxedTransferAndDistribute operation.
type TransferOpts struct {
	Mint         solana.PublicKey
	Caller       solana.PublicKey // acting holder
	AmountIn     uint64           // tokens routed through the exchange
	MinAmountOut uint64           // minimum settlement currency the swap must realize
}

// TransferResult describes a committed taxed transfer.
type TransferResult struct {
	InvocationID string
	Route        string       // exchange route that served the swap
	Reported     uint64       // output the route claimed
	Proceeds     uint64       // output measured on the reward vault
	Paid         uint64       // prior rewards settled to the caller
	Tax          uint64       // tokens moved into the token vault
	DeltaCum     *uint256.Int // accumulator growth from Proceeds
	Cum          *uint256.Int // accumulator after the transfer
	Snapshot     uint64       // caller balance recorded for the next settlement
}

// TaxedTransferAndDistribute settles the caller's prior rewards, swaps
// AmountIn tokens from the token vault into the reward vault, spreads the
// measured proceeds over the total supply, collects the tax from the caller
// and records the caller's new balance.
//
// The proceeds are the reward vault's balance change across the swap, never
// the value the route reports. The accumulator is touched only after the
// slippage and vault checks pass.
//
// When the invocation aborts, the returned result carries only the
// invocation id logged with the abort, alongside the error.
func (d *Distributor) TaxedTransferAndDistribute(ctx context.Context, opts *TransferOpts) (*TransferResult, error) {
	if opts == nil {
		return nil, fmt.Errorf("%w: nil options", taxerr.ErrInvalidInstruction)
	}
	dep, err := d.Deployment(opts.Mint)
	if err != nil {
		return nil, err
	}

	res := &TransferResult{}
	id, err := d.invoke(ctx, OpTransfer, func(inv *invocation, tx store.Tx) error {
		*res = TransferResult{}
		return d.transfer(ctx, inv, tx, dep, opts, res)
	})
	if err != nil {
		return &TransferResult{InvocationID: id}, err
	}
	res.InvocationID = id
	metrics.SwapProceedsTotal.Add(float64(res.Proceeds))
	metrics.RewardsPaidTotal.Add(float64(res.Paid))
	return res, nil
}

func (d *Distributor) transfer(ctx context.Context, inv *invocation, tx store.Tx, dep *pda.Deployment, opts *TransferOpts, res *TransferResult) error {
	mint, caller := opts.Mint, opts.Caller
	token := bank.Token(mint)

	// Validate.
	cfg, err := loadConfig(tx, mint)
	if err != nil {
		return err
	}
	if cfg.Paused {
		return fmt.Errorf("%w: mint %s", taxerr.ErrProgramPaused, mint)
	}
	if opts.AmountIn == 0 {
		return fmt.Errorf("%w: amount_in is zero", taxerr.ErrInvalidInstruction)
	}
	if cfg.TaxRateBps > rewardmath.MaxBps {
		return fmt.Errorf("%w: %d bps", taxerr.ErrInvalidTaxRate, cfg.TaxRateBps)
	}
	holderBal, err := tx.Balance(token, caller)
	if err != nil {
		return err
	}
	if holderBal < opts.AmountIn {
		return fmt.Errorf("%w: %s holds %d tokens, amount_in is %d", taxerr.ErrInsufficientFunds, caller, holderBal, opts.AmountIn)
	}
	g, err := loadGlobal(tx, mint)
	if err != nil {
		return err
	}
	if g.TotalSupply == 0 {
		return fmt.Errorf("%w: total supply is zero", taxerr.ErrInvalidMintSupply)
	}

	// Settle prior rewards against the pre-transfer snapshot.
	entry, err := tx.Entry(mint, caller)
	if errors.Is(err, store.ErrNotFound) {
		entry = &ledger.Entry{}
	} else if err != nil {
		return err
	}
	owed, err := settle.Settle(entry, g)
	if err != nil {
		return err
	}

	// Swap, measuring proceeds on the reward vault.
	before, err := tx.Balance(bank.Native, dep.RewardVault)
	if err != nil {
		return err
	}
	outcome, err := d.convert(ctx, swap.Request{
		Book:         tx,
		Token:        token,
		Source:       dep.TokenVault,
		Destination:  dep.RewardVault,
		AmountIn:     opts.AmountIn,
		MinAmountOut: opts.MinAmountOut,
	})
	if err != nil {
		return err
	}
	after, err := tx.Balance(bank.Native, dep.RewardVault)
	if err != nil {
		return err
	}
	if after < before {
		return fmt.Errorf("%w: reward vault fell from %d to %d during swap", taxerr.ErrOverflow, before, after)
	}
	proceeds := after - before
	if outcome.Reported != proceeds {
		inv.log.Warn("distributor: route misreported output",
			"route", outcome.Route, "reported", outcome.Reported, "measured", proceeds)
	}

	if proceeds < opts.MinAmountOut {
		return fmt.Errorf("%w: received %d, minimum %d", taxerr.ErrSlippageExceeded, proceeds, opts.MinAmountOut)
	}
	if owed > after {
		return fmt.Errorf("%w: owe %d, vault holds %d", taxerr.ErrInsufficientRewardVault, owed, after)
	}
	if err := bank.Transfer(tx, bank.Native, dep.RewardVault, caller, owed); err != nil {
		return err
	}

	// Account.
	delta, err := rewardmath.DeltaCum(uint256.NewInt(proceeds), g.TotalSupply)
	if err != nil {
		return err
	}
	if err := g.Accrue(delta); err != nil {
		return err
	}

	// Collect tax.
	tax, err := rewardmath.Tax(opts.AmountIn, cfg.TaxRateBps)
	if err != nil {
		return err
	}
	if err := bank.Transfer(tx, token, caller, dep.TokenVault, tax); err != nil {
		return err
	}

	// Snapshot.
	post, err := tx.Balance(token, caller)
	if err != nil {
		return err
	}
	settle.Snapshot(entry, post)

	if err := tx.PutGlobal(mint, g); err != nil {
		return err
	}
	if err := tx.PutEntry(mint, caller, entry); err != nil {
		return err
	}

	*res = TransferResult{
		Route:    outcome.Route,
		Reported: outcome.Reported,
		Proceeds: proceeds,
		Paid:     owed,
		Tax:      tax,
		DeltaCum: delta,
		Cum:      g.Cum(),
		Snapshot: post,
	}
	inv.log.Debug("distributor: transfer applied",
		"mint", mint, "caller", caller, "route", outcome.Route, "amount_in", opts.AmountIn,
		"proceeds", proceeds, "paid", owed, "tax", tax, "cum", res.Cum.Dec())
	return nil
}

// convert runs the exchange adapter, reporting the serving route when the
// adapter is a router.
func (d *Distributor) convert(ctx context.Context, req swap.Request) (swap.Outcome, error) {
	if r, ok := d.router.(*swap.Router); ok {
		return r.ConvertVia(ctx, req)
	}
	out, err := d.router.Convert(ctx, req)
	if err != nil {
		return swap.Outcome{}, fmt.Errorf("%w: %s: %w", taxerr.ErrSwapFailed, d.router.Name(), err)
	}
	return swap.Outcome{Route: d.router.Name(), Reported: out}, nil
}
