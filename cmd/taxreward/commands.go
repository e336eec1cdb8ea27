package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/gagliardetto/solana-go"
	flag "github.com/spf13/pflag"

	"github.com/bitfsorg/taxreward-go/bank"
	"github.com/bitfsorg/taxreward-go/distributor"
	"github.com/bitfsorg/taxreward-go/ledger"
)

func parseKey(name, value string) (solana.PublicKey, error) {
	if value == "" {
		return solana.PublicKey{}, fmt.Errorf("--%s is required", name)
	}
	k, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("--%s: %w", name, err)
	}
	return k, nil
}

// parseAsset resolves --asset; tokens are those of the configured mint.
func (e *env) parseAsset(s string) (bank.Asset, error) {
	switch s {
	case "token":
		mint, err := e.mint()
		if err != nil {
			return bank.Asset{}, err
		}
		return bank.Token(mint), nil
	case "native":
		return bank.Native, nil
	default:
		return bank.Asset{}, fmt.Errorf("--asset must be \"token\" or \"native\", got %q", s)
	}
}

func (e *env) mint() (solana.PublicKey, error) {
	if e.cfg.Mint == "" {
		return solana.PublicKey{}, fmt.Errorf("mint is required (set mint in the config file or pass --mint)")
	}
	return parseKey("mint", e.cfg.Mint)
}

// account resolves an account flag, accepting the vault aliases.
func (e *env) account(name, value string) (solana.PublicKey, error) {
	switch value {
	case "token-vault", "reward-vault":
		mint, err := e.mint()
		if err != nil {
			return solana.PublicKey{}, err
		}
		dep, err := e.dist.Deployment(mint)
		if err != nil {
			return solana.PublicKey{}, err
		}
		if value == "token-vault" {
			return dep.TokenVault, nil
		}
		return dep.RewardVault, nil
	}
	return parseKey(name, value)
}

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}

func (e *env) initCmd(ctx context.Context, args []string) error {
	fs := newFlagSet("init")
	ownerFlag := fs.String("owner", "", "policy owner")
	taxFlag := fs.Uint16("tax-bps", 500, "tax rate in basis points")
	routeFlag := fs.String("exchange-route", "", "primary exchange program")
	supplyFlag := fs.Uint64("supply", 0, "initial total supply")
	if err := fs.Parse(args); err != nil {
		return err
	}

	mint, err := e.mint()
	if err != nil {
		return err
	}
	owner, err := parseKey("owner", *ownerFlag)
	if err != nil {
		return err
	}
	var route solana.PublicKey
	if *routeFlag != "" {
		if route, err = parseKey("exchange-route", *routeFlag); err != nil {
			return err
		}
	}

	dep, err := e.dist.Initialize(ctx, &distributor.InitializeOpts{
		Mint:          mint,
		Owner:         owner,
		TaxRateBps:    *taxFlag,
		ExchangeRoute: route,
		InitialSupply: *supplyFlag,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "initialized mint %s\n", mint)
	fmt.Fprintf(e.out, "  config          %s\n", dep.Config)
	fmt.Fprintf(e.out, "  global          %s\n", dep.Global)
	fmt.Fprintf(e.out, "  token vault     %s\n", dep.TokenVault)
	fmt.Fprintf(e.out, "  reward vault    %s\n", dep.RewardVault)
	fmt.Fprintf(e.out, "  vault authority %s\n", dep.VaultAuthority)
	fmt.Fprintf(e.out, "  admin           %s\n", dep.Admin)
	return nil
}

func (e *env) transferCmd(ctx context.Context, args []string) error {
	fs := newFlagSet("transfer")
	callerFlag := fs.String("caller", "", "acting holder")
	amountFlag := fs.Uint64("amount", 0, "tokens to route through the exchange")
	minOutFlag := fs.Uint64("min-out", 0, "minimum proceeds in native units")
	if err := fs.Parse(args); err != nil {
		return err
	}

	mint, err := e.mint()
	if err != nil {
		return err
	}
	caller, err := parseKey("caller", *callerFlag)
	if err != nil {
		return err
	}
	res, err := e.dist.TaxedTransferAndDistribute(ctx, &distributor.TransferOpts{
		Mint:         mint,
		Caller:       caller,
		AmountIn:     *amountFlag,
		MinAmountOut: *minOutFlag,
	})
	if err != nil {
		if res != nil {
			return fmt.Errorf("invocation %s: %w", res.InvocationID, err)
		}
		return err
	}
	fmt.Fprintf(e.out, "route=%s proceeds=%d paid=%d tax=%d snapshot=%d cum=%s invocation=%s\n",
		res.Route, res.Proceeds, res.Paid, res.Tax, res.Snapshot, res.Cum.Dec(), res.InvocationID)
	return nil
}

func (e *env) claimCmd(ctx context.Context, args []string) error {
	fs := newFlagSet("claim")
	callerFlag := fs.String("caller", "", "claiming holder")
	if err := fs.Parse(args); err != nil {
		return err
	}

	mint, err := e.mint()
	if err != nil {
		return err
	}
	caller, err := parseKey("caller", *callerFlag)
	if err != nil {
		return err
	}
	paid, err := e.dist.Claim(ctx, mint, caller)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "paid=%d\n", paid)
	return nil
}

func (e *env) setPolicyCmd(ctx context.Context, args []string) error {
	fs := newFlagSet("set-policy")
	callerFlag := fs.String("caller", "", "owner or admin")
	taxFlag := fs.Uint16("tax-bps", 0, "new tax rate in basis points")
	pausedFlag := fs.Bool("paused", false, "pause or resume transfers")
	if err := fs.Parse(args); err != nil {
		return err
	}

	mint, err := e.mint()
	if err != nil {
		return err
	}
	caller, err := parseKey("caller", *callerFlag)
	if err != nil {
		return err
	}
	var upd ledger.PolicyUpdate
	if fs.Changed("tax-bps") {
		upd.TaxRateBps = taxFlag
	}
	if fs.Changed("paused") {
		upd.Paused = pausedFlag
	}
	if upd.TaxRateBps == nil && upd.Paused == nil {
		return fmt.Errorf("set-policy needs --tax-bps and/or --paused")
	}
	if err := e.dist.SetPolicy(ctx, mint, caller, upd); err != nil {
		return err
	}
	cfg, err := e.dist.Config(mint)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "tax_rate_bps=%d paused=%t\n", cfg.TaxRateBps, cfg.Paused)
	return nil
}

func (e *env) refreshSupplyCmd(ctx context.Context, args []string) error {
	fs := newFlagSet("refresh-supply")
	callerFlag := fs.String("caller", "", "owner or admin")
	supplyFlag := fs.Uint64("supply", 0, "new total supply")
	if err := fs.Parse(args); err != nil {
		return err
	}

	mint, err := e.mint()
	if err != nil {
		return err
	}
	caller, err := parseKey("caller", *callerFlag)
	if err != nil {
		return err
	}
	if err := e.dist.RefreshSupply(ctx, mint, caller, *supplyFlag); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "total_supply=%d\n", *supplyFlag)
	return nil
}

func (e *env) closeCmd(ctx context.Context, args []string) error {
	fs := newFlagSet("close")
	holderFlag := fs.String("holder", "", "holder whose entry is closed")
	closerFlag := fs.String("closer", "", "signer closing the entry (defaults to the holder)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	mint, err := e.mint()
	if err != nil {
		return err
	}
	holder, err := parseKey("holder", *holderFlag)
	if err != nil {
		return err
	}
	closer := holder
	if *closerFlag != "" {
		if closer, err = parseKey("closer", *closerFlag); err != nil {
			return err
		}
	}
	if err := e.dist.CloseLedgerEntry(ctx, mint, holder, closer); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "closed entry of %s\n", holder)
	return nil
}

func (e *env) fundCmd(ctx context.Context, args []string) error {
	fs := newFlagSet("fund")
	assetFlag := fs.String("asset", "token", "asset to credit: token or native")
	ownerFlag := fs.String("owner", "", "account to credit, or token-vault / reward-vault")
	amountFlag := fs.Uint64("amount", 0, "amount to credit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	asset, err := e.parseAsset(*assetFlag)
	if err != nil {
		return err
	}
	owner, err := e.account("owner", *ownerFlag)
	if err != nil {
		return err
	}
	if err := e.dist.Fund(ctx, asset, owner, *amountFlag); err != nil {
		return err
	}
	bal, err := e.dist.Balance(asset, owner)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "%s %s balance=%d\n", owner, asset, bal)
	return nil
}

func (e *env) showCmd(args []string) error {
	fs := newFlagSet("show")
	holderFlag := fs.String("holder", "", "only show this holder")
	if err := fs.Parse(args); err != nil {
		return err
	}

	mint, err := e.mint()
	if err != nil {
		return err
	}
	cfg, err := e.dist.Config(mint)
	if err != nil {
		return err
	}
	g, err := e.dist.Global(mint)
	if err != nil {
		return err
	}
	v, err := e.dist.Vaults(mint)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(e.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "mint\t%s\n", mint)
	fmt.Fprintf(tw, "owner\t%s\n", cfg.Owner)
	fmt.Fprintf(tw, "exchange route\t%s\n", cfg.ExchangeRoute)
	fmt.Fprintf(tw, "tax rate\t%d bps\n", cfg.TaxRateBps)
	fmt.Fprintf(tw, "paused\t%t\n", cfg.Paused)
	fmt.Fprintf(tw, "total supply\t%d\n", g.TotalSupply)
	fmt.Fprintf(tw, "cum reward per token\t%s\n", g.Cum().Dec())
	fmt.Fprintf(tw, "token vault\t%s\t%d\n", v.TokenVault, v.TokenBalance)
	fmt.Fprintf(tw, "reward vault\t%s\t%d\n", v.RewardVault, v.RewardBalance)
	if err := tw.Flush(); err != nil {
		return err
	}

	entries, err := e.dist.Entries(mint)
	if err != nil {
		return err
	}
	if *holderFlag != "" {
		holder, err := parseKey("holder", *holderFlag)
		if err != nil {
			return err
		}
		entries = filterHolder(entries, holder)
	}
	if len(entries) == 0 {
		return nil
	}

	fmt.Fprintln(e.out)
	tw = tabwriter.NewWriter(e.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "HOLDER\tSNAPSHOT\tLAST CUM\tPENDING")
	for _, he := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\n", he.Holder, he.Entry.BalanceSnapshot, he.Entry.Last().Dec(), he.Pending)
	}
	return tw.Flush()
}

func filterHolder(entries []distributor.HolderEntry, holder solana.PublicKey) []distributor.HolderEntry {
	for _, he := range entries {
		if he.Holder.Equals(holder) {
			return []distributor.HolderEntry{he}
		}
	}
	return nil
}
