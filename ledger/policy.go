package ledger

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/holiman/uint256"

	"github.com/bitfsorg/taxreward-go/rewardmath"
	"github.com/bitfsorg/taxreward-go/taxerr"
)

// Authorizer decides whether caller may act as the owner of cfg.
type Authorizer interface {
	Authorized(cfg *Config, caller solana.PublicKey) bool
}

// OwnerKey authorizes exactly the identity stored in Config.Owner.
type OwnerKey struct{}

// Authorized reports whether caller is the configured owner.
func (OwnerKey) Authorized(cfg *Config, caller solana.PublicKey) bool {
	return !cfg.Owner.IsZero() && cfg.Owner.Equals(caller)
}

// Initialize builds the policy and accumulator records of a new deployment.
func Initialize(owner solana.PublicKey, taxRateBps uint16, exchangeRoute solana.PublicKey, initialSupply uint64) (*Config, *GlobalState, error) {
	if owner.IsZero() {
		return nil, nil, fmt.Errorf("%w: %w", taxerr.ErrInvalidInstruction, ErrZeroOwner)
	}
	if taxRateBps > rewardmath.MaxBps {
		return nil, nil, fmt.Errorf("%w: %d bps", taxerr.ErrInvalidTaxRate, taxRateBps)
	}
	if initialSupply == 0 {
		return nil, nil, fmt.Errorf("%w: initial supply is zero", taxerr.ErrInvalidMintSupply)
	}
	cfg := &Config{
		TaxRateBps:    taxRateBps,
		Owner:         owner,
		ExchangeRoute: exchangeRoute,
	}
	return cfg, &GlobalState{TotalSupply: initialSupply}, nil
}

// SetPolicy applies upd to cfg when caller is authorized. Nothing is written
// unless every check passes.
func SetPolicy(cfg *Config, auth Authorizer, caller solana.PublicKey, upd PolicyUpdate) error {
	if !auth.Authorized(cfg, caller) {
		return fmt.Errorf("%w: %s may not change policy", taxerr.ErrUnauthorized, caller)
	}
	if upd.TaxRateBps != nil && *upd.TaxRateBps > rewardmath.MaxBps {
		return fmt.Errorf("%w: %d bps", taxerr.ErrInvalidTaxRate, *upd.TaxRateBps)
	}
	if upd.TaxRateBps != nil {
		cfg.TaxRateBps = *upd.TaxRateBps
	}
	if upd.Paused != nil {
		cfg.Paused = *upd.Paused
	}
	return nil
}

// RefreshSupply replaces the supply used to spread future proceeds.
func RefreshSupply(cfg *Config, g *GlobalState, auth Authorizer, caller solana.PublicKey, newSupply uint64) error {
	if !auth.Authorized(cfg, caller) {
		return fmt.Errorf("%w: %s may not refresh supply", taxerr.ErrUnauthorized, caller)
	}
	if newSupply == 0 {
		return fmt.Errorf("%w: new supply is zero", taxerr.ErrInvalidMintSupply)
	}
	g.TotalSupply = newSupply
	return nil
}

// Accrue adds delta to the cumulative reward per token.
func (g *GlobalState) Accrue(delta *uint256.Int) error {
	sum, err := rewardmath.AddCum(&g.CumRewardPerToken, delta)
	if err != nil {
		return err
	}
	g.CumRewardPerToken = *sum
	return nil
}
