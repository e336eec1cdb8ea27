// Package ledger holds the persisted aggregates of one tax-and-reward
// deployment: the owner-controlled policy, the shared distribution
// accumulator, and the per-holder settlement entries.
package ledger

import (
	"github.com/gagliardetto/solana-go"
	"github.com/holiman/uint256"
)

// Config is the policy record of a deployment.
type Config struct {
	TaxRateBps    uint16           // 0..=10000
	Owner         solana.PublicKey // policy authority
	ExchangeRoute solana.PublicKey // primary exchange program
	Paused        bool
}

// GlobalState is the distribution accumulator shared by every holder.
type GlobalState struct {
	TotalSupply       uint64
	CumRewardPerToken uint256.Int // scaled by 10^18, never decreases, fits 128 bits
}

// Entry is a holder's lazy-settlement record.
type Entry struct {
	LastCum         uint256.Int // accumulator value at the last settlement
	BalanceSnapshot uint64      // token balance at the last settlement
}

// PolicyUpdate carries the optional fields of a policy change.
// A nil field leaves the current value untouched.
type PolicyUpdate struct {
	TaxRateBps *uint16
	Paused     *bool
}

// Cum returns a copy of the accumulator.
func (g *GlobalState) Cum() *uint256.Int {
	return new(uint256.Int).Set(&g.CumRewardPerToken)
}

// Last returns a copy of the entry's settlement pointer.
func (e *Entry) Last() *uint256.Int {
	return new(uint256.Int).Set(&e.LastCum)
}
