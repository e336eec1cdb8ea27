// Package settle runs the lazy settlement of one holder against the shared
// accumulator.
package settle

import (
	"github.com/bitfsorg/taxreward-go/ledger"
	"github.com/bitfsorg/taxreward-go/rewardmath"
)

// Pending returns what Settle would pay right now without touching entry.
func Pending(entry *ledger.Entry, g *ledger.GlobalState) (uint64, error) {
	return rewardmath.Owed(entry.BalanceSnapshot, &g.CumRewardPerToken, &entry.LastCum)
}

// Settle computes the amount owed to the holder since its last settlement
// and moves entry.LastCum up to the accumulator, even when nothing is owed.
// The caller pays the returned amount out of the reward vault. On error the
// entry is left unchanged.
func Settle(entry *ledger.Entry, g *ledger.GlobalState) (uint64, error) {
	owed, err := Pending(entry, g)
	if err != nil {
		return 0, err
	}
	entry.LastCum = g.CumRewardPerToken
	return owed, nil
}

// Snapshot records the holder's current token balance as the basis for the
// next settlement.
func Snapshot(entry *ledger.Entry, balance uint64) {
	entry.BalanceSnapshot = balance
}
