// Package store persists deployment records and balances. Every mutation
// happens inside Update: either the whole callback commits or nothing does.
package store

import (
	"github.com/gagliardetto/solana-go"

	"github.com/bitfsorg/taxreward-go/bank"
	"github.com/bitfsorg/taxreward-go/ledger"
)

// Tx is the view of the store inside one transaction. Reads observe the
// transaction's own earlier writes. Tx also serves as the balance book.
type Tx interface {
	bank.Book

	// Config returns the policy record of mint or ErrNotFound.
	Config(mint solana.PublicKey) (*ledger.Config, error)

	// PutConfig writes the policy record of mint.
	PutConfig(mint solana.PublicKey, cfg *ledger.Config) error

	// Global returns the accumulator record of mint or ErrNotFound.
	Global(mint solana.PublicKey) (*ledger.GlobalState, error)

	// PutGlobal writes the accumulator record of mint.
	PutGlobal(mint solana.PublicKey, g *ledger.GlobalState) error

	// Entry returns the ledger entry of holder under mint or ErrNotFound.
	Entry(mint, holder solana.PublicKey) (*ledger.Entry, error)

	// PutEntry writes the ledger entry of holder under mint.
	PutEntry(mint, holder solana.PublicKey, e *ledger.Entry) error

	// DeleteEntry removes the ledger entry of holder under mint.
	DeleteEntry(mint, holder solana.PublicKey) error

	// ForEachEntry calls fn for every entry of mint in holder key order.
	ForEachEntry(mint solana.PublicKey, fn func(holder solana.PublicKey, e *ledger.Entry) error) error
}

// Store runs transactions.
type Store interface {
	// Update runs fn in a read-write transaction. If fn returns an error
	// every write it made is discarded.
	Update(fn func(Tx) error) error

	// View runs fn in a read-only transaction.
	View(fn func(Tx) error) error

	// Close releases the store.
	Close() error
}

const entryKeySize = 64

func entryKey(mint, holder solana.PublicKey) []byte {
	k := make([]byte, entryKeySize)
	copy(k[:32], mint[:])
	copy(k[32:], holder[:])
	return k
}

const balanceKeySize = 65

// balanceKey is kind || mint || owner. Native balances carry a zero mint.
func balanceKey(asset bank.Asset, owner solana.PublicKey) []byte {
	k := make([]byte, balanceKeySize)
	k[0] = byte(asset.Kind)
	copy(k[1:33], asset.Mint[:])
	copy(k[33:], owner[:])
	return k
}
