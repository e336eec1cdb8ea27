// Package bank models accounts as an opaque identity holding balances of
// taxed tokens, one per mint, and of the native settlement currency.
package bank

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/bitfsorg/taxreward-go/taxerr"
)

// Kind is the class of an asset.
type Kind uint8

const (
	// KindToken is a taxed token, in its smallest unit.
	KindToken Kind = iota
	// KindNative is the settlement currency (lamports).
	KindNative
)

// Asset identifies what a balance is held in. Token balances are scoped
// to their mint; the native currency has no mint.
type Asset struct {
	Kind Kind
	Mint solana.PublicKey
}

// Native is the settlement currency.
var Native = Asset{Kind: KindNative}

// Token returns the taxed token of mint.
func Token(mint solana.PublicKey) Asset {
	return Asset{Kind: KindToken, Mint: mint}
}

// String returns "native" or "token(<mint>)".
func (a Asset) String() string {
	switch a.Kind {
	case KindToken:
		return fmt.Sprintf("token(%s)", a.Mint)
	case KindNative:
		return "native"
	default:
		return fmt.Sprintf("asset(%d)", uint8(a.Kind))
	}
}

// Valid reports whether a is a native asset or a token with a mint.
func (a Asset) Valid() bool {
	switch a.Kind {
	case KindToken:
		return !a.Mint.IsZero()
	case KindNative:
		return a.Mint.IsZero()
	default:
		return false
	}
}

// Book reads and writes balances. Missing accounts have a zero balance.
type Book interface {
	// Balance returns the balance of owner in asset.
	Balance(asset Asset, owner solana.PublicKey) (uint64, error)

	// SetBalance overwrites the balance of owner in asset.
	SetBalance(asset Asset, owner solana.PublicKey, amount uint64) error
}

// Credit adds amount to owner's balance.
func Credit(b Book, asset Asset, owner solana.PublicKey, amount uint64) error {
	bal, err := b.Balance(asset, owner)
	if err != nil {
		return err
	}
	sum := bal + amount
	if sum < bal {
		return fmt.Errorf("%w: credit %d %s to %s", taxerr.ErrOverflow, amount, asset, owner)
	}
	return b.SetBalance(asset, owner, sum)
}

// Debit subtracts amount from owner's balance.
func Debit(b Book, asset Asset, owner solana.PublicKey, amount uint64) error {
	bal, err := b.Balance(asset, owner)
	if err != nil {
		return err
	}
	if bal < amount {
		return fmt.Errorf("%w: %s holds %d %s, needs %d", taxerr.ErrInsufficientFunds, owner, bal, asset, amount)
	}
	return b.SetBalance(asset, owner, bal-amount)
}

// Transfer moves amount of asset from one owner to another.
func Transfer(b Book, asset Asset, from, to solana.PublicKey, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if err := Debit(b, asset, from, amount); err != nil {
		return err
	}
	return Credit(b, asset, to, amount)
}
