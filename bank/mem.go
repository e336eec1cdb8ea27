package bank

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// MemBook is a map-backed Book. It is not safe for concurrent use.
type MemBook struct {
	balances map[balanceKey]uint64
}

// NewMemBook creates an empty in-memory book.
func NewMemBook() *MemBook {
	return &MemBook{balances: make(map[balanceKey]uint64)}
}

// Balance returns the stored balance, zero if absent.
func (m *MemBook) Balance(asset Asset, owner solana.PublicKey) (uint64, error) {
	if !asset.Valid() {
		return 0, fmt.Errorf("%w: %s", ErrUnknownAsset, asset)
	}
	return m.balances[balanceKey{asset, owner}], nil
}

// SetBalance stores amount; a zero amount removes the account.
func (m *MemBook) SetBalance(asset Asset, owner solana.PublicKey, amount uint64) error {
	if !asset.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownAsset, asset)
	}
	k := balanceKey{asset, owner}
	if amount == 0 {
		delete(m.balances, k)
		return nil
	}
	m.balances[k] = amount
	return nil
}

// Clone returns an independent copy of the book.
func (m *MemBook) Clone() *MemBook {
	c := &MemBook{balances: make(map[balanceKey]uint64, len(m.balances))}
	for k, v := range m.balances {
		c.balances[k] = v
	}
	return c
}
