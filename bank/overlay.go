package bank

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

type balanceKey struct {
	asset Asset
	owner solana.PublicKey
}

// Overlay buffers writes on top of a parent Book. Reads see buffered values
// first. Commit flushes the buffer to the parent; Discard drops it.
type Overlay struct {
	parent Book
	writes map[balanceKey]uint64
	order  []balanceKey
}

// NewOverlay returns an empty overlay over parent.
func NewOverlay(parent Book) *Overlay {
	return &Overlay{parent: parent, writes: make(map[balanceKey]uint64)}
}

// Balance returns the buffered balance or the parent's.
func (o *Overlay) Balance(asset Asset, owner solana.PublicKey) (uint64, error) {
	if v, ok := o.writes[balanceKey{asset, owner}]; ok {
		return v, nil
	}
	return o.parent.Balance(asset, owner)
}

// SetBalance buffers a write.
func (o *Overlay) SetBalance(asset Asset, owner solana.PublicKey, amount uint64) error {
	if !asset.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownAsset, asset)
	}
	k := balanceKey{asset, owner}
	if _, ok := o.writes[k]; !ok {
		o.order = append(o.order, k)
	}
	o.writes[k] = amount
	return nil
}

// Commit writes buffered balances to the parent in first-write order and
// empties the buffer.
func (o *Overlay) Commit() error {
	for _, k := range o.order {
		if err := o.parent.SetBalance(k.asset, k.owner, o.writes[k]); err != nil {
			return fmt.Errorf("bank: commit overlay: %w", err)
		}
	}
	o.Discard()
	return nil
}

// Discard drops every buffered write.
func (o *Overlay) Discard() {
	o.writes = make(map[balanceKey]uint64)
	o.order = nil
}

// Dirty reports whether the overlay holds unflushed writes.
func (o *Overlay) Dirty() bool {
	return len(o.order) > 0
}
