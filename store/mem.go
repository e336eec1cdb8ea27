package store

import (
	"bytes"
	"fmt"
	"sort"
	"sync"

	"github.com/gagliardetto/solana-go"

	"github.com/bitfsorg/taxreward-go/bank"
	"github.com/bitfsorg/taxreward-go/ledger"
)

// MemStore is an in-memory Store for tests and embedding. Records are kept
// in their encoded form so callers never share memory with the store.
type MemStore struct {
	mu     sync.RWMutex
	state  *memState
	closed bool
}

type memState struct {
	configs  map[solana.PublicKey][]byte
	globals  map[solana.PublicKey][]byte
	entries  map[string][]byte
	balances *bank.MemBook
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{state: &memState{
		configs:  make(map[solana.PublicKey][]byte),
		globals:  make(map[solana.PublicKey][]byte),
		entries:  make(map[string][]byte),
		balances: bank.NewMemBook(),
	}}
}

func (s *memState) clone() *memState {
	c := &memState{
		configs:  make(map[solana.PublicKey][]byte, len(s.configs)),
		globals:  make(map[solana.PublicKey][]byte, len(s.globals)),
		entries:  make(map[string][]byte, len(s.entries)),
		balances: s.balances.Clone(),
	}
	for k, v := range s.configs {
		c.configs[k] = v
	}
	for k, v := range s.globals {
		c.globals[k] = v
	}
	for k, v := range s.entries {
		c.entries[k] = v
	}
	return c
}

// Update runs fn against a private copy and installs it only on success.
func (s *MemStore) Update(fn func(Tx) error) error {
	if fn == nil {
		return fmt.Errorf("%w: transaction func", ErrNilParam)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	work := s.state.clone()
	if err := fn(&memTx{state: work}); err != nil {
		return err
	}
	s.state = work
	return nil
}

// View runs fn against the current state.
func (s *MemStore) View(fn func(Tx) error) error {
	if fn == nil {
		return fmt.Errorf("%w: transaction func", ErrNilParam)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return fn(&memTx{state: s.state, readOnly: true})
}

// Close marks the store closed.
func (s *MemStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

type memTx struct {
	state    *memState
	readOnly bool
}

func (tx *memTx) writable() error {
	if tx.readOnly {
		return ErrReadOnly
	}
	return nil
}

func (tx *memTx) Balance(asset bank.Asset, owner solana.PublicKey) (uint64, error) {
	return tx.state.balances.Balance(asset, owner)
}

func (tx *memTx) SetBalance(asset bank.Asset, owner solana.PublicKey, amount uint64) error {
	if err := tx.writable(); err != nil {
		return err
	}
	return tx.state.balances.SetBalance(asset, owner, amount)
}

func (tx *memTx) Config(mint solana.PublicKey) (*ledger.Config, error) {
	data, ok := tx.state.configs[mint]
	if !ok {
		return nil, fmt.Errorf("%w: config for mint %s", ErrNotFound, mint)
	}
	return ledger.DeserializeConfig(data)
}

func (tx *memTx) PutConfig(mint solana.PublicKey, cfg *ledger.Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config", ErrNilParam)
	}
	if err := tx.writable(); err != nil {
		return err
	}
	tx.state.configs[mint] = ledger.SerializeConfig(cfg)
	return nil
}

func (tx *memTx) Global(mint solana.PublicKey) (*ledger.GlobalState, error) {
	data, ok := tx.state.globals[mint]
	if !ok {
		return nil, fmt.Errorf("%w: global state for mint %s", ErrNotFound, mint)
	}
	return ledger.DeserializeGlobal(data)
}

func (tx *memTx) PutGlobal(mint solana.PublicKey, g *ledger.GlobalState) error {
	if g == nil {
		return fmt.Errorf("%w: global state", ErrNilParam)
	}
	if err := tx.writable(); err != nil {
		return err
	}
	tx.state.globals[mint] = ledger.SerializeGlobal(g)
	return nil
}

func (tx *memTx) Entry(mint, holder solana.PublicKey) (*ledger.Entry, error) {
	data, ok := tx.state.entries[string(entryKey(mint, holder))]
	if !ok {
		return nil, fmt.Errorf("%w: entry for %s", ErrNotFound, holder)
	}
	return ledger.DeserializeEntry(data)
}

func (tx *memTx) PutEntry(mint, holder solana.PublicKey, e *ledger.Entry) error {
	if e == nil {
		return fmt.Errorf("%w: entry", ErrNilParam)
	}
	if err := tx.writable(); err != nil {
		return err
	}
	tx.state.entries[string(entryKey(mint, holder))] = ledger.SerializeEntry(e)
	return nil
}

func (tx *memTx) DeleteEntry(mint, holder solana.PublicKey) error {
	if err := tx.writable(); err != nil {
		return err
	}
	key := string(entryKey(mint, holder))
	if _, ok := tx.state.entries[key]; !ok {
		return fmt.Errorf("%w: entry for %s", ErrNotFound, holder)
	}
	delete(tx.state.entries, key)
	return nil
}

func (tx *memTx) ForEachEntry(mint solana.PublicKey, fn func(holder solana.PublicKey, e *ledger.Entry) error) error {
	var keys []string
	for k := range tx.state.entries {
		if bytes.HasPrefix([]byte(k), mint[:]) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		e, err := ledger.DeserializeEntry(tx.state.entries[k])
		if err != nil {
			return err
		}
		if err := fn(solana.PublicKeyFromBytes([]byte(k)[32:]), e); err != nil {
			return err
		}
	}
	return nil
}
