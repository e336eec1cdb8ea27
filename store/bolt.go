package store

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gagliardetto/solana-go"
	"go.etcd.io/bbolt"

	"github.com/bitfsorg/taxreward-go/bank"
	"github.com/bitfsorg/taxreward-go/ledger"
)

var (
	bucketConfigs  = []byte("configs")
	bucketGlobals  = []byte("globals")
	bucketEntries  = []byte("entries")
	bucketBalances = []byte("balances")
)

// BoltStore persists records in a bbolt database. bbolt serializes writers,
// which gives each Update exclusive access to every record it touches.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("store: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketConfigs, bucketGlobals, bucketEntries, bucketBalances} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("store: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// Path returns the database file path.
func (s *BoltStore) Path() string { return s.db.Path() }

// Update runs fn inside a bbolt read-write transaction.
func (s *BoltStore) Update(fn func(Tx) error) error {
	if fn == nil {
		return fmt.Errorf("%w: transaction func", ErrNilParam)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return fn(&boltTx{tx: tx})
	})
}

// View runs fn inside a bbolt read-only transaction.
func (s *BoltStore) View(fn func(Tx) error) error {
	if fn == nil {
		return fmt.Errorf("%w: transaction func", ErrNilParam)
	}
	return s.db.View(func(tx *bbolt.Tx) error {
		return fn(&boltTx{tx: tx})
	})
}

type boltTx struct {
	tx *bbolt.Tx
}

func (b *boltTx) writable() error {
	if !b.tx.Writable() {
		return ErrReadOnly
	}
	return nil
}

func (b *boltTx) Balance(asset bank.Asset, owner solana.PublicKey) (uint64, error) {
	if !asset.Valid() {
		return 0, fmt.Errorf("%w: %s", bank.ErrUnknownAsset, asset)
	}
	data := b.tx.Bucket(bucketBalances).Get(balanceKey(asset, owner))
	if data == nil {
		return 0, nil
	}
	if len(data) != 8 {
		return 0, fmt.Errorf("%w: balance of %s is %d bytes", ErrCorrupt, owner, len(data))
	}
	return binary.LittleEndian.Uint64(data), nil
}

func (b *boltTx) SetBalance(asset bank.Asset, owner solana.PublicKey, amount uint64) error {
	if !asset.Valid() {
		return fmt.Errorf("%w: %s", bank.ErrUnknownAsset, asset)
	}
	if err := b.writable(); err != nil {
		return err
	}
	bkt := b.tx.Bucket(bucketBalances)
	key := balanceKey(asset, owner)
	if amount == 0 {
		return bkt.Delete(key)
	}
	val := make([]byte, 8)
	binary.LittleEndian.PutUint64(val, amount)
	if err := bkt.Put(key, val); err != nil {
		return fmt.Errorf("store: put balance: %w", err)
	}
	return nil
}

func (b *boltTx) Config(mint solana.PublicKey) (*ledger.Config, error) {
	data := b.tx.Bucket(bucketConfigs).Get(mint[:])
	if data == nil {
		return nil, fmt.Errorf("%w: config for mint %s", ErrNotFound, mint)
	}
	return ledger.DeserializeConfig(data)
}

func (b *boltTx) PutConfig(mint solana.PublicKey, cfg *ledger.Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config", ErrNilParam)
	}
	return b.put(bucketConfigs, mint[:], ledger.SerializeConfig(cfg))
}

func (b *boltTx) Global(mint solana.PublicKey) (*ledger.GlobalState, error) {
	data := b.tx.Bucket(bucketGlobals).Get(mint[:])
	if data == nil {
		return nil, fmt.Errorf("%w: global state for mint %s", ErrNotFound, mint)
	}
	return ledger.DeserializeGlobal(data)
}

func (b *boltTx) PutGlobal(mint solana.PublicKey, g *ledger.GlobalState) error {
	if g == nil {
		return fmt.Errorf("%w: global state", ErrNilParam)
	}
	return b.put(bucketGlobals, mint[:], ledger.SerializeGlobal(g))
}

func (b *boltTx) Entry(mint, holder solana.PublicKey) (*ledger.Entry, error) {
	data := b.tx.Bucket(bucketEntries).Get(entryKey(mint, holder))
	if data == nil {
		return nil, fmt.Errorf("%w: entry for %s", ErrNotFound, holder)
	}
	return ledger.DeserializeEntry(data)
}

func (b *boltTx) PutEntry(mint, holder solana.PublicKey, e *ledger.Entry) error {
	if e == nil {
		return fmt.Errorf("%w: entry", ErrNilParam)
	}
	return b.put(bucketEntries, entryKey(mint, holder), ledger.SerializeEntry(e))
}

func (b *boltTx) DeleteEntry(mint, holder solana.PublicKey) error {
	if err := b.writable(); err != nil {
		return err
	}
	bkt := b.tx.Bucket(bucketEntries)
	key := entryKey(mint, holder)
	if bkt.Get(key) == nil {
		return fmt.Errorf("%w: entry for %s", ErrNotFound, holder)
	}
	if err := bkt.Delete(key); err != nil {
		return fmt.Errorf("store: delete entry: %w", err)
	}
	return nil
}

func (b *boltTx) ForEachEntry(mint solana.PublicKey, fn func(holder solana.PublicKey, e *ledger.Entry) error) error {
	c := b.tx.Bucket(bucketEntries).Cursor()
	prefix := mint[:]
	for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
		if len(k) != entryKeySize {
			return fmt.Errorf("%w: entry key is %d bytes", ErrCorrupt, len(k))
		}
		e, err := ledger.DeserializeEntry(v)
		if err != nil {
			return err
		}
		if err := fn(solana.PublicKeyFromBytes(k[32:]), e); err != nil {
			return err
		}
	}
	return nil
}

func (b *boltTx) put(bucket, key, val []byte) error {
	if err := b.writable(); err != nil {
		return err
	}
	if err := b.tx.Bucket(bucket).Put(key, val); err != nil {
		return fmt.Errorf("store: put %s: %w", bucket, err)
	}
	return nil
}
