package bank

import (
	"math"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/taxreward-go/taxerr"
)

func makeKey(seed byte) solana.PublicKey {
	var k solana.PublicKey
	for i := range k {
		k[i] = seed
	}
	return k
}

var tok = Token(makeKey(0xAA))

func balance(t *testing.T, b Book, asset Asset, owner solana.PublicKey) uint64 {
	t.Helper()
	v, err := b.Balance(asset, owner)
	require.NoError(t, err)
	return v
}

func TestTransfer(t *testing.T) {
	b := NewMemBook()
	alice, bob := makeKey(1), makeKey(2)
	require.NoError(t, Credit(b, tok, alice, 100))

	require.NoError(t, Transfer(b, tok, alice, bob, 40))
	assert.Equal(t, uint64(60), balance(t, b, tok, alice))
	assert.Equal(t, uint64(40), balance(t, b, tok, bob))
	assert.Zero(t, balance(t, b, Native, bob), "assets are tracked separately")
}

func TestTransfer_Errors(t *testing.T) {
	b := NewMemBook()
	alice, bob := makeKey(1), makeKey(2)
	require.NoError(t, Credit(b, Native, alice, 10))

	err := Transfer(b, Native, alice, bob, 11)
	assert.ErrorIs(t, err, taxerr.ErrInsufficientFunds)
	assert.Equal(t, uint64(10), balance(t, b, Native, alice))

	require.NoError(t, Credit(b, Native, bob, math.MaxUint64))
	err = Credit(b, Native, bob, 1)
	assert.ErrorIs(t, err, taxerr.ErrOverflow)

	err = b.SetBalance(Asset{Kind: 9}, alice, 1)
	assert.ErrorIs(t, err, ErrUnknownAsset)

	err = b.SetBalance(Token(solana.PublicKey{}), alice, 1)
	assert.ErrorIs(t, err, ErrUnknownAsset, "a token needs a mint")

	_, err = b.Balance(Asset{Kind: KindNative, Mint: makeKey(3)}, alice)
	assert.ErrorIs(t, err, ErrUnknownAsset)
}

func TestTokensScopedByMint(t *testing.T) {
	b := NewMemBook()
	alice := makeKey(1)
	mintA, mintB := Token(makeKey(0xA1)), Token(makeKey(0xB1))
	require.NoError(t, Credit(b, mintA, alice, 10_000))

	assert.Equal(t, uint64(10_000), balance(t, b, mintA, alice))
	assert.Zero(t, balance(t, b, mintB, alice))
	assert.ErrorIs(t, Debit(b, mintB, alice, 1), taxerr.ErrInsufficientFunds)

	o := NewOverlay(b)
	require.NoError(t, Credit(o, mintB, alice, 3))
	require.NoError(t, o.Commit())
	assert.Equal(t, uint64(10_000), balance(t, b, mintA, alice))
	assert.Equal(t, uint64(3), balance(t, b, mintB, alice))
}

func TestTransfer_ZeroIsNoop(t *testing.T) {
	b := NewMemBook()
	require.NoError(t, Transfer(b, tok, makeKey(1), makeKey(2), 0))
}

func TestOverlay_CommitAndDiscard(t *testing.T) {
	parent := NewMemBook()
	alice, bob := makeKey(1), makeKey(2)
	require.NoError(t, Credit(parent, tok, alice, 50))

	o := NewOverlay(parent)
	require.NoError(t, Transfer(o, tok, alice, bob, 20))
	assert.True(t, o.Dirty())
	assert.Equal(t, uint64(30), balance(t, o, tok, alice))
	assert.Equal(t, uint64(50), balance(t, parent, tok, alice), "parent untouched before commit")

	o.Discard()
	assert.False(t, o.Dirty())
	assert.Equal(t, uint64(50), balance(t, o, tok, alice))

	require.NoError(t, Transfer(o, tok, alice, bob, 5))
	require.NoError(t, o.Commit())
	assert.Equal(t, uint64(45), balance(t, parent, tok, alice))
	assert.Equal(t, uint64(5), balance(t, parent, tok, bob))
}

func TestMemBook_Clone(t *testing.T) {
	b := NewMemBook()
	require.NoError(t, Credit(b, Native, makeKey(1), 9))
	c := b.Clone()
	require.NoError(t, Credit(c, Native, makeKey(1), 1))
	assert.Equal(t, uint64(9), balance(t, b, Native, makeKey(1)))
	assert.Equal(t, uint64(10), balance(t, c, Native, makeKey(1)))
}

func TestAssetString(t *testing.T) {
	mint := makeKey(0xAA)
	assert.Equal(t, "token("+mint.String()+")", Token(mint).String())
	assert.Equal(t, "native", Native.String())
	assert.Equal(t, "asset(7)", Asset{Kind: 7}.String())
}
