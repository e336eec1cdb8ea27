package swap

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/taxreward-go/bank"
	"github.com/bitfsorg/taxreward-go/taxerr"
)

func makeKey(seed byte) solana.PublicKey {
	var k solana.PublicKey
	for i := range k {
		k[i] = seed
	}
	return k
}

var (
	vaultKey  = makeKey(0x10)
	rewardKey = makeKey(0x20)
	poolKey   = makeKey(0x30)
	token     = bank.Token(makeKey(0x40))
)

func newBook(t *testing.T, vaultTokens, poolTokens, poolNative uint64) *bank.MemBook {
	t.Helper()
	b := bank.NewMemBook()
	require.NoError(t, bank.Credit(b, token, vaultKey, vaultTokens))
	require.NoError(t, bank.Credit(b, token, poolKey, poolTokens))
	require.NoError(t, bank.Credit(b, bank.Native, poolKey, poolNative))
	return b
}

func bal(t *testing.T, b bank.Book, a bank.Asset, k solana.PublicKey) uint64 {
	t.Helper()
	v, err := b.Balance(a, k)
	require.NoError(t, err)
	return v
}

// --- Venues ---

func TestConstantProduct_Quote(t *testing.T) {
	c := ConstantProduct{Label: "amm", FeeBps: 30}
	out, err := c.Quote(1000, 1_000_000, 1_000_000)
	require.NoError(t, err)
	// 1000*9970*1e6 / (1e6*10000 + 1000*9970) = 996
	assert.Equal(t, uint64(996), out)

	noFee := ConstantProduct{Label: "amm"}
	out, err = noFee.Quote(100, 100, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), out)

	_, err = c.Quote(1, 0, 10)
	assert.ErrorIs(t, err, ErrEmptyPool)

	_, err = ConstantProduct{FeeBps: 20000}.Quote(1, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestConstantProduct_Convert(t *testing.T) {
	b := newBook(t, 5000, 1_000_000, 1_000_000)
	c := ConstantProduct{Label: "amm", Pool: poolKey, FeeBps: 30}

	out, err := c.Convert(context.Background(), Request{
		Book: b, Token: token, Source: vaultKey, Destination: rewardKey, AmountIn: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(996), out)
	assert.Equal(t, uint64(4000), bal(t, b, token, vaultKey))
	assert.Equal(t, uint64(1_001_000), bal(t, b, token, poolKey))
	assert.Equal(t, uint64(996), bal(t, b, bank.Native, rewardKey))
}

func TestFixedRate_Convert(t *testing.T) {
	b := newBook(t, 100, 0, 1000)
	f := FixedRate{Label: "otc", Counterparty: poolKey, Numerator: 3, Denominator: 2}

	out, err := f.Convert(context.Background(), Request{Book: b, Token: token, Source: vaultKey, Destination: rewardKey, AmountIn: 11})
	require.NoError(t, err)
	assert.Equal(t, uint64(16), out)
	assert.Equal(t, uint64(16), bal(t, b, bank.Native, rewardKey))

	_, err = FixedRate{Label: "bad"}.Convert(context.Background(), Request{Book: b})
	assert.ErrorIs(t, err, ErrInvalidRate)
}

// --- Router ---

func TestConstantProduct_ReservesScopedByMint(t *testing.T) {
	b := newBook(t, 5000, 1_000_000, 1_000_000)
	other := bank.Token(makeKey(0x41))
	require.NoError(t, bank.Credit(b, other, vaultKey, 5000))
	c := ConstantProduct{Label: "amm", Pool: poolKey, FeeBps: 30}

	// The pool holds reserves of token only, so selling other finds it empty.
	_, err := c.Convert(context.Background(), Request{Book: b, Token: other, Source: vaultKey, Destination: rewardKey, AmountIn: 1000})
	assert.ErrorIs(t, err, ErrEmptyPool)
	assert.Equal(t, uint64(5000), bal(t, b, other, vaultKey))
	assert.Equal(t, uint64(5000), bal(t, b, token, vaultKey))
}

func TestRouter_PrimaryWins(t *testing.T) {
	b := newBook(t, 1000, 1_000_000, 1_000_000)
	var fallbackCalled bool
	r := NewRouter(nil,
		ConstantProduct{Label: "primary", Pool: poolKey},
		Func{Label: "fallback", Fn: func(context.Context, Request) (uint64, error) {
			fallbackCalled = true
			return 0, nil
		}},
	)

	out, err := r.ConvertVia(context.Background(), Request{Book: b, Token: token, Source: vaultKey, Destination: rewardKey, AmountIn: 100})
	require.NoError(t, err)
	assert.Equal(t, "primary", out.Route)
	assert.False(t, fallbackCalled)
	assert.Equal(t, out.Reported, bal(t, b, bank.Native, rewardKey))
}

func TestRouter_FallsBackAfterUnavailablePrimary(t *testing.T) {
	b := newBook(t, 1000, 0, 10_000)
	r := NewRouter(nil,
		Unavailable{Label: "jupiter"},
		FixedRate{Label: "serum", Counterparty: poolKey, Numerator: 1, Denominator: 1},
	)
	assert.Equal(t, []string{"jupiter", "serum"}, r.Routes())

	out, err := r.ConvertVia(context.Background(), Request{Book: b, Token: token, Source: vaultKey, Destination: rewardKey, AmountIn: 250})
	require.NoError(t, err)
	assert.Equal(t, "serum", out.Route)
	assert.Equal(t, uint64(250), bal(t, b, bank.Native, rewardKey))
}

func TestRouter_FailedRouteLeavesNoPartialEffects(t *testing.T) {
	b := newBook(t, 1000, 0, 10_000)
	partial := Func{Label: "partial", Fn: func(_ context.Context, req Request) (uint64, error) {
		// Takes the tokens, then fails before paying out.
		if err := bank.Transfer(req.Book, req.Token, req.Source, poolKey, req.AmountIn); err != nil {
			return 0, err
		}
		return 0, errors.New("venue reverted")
	}}
	r := NewRouter(nil, partial, FixedRate{Label: "otc", Counterparty: poolKey, Numerator: 2, Denominator: 1})

	out, err := r.ConvertVia(context.Background(), Request{Book: b, Token: token, Source: vaultKey, Destination: rewardKey, AmountIn: 100})
	require.NoError(t, err)
	assert.Equal(t, "otc", out.Route)
	assert.Equal(t, uint64(900), bal(t, b, token, vaultKey), "only the successful route's debit applies")
	assert.Equal(t, uint64(100), bal(t, b, token, poolKey))
	assert.Equal(t, uint64(200), bal(t, b, bank.Native, rewardKey))
}

func TestRouter_Exhausted(t *testing.T) {
	b := newBook(t, 10, 0, 0)
	boom := errors.New("boom")
	r := NewRouter(nil,
		Unavailable{Label: "jupiter"},
		Func{Label: "serum", Fn: func(context.Context, Request) (uint64, error) { return 0, boom }},
	)

	_, err := r.Convert(context.Background(), Request{Book: b, Token: token, Source: vaultKey, Destination: rewardKey, AmountIn: 5})
	assert.ErrorIs(t, err, taxerr.ErrSwapFailed)
	assert.ErrorIs(t, err, ErrRouteUnavailable)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, taxerr.CodeSwapFailed, taxerr.CodeOf(err))
	assert.Equal(t, uint64(10), bal(t, b, token, vaultKey))
}

func TestRouter_NoRoutes(t *testing.T) {
	_, err := NewRouter(nil).Convert(context.Background(), Request{Book: bank.NewMemBook()})
	assert.ErrorIs(t, err, taxerr.ErrSwapFailed)
	assert.ErrorIs(t, err, ErrNoRoutes)
}

func TestRouter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var called bool
	r := NewRouter(nil, Func{Label: "x", Fn: func(context.Context, Request) (uint64, error) {
		called = true
		return 0, nil
	}})

	_, err := r.Convert(ctx, Request{Book: bank.NewMemBook()})
	assert.ErrorIs(t, err, taxerr.ErrSwapFailed)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestNewRouter_NilLogger(t *testing.T) {
	r := NewRouter(nil, Unavailable{Label: "jupiter"})
	require.NotNil(t, r.log)
	assert.NotPanics(t, func() {
		_, _ = r.Convert(context.Background(), Request{Book: bank.NewMemBook(), Token: token, AmountIn: 1})
	})
}

func TestRouter_ImplementsAdapter(t *testing.T) {
	var _ Adapter = (*Router)(nil)
	var _ Adapter = Func{}
	var _ Adapter = Unavailable{}
	var _ Adapter = ConstantProduct{}
	var _ Adapter = FixedRate{}
}
