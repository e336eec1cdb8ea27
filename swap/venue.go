package swap

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/holiman/uint256"

	"github.com/bitfsorg/taxreward-go/bank"
	"github.com/bitfsorg/taxreward-go/taxerr"
)

const feeDenominator = 10_000

// ConstantProduct is an x*y=k pool whose reserves are the Pool identity's
// balances of the requested token and of the native currency.
type ConstantProduct struct {
	Label  string
	Pool   solana.PublicKey
	FeeBps uint16
}

// Name returns the label.
func (c ConstantProduct) Name() string { return c.Label }

// Quote returns the native output for amountIn tokens against the given
// reserves, after the pool fee.
func (c ConstantProduct) Quote(amountIn, reserveIn, reserveOut uint64) (uint64, error) {
	if reserveIn == 0 || reserveOut == 0 {
		return 0, ErrEmptyPool
	}
	if c.FeeBps > feeDenominator {
		return 0, fmt.Errorf("%w: fee %d bps", ErrInvalidRate, c.FeeBps)
	}
	inWithFee := new(uint256.Int).Mul(uint256.NewInt(amountIn), uint256.NewInt(uint64(feeDenominator-c.FeeBps)))
	num := new(uint256.Int).Mul(inWithFee, uint256.NewInt(reserveOut))
	den := new(uint256.Int).Mul(uint256.NewInt(reserveIn), uint256.NewInt(feeDenominator))
	den.Add(den, inWithFee)
	out := num.Div(num, den)
	// out < reserveOut always holds, so it fits 64 bits.
	return out.Uint64(), nil
}

// Convert moves AmountIn tokens into the pool and pays the quoted native
// amount out of it.
func (c ConstantProduct) Convert(_ context.Context, req Request) (uint64, error) {
	reserveIn, err := req.Book.Balance(req.Token, c.Pool)
	if err != nil {
		return 0, err
	}
	reserveOut, err := req.Book.Balance(bank.Native, c.Pool)
	if err != nil {
		return 0, err
	}
	out, err := c.Quote(req.AmountIn, reserveIn, reserveOut)
	if err != nil {
		return 0, err
	}
	if err := bank.Transfer(req.Book, req.Token, req.Source, c.Pool, req.AmountIn); err != nil {
		return 0, err
	}
	if err := bank.Transfer(req.Book, bank.Native, c.Pool, req.Destination, out); err != nil {
		return 0, err
	}
	return out, nil
}

// FixedRate buys tokens at Numerator/Denominator native units per token,
// paid from the Counterparty's native balance.
type FixedRate struct {
	Label        string
	Counterparty solana.PublicKey
	Numerator    uint64
	Denominator  uint64
}

// Name returns the label.
func (f FixedRate) Name() string { return f.Label }

// Convert moves AmountIn tokens to the counterparty and pays
// floor(AmountIn * Numerator / Denominator) native units.
func (f FixedRate) Convert(_ context.Context, req Request) (uint64, error) {
	if f.Denominator == 0 {
		return 0, ErrInvalidRate
	}
	q := new(uint256.Int).Mul(uint256.NewInt(req.AmountIn), uint256.NewInt(f.Numerator))
	q.Div(q, uint256.NewInt(f.Denominator))
	if !q.IsUint64() {
		return 0, fmt.Errorf("%w: fixed rate output", taxerr.ErrOverflow)
	}
	out := q.Uint64()
	if err := bank.Transfer(req.Book, req.Token, req.Source, f.Counterparty, req.AmountIn); err != nil {
		return 0, err
	}
	if err := bank.Transfer(req.Book, bank.Native, f.Counterparty, req.Destination, out); err != nil {
		return 0, err
	}
	return out, nil
}
