// Package rewardmath implements the fixed-point arithmetic behind tax
// collection and cumulative reward accounting. All functions are pure and
// report overflow instead of wrapping.
//
// Accumulator values are unsigned 128-bit quantities carried in
// uint256.Int; the upper two limbs must stay zero.
package rewardmath

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/bitfsorg/taxreward-go/taxerr"
)

const (
	// MaxBps is 100% expressed in basis points.
	MaxBps = 10_000

	// ScaleDecimals is the number of decimal digits in the accumulator scale.
	ScaleDecimals = 18
)

var (
	scale  = uint256.NewInt(1_000_000_000_000_000_000)
	bpsDen = uint256.NewInt(MaxBps)
	maxU64 = new(uint256.Int).SetUint64(^uint64(0))
)

// Scale returns a copy of the accumulator scale, 10^18.
func Scale() *uint256.Int {
	return new(uint256.Int).Set(scale)
}

// FitsU128 reports whether x is representable in 128 bits.
func FitsU128(x *uint256.Int) bool {
	return x == nil || x.BitLen() <= 128
}

// Tax returns floor(amount * rateBps / 10000) using a widened intermediate.
// The result never exceeds amount.
func Tax(amount uint64, rateBps uint16) (uint64, error) {
	if rateBps > MaxBps {
		return 0, fmt.Errorf("%w: %d bps", taxerr.ErrInvalidTaxRate, rateBps)
	}
	product, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(amount), uint256.NewInt(uint64(rateBps)))
	if overflow {
		return 0, fmt.Errorf("%w: tax product", taxerr.ErrOverflow)
	}
	tax := product.Div(product, bpsDen)
	if !tax.IsUint64() {
		return 0, fmt.Errorf("%w: tax exceeds 64 bits", taxerr.ErrOverflow)
	}
	return tax.Uint64(), nil
}

// DeltaCum returns floor(deltaProceeds * 10^18 / totalSupply), the amount by
// which the cumulative reward per token grows when deltaProceeds of
// settlement currency is distributed over totalSupply tokens.
func DeltaCum(deltaProceeds *uint256.Int, totalSupply uint64) (*uint256.Int, error) {
	if totalSupply == 0 {
		return nil, fmt.Errorf("%w: total supply", taxerr.ErrDivideByZero)
	}
	d := zeroIfNil(deltaProceeds)
	if !FitsU128(d) {
		return nil, fmt.Errorf("%w: proceeds exceed 128 bits", taxerr.ErrOverflow)
	}
	product, overflow := new(uint256.Int).MulOverflow(d, scale)
	if overflow {
		return nil, fmt.Errorf("%w: proceeds * scale", taxerr.ErrOverflow)
	}
	delta := product.Div(product, uint256.NewInt(totalSupply))
	if !FitsU128(delta) {
		return nil, fmt.Errorf("%w: delta exceeds 128 bits", taxerr.ErrOverflow)
	}
	return delta, nil
}

// Owed returns floor(balance * (cumNow - cumLast) / 10^18), the settlement
// currency a holder of balance tokens earned while the accumulator moved
// from cumLast to cumNow. cumNow must not be behind cumLast.
func Owed(balance uint64, cumNow, cumLast *uint256.Int) (uint64, error) {
	now, last := zeroIfNil(cumNow), zeroIfNil(cumLast)
	diff, underflow := new(uint256.Int).SubOverflow(now, last)
	if underflow {
		return 0, fmt.Errorf("%w: snapshot %s ahead of accumulator %s", taxerr.ErrOverflow, last.Dec(), now.Dec())
	}
	product, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(balance), diff)
	if overflow {
		return 0, fmt.Errorf("%w: balance * accrual", taxerr.ErrOverflow)
	}
	owed := product.Div(product, scale)
	if owed.Gt(maxU64) {
		return 0, fmt.Errorf("%w: owed %s exceeds 64 bits", taxerr.ErrOverflow, owed.Dec())
	}
	return owed.Uint64(), nil
}

// AddCum returns cum + delta, failing if the sum leaves 128 bits.
func AddCum(cum, delta *uint256.Int) (*uint256.Int, error) {
	sum, overflow := new(uint256.Int).AddOverflow(zeroIfNil(cum), zeroIfNil(delta))
	if overflow || !FitsU128(sum) {
		return nil, fmt.Errorf("%w: cumulative reward per token", taxerr.ErrOverflow)
	}
	return sum, nil
}

func zeroIfNil(x *uint256.Int) *uint256.Int {
	if x == nil {
		return new(uint256.Int)
	}
	return x
}
