// Package taxerr defines the failure kinds surfaced by every tax and reward
// operation. Callers match them with errors.Is; hosts that need a numeric
// result use CodeOf.
package taxerr

import "errors"

var (
	// ErrInvalidInstruction indicates malformed or semantically invalid input.
	ErrInvalidInstruction = errors.New("taxreward: invalid instruction")

	// ErrInsufficientFunds indicates a balance is smaller than the amount moved.
	ErrInsufficientFunds = errors.New("taxreward: insufficient funds")

	// ErrUnauthorized indicates the caller does not satisfy the owner predicate.
	ErrUnauthorized = errors.New("taxreward: unauthorized action")

	// ErrOverflow indicates a checked arithmetic step left its numeric range.
	ErrOverflow = errors.New("taxreward: calculation overflow")

	// ErrSlippageExceeded indicates the realized swap output is below the minimum.
	ErrSlippageExceeded = errors.New("taxreward: slippage exceeded")

	// ErrInvalidTaxRate indicates a tax rate above 10000 bps.
	ErrInvalidTaxRate = errors.New("taxreward: invalid tax rate (must be <= 10000 bps)")

	// ErrInvalidTokenAccount indicates a missing or mismatched holder account.
	ErrInvalidTokenAccount = errors.New("taxreward: invalid token account")

	// ErrInsufficientRewardVault indicates the reward vault cannot cover a payout.
	ErrInsufficientRewardVault = errors.New("taxreward: reward vault insufficient balance")

	// ErrSwapFailed indicates every configured exchange route failed.
	ErrSwapFailed = errors.New("taxreward: swap failed")

	// ErrProgramPaused indicates transfers are paused by the owner.
	ErrProgramPaused = errors.New("taxreward: program is paused")

	// ErrInvalidMintSupply indicates a zero or otherwise unusable token supply.
	ErrInvalidMintSupply = errors.New("taxreward: invalid mint supply")

	// ErrDivideByZero indicates a division by a zero total supply.
	ErrDivideByZero = errors.New("taxreward: divide by zero")
)
