package taxerr

import "errors"

// Code is the numeric form of a failure kind, numbered in declaration order.
type Code uint32

const (
	CodeInvalidInstruction Code = iota
	CodeInsufficientFunds
	CodeUnauthorized
	CodeOverflow
	CodeSlippageExceeded
	CodeInvalidTaxRate
	CodeInvalidTokenAccount
	CodeInsufficientRewardVault
	CodeSwapFailed
	CodeProgramPaused
	CodeInvalidMintSupply
	CodeDivideByZero

	// CodeUnknown is returned for errors outside the taxonomy.
	CodeUnknown Code = 0xFFFFFFFF
)

var kinds = []struct {
	err  error
	code Code
	name string
}{
	{ErrInvalidInstruction, CodeInvalidInstruction, "InvalidInstruction"},
	{ErrInsufficientFunds, CodeInsufficientFunds, "InsufficientFunds"},
	{ErrUnauthorized, CodeUnauthorized, "Unauthorized"},
	{ErrOverflow, CodeOverflow, "Overflow"},
	{ErrSlippageExceeded, CodeSlippageExceeded, "SlippageExceeded"},
	{ErrInvalidTaxRate, CodeInvalidTaxRate, "InvalidTaxRate"},
	{ErrInvalidTokenAccount, CodeInvalidTokenAccount, "InvalidTokenAccount"},
	{ErrInsufficientRewardVault, CodeInsufficientRewardVault, "InsufficientRewardVault"},
	{ErrSwapFailed, CodeSwapFailed, "SwapFailed"},
	{ErrProgramPaused, CodeProgramPaused, "ProgramPaused"},
	{ErrInvalidMintSupply, CodeInvalidMintSupply, "InvalidMintSupply"},
	{ErrDivideByZero, CodeDivideByZero, "DivideByZero"},
}

// CodeOf returns the code of the first taxonomy kind found in err's chain.
// A nil error has no code and reports CodeUnknown.
//
// Swap failures may join several route errors; ErrSwapFailed is checked
// before the other kinds so a joined route overflow still reports SwapFailed.
func CodeOf(err error) Code {
	if err == nil {
		return CodeUnknown
	}
	if errors.Is(err, ErrSwapFailed) {
		return CodeSwapFailed
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.code
		}
	}
	return CodeUnknown
}

// String returns the kind name, e.g. "SlippageExceeded".
func (c Code) String() string {
	for _, k := range kinds {
		if k.code == c {
			return k.name
		}
	}
	return "Unknown"
}
