package pda

import "errors"

var (
	// ErrZeroProgram indicates a derivation without a program id.
	ErrZeroProgram = errors.New("pda: program id is zero")

	// ErrZeroMint indicates a derivation without a mint.
	ErrZeroMint = errors.New("pda: mint is zero")
)
